// internal/workers/conversation/session-context/models.go
package sessioncontext

import "krishi-assistant/internal/models"

type Input struct {
	SessionID string `json:"sessionId"`
	// CallerLocation is the location supplied with the request, already
	// resolved to a canonical place.
	CallerLocation *models.Location   `json:"callerLocation,omitempty"`
	SubQueries     []models.SubQuery `json:"subQueries"`
}

type Output struct {
	SubQueries []models.SubQuery      `json:"subQueries"`
	Session    *models.SessionContext `json:"session"`
}
