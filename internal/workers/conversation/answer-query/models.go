// internal/workers/conversation/answer-query/models.go
package answerquery

import "krishi-assistant/internal/models"

// Input is what the host transport hands the assistant for one turn.
type Input struct {
	Text         string              `json:"text"`
	LanguageHint string              `json:"languageHint,omitempty"`
	SessionID    string              `json:"sessionId,omitempty"`
	Coordinates  *models.Coordinates `json:"coordinates,omitempty"`
	LocationName string              `json:"locationName,omitempty"`
}

type Output struct {
	ResponseText     string                `json:"responseText"`
	ResponseLanguage models.Language       `json:"responseLanguage"`
	Confidence       float64               `json:"confidence"`
	SubQueries       []models.SubQueryMeta `json:"subQueries"`
	SessionID        string                `json:"sessionId"`
}

// requestSchema guards the HTTP and job entry points.
const requestSchema = `{
  "type": "object",
  "required": ["text"],
  "properties": {
    "text": {"type": "string", "maxLength": 4000},
    "languageHint": {"type": "string", "maxLength": 16},
    "sessionId": {"type": "string", "maxLength": 128},
    "locationName": {"type": "string", "maxLength": 200},
    "coordinates": {
      "type": "object",
      "required": ["lat", "lon"],
      "properties": {
        "lat": {"type": "number", "minimum": -90, "maximum": 90},
        "lon": {"type": "number", "minimum": -180, "maximum": 180}
      }
    }
  }
}`
