// internal/workers/data-fusion/compose-response/models.go
package composeresponse

import "krishi-assistant/internal/models"

type Input struct {
	SubQueries []models.SubQuery   `json:"subQueries"`
	Answers    []models.DataAnswer `json:"answers"`
	Language   models.Language     `json:"language"`
}

type Output struct {
	Response models.ComposedResponse `json:"response"`
}

// sentenceKind groups sentences that may appear only once per reply.
type sentenceKind int

const (
	kindData sentenceKind = iota
	kindGreeting
	kindGeneral
	kindClarifyLocation
	kindClarifyCommodity
)
