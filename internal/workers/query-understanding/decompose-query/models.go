// internal/workers/query-understanding/decompose-query/models.go
package decomposequery

import "krishi-assistant/internal/models"

type Input struct {
	Normalized models.NormalizedText `json:"normalized"`
	Entities   models.Entities       `json:"entities"`
}

type Output struct {
	SubQueries []models.SubQuery `json:"subQueries"`
}

// span is a half-open token range [start, end).
type span struct {
	start int
	end   int
}
