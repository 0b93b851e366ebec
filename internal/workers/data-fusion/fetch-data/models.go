// internal/workers/data-fusion/fetch-data/models.go
package fetchdata

import (
	"time"

	"krishi-assistant/internal/models"
)

type Input struct {
	SubQueries []models.SubQuery `json:"subQueries"`
}

type Output struct {
	// Answers holds one answer per sub-query, in sub-query order.
	Answers []models.DataAnswer `json:"answers"`
}

// result is one resolved entity set before it is folded into an answer.
type result struct {
	payload   models.Payload
	freshness models.Freshness
	source    string
	fetchedAt time.Time
}
