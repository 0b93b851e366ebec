// internal/workers/query-understanding/extract-entities/models.go
package extractentities

import (
	"time"

	"krishi-assistant/internal/models"
)

type Input struct {
	Normalized models.NormalizedText `json:"normalized"`
	// ReferenceTime anchors relative dates. Zero means the handler clock.
	ReferenceTime time.Time `json:"referenceTime,omitempty"`
}

type Output struct {
	Entities models.Entities `json:"entities"`
}

// candidate is a possible entity span before overlap resolution.
type candidate struct {
	entity models.Entity
	length int
}
