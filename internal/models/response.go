// internal/models/response.go
package models

// SubQueryMeta is the per-sub-query block exposed to the host transport.
type SubQueryMeta struct {
	Index      int       `json:"index"`
	Text       string    `json:"text"`
	Intent     Intent    `json:"intent"`
	Confidence float64   `json:"confidence"`
	Entities   Entities  `json:"entities"`
	Source     string    `json:"source,omitempty"`
	Freshness  Freshness `json:"freshness"`
	IsFallback bool      `json:"isFallback"`
}

type ComposedResponse struct {
	Text       string         `json:"text"`
	Language   Language       `json:"language"`
	Confidence float64        `json:"confidence"`
	SubQueries []SubQueryMeta `json:"subQueries"`
}

// OverallConfidence is the minimum sub-query confidence, or 0 with no
// sub-queries.
func OverallConfidence(subs []SubQuery) float64 {
	if len(subs) == 0 {
		return 0
	}
	min := subs[0].Confidence
	for _, s := range subs[1:] {
		if s.Confidence < min {
			min = s.Confidence
		}
	}
	return min
}
