// internal/models/query_types.go
package models

type Intent string

const (
	IntentGreeting           Intent = "greeting"
	IntentCropRecommendation Intent = "crop_recommendation"
	IntentWeather            Intent = "weather"
	IntentMarketPrice        Intent = "market_price"
	IntentGovernmentScheme   Intent = "government_scheme"
	IntentGeneral            Intent = "general"
)

// RequiredEntities lists the entity types an intent cannot be answered without.
func (i Intent) RequiredEntities() []EntityType {
	switch i {
	case IntentMarketPrice:
		return []EntityType{EntityCommodity, EntityLocation}
	case IntentWeather, IntentCropRecommendation:
		return []EntityType{EntityLocation}
	default:
		return nil
	}
}

// NeedsData reports whether the intent is answered from a data provider.
func (i Intent) NeedsData() bool {
	switch i {
	case IntentMarketPrice, IntentWeather, IntentCropRecommendation, IntentGovernmentScheme:
		return true
	}
	return false
}

// SubQuery is one atomic ask inside a possibly compound utterance.
type SubQuery struct {
	Index      int      `json:"index"`
	Text       string   `json:"text"`
	Start      int      `json:"start"`
	End        int      `json:"end"`
	Intent     Intent   `json:"intent"`
	Confidence float64  `json:"confidence"`
	Entities   Entities `json:"entities"`
}

// Missing returns the required entity types the sub-query lacks.
func (q *SubQuery) Missing() []EntityType {
	var out []EntityType
	for _, t := range q.Intent.RequiredEntities() {
		if !q.Entities.Has(t) {
			out = append(out, t)
		}
	}
	return out
}
