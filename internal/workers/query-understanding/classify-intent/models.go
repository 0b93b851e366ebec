// internal/workers/query-understanding/classify-intent/models.go
package classifyintent

import (
	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/models"
)

type Input struct {
	SubQueries []models.SubQuery `json:"subQueries"`
}

type Output struct {
	SubQueries []models.SubQuery `json:"subQueries"`
}

// Result is the classification of one sub-query.
type Result struct {
	Intent     models.Intent
	Confidence float64
}

// scored is a keyword rule that fired.
type scored struct {
	intent      models.Intent
	confidence  float64
	density     float64
	order       int
	lowPriority bool
}

// ruleOrder ranks the data intents for the final tie-break.
var ruleOrder = []struct {
	family lexicon.Family
	intent models.Intent
}{
	{lexicon.FamilyMarket, models.IntentMarketPrice},
	{lexicon.FamilyWeather, models.IntentWeather},
	{lexicon.FamilyCrop, models.IntentCropRecommendation},
	{lexicon.FamilyScheme, models.IntentGovernmentScheme},
}
