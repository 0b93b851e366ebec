package classifyintent

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), lexicon.New(), logger.NewTestLogger(t))
}

func entity(t models.EntityType, value string, start int, conf float64) models.Entity {
	return models.Entity{Type: t, Value: value, Start: start, End: start + 1, Confidence: conf, Origin: models.OriginUtterance}
}

func subQuery(text string, es ...models.Entity) models.SubQuery {
	return models.SubQuery{Text: text, End: len(strings.Fields(text)), Entities: models.Entities(es)}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Classify(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name       string
		sq         models.SubQuery
		wantIntent models.Intent
		wantConf   float64
	}{
		{
			name:       "greeting",
			sq:         subQuery("hi bhai"),
			wantIntent: models.IntentGreeting,
			wantConf:   0.95,
		},
		{
			name:       "devanagari greeting",
			sq:         subQuery("नमस्ते जी"),
			wantIntent: models.IntentGreeting,
			wantConf:   0.95,
		},
		{
			name: "market price exact commodity",
			sq: subQuery("potato price in lucknow",
				entity(models.EntityCommodity, "potato", 0, 1.0),
				entity(models.EntityLocation, "Lucknow", 3, 1.0)),
			wantIntent: models.IntentMarketPrice,
			wantConf:   1.0,
		},
		{
			name:       "market price alias commodity",
			sq:         subQuery("aloo ka bhav", entity(models.EntityCommodity, "potato", 0, 0.9)),
			wantIntent: models.IntentMarketPrice,
			wantConf:   0.925,
		},
		{
			name:       "market price fuzzy commodity",
			sq:         subQuery("tomatto rate", entity(models.EntityCommodity, "tomato", 0, 0.6)),
			wantIntent: models.IntentMarketPrice,
			wantConf:   0.7,
		},
		{
			name:       "market price without commodity",
			sq:         subQuery("mandi bhav batao"),
			wantIntent: models.IntentMarketPrice,
			wantConf:   0.55,
		},
		{
			name:       "weather without location",
			sq:         subQuery("weather bhi batao"),
			wantIntent: models.IntentWeather,
			wantConf:   0.85,
		},
		{
			name:       "weather with location",
			sq:         subQuery("patna ka mausam", entity(models.EntityLocation, "Patna", 0, 1.0)),
			wantIntent: models.IntentWeather,
			wantConf:   1.0,
		},
		{
			name: "crop with location and season",
			sq: subQuery("rabi mein lucknow mein kya lagaun",
				entity(models.EntitySeason, "rabi", 0, 1.0),
				entity(models.EntityLocation, "Lucknow", 2, 1.0)),
			wantIntent: models.IntentCropRecommendation,
			wantConf:   1.0,
		},
		{
			name:       "crop with location",
			sq:         subQuery("crop suggest karo lucknow mein", entity(models.EntityLocation, "Lucknow", 3, 1.0)),
			wantIntent: models.IntentCropRecommendation,
			wantConf:   0.9,
		},
		{
			name:       "scheme single hit",
			sq:         subQuery("koi yojana hai"),
			wantIntent: models.IntentGovernmentScheme,
			wantConf:   0.85,
		},
		{
			name:       "scheme two hits",
			sq:         subQuery("sarkari yojana batao"),
			wantIntent: models.IntentGovernmentScheme,
			wantConf:   0.95,
		},
		{
			name:       "general",
			sq:         subQuery("tell me something"),
			wantIntent: models.IntentGeneral,
			wantConf:   0.3,
		},
		{
			name:       "general with entities",
			sq:         subQuery("lucknow", entity(models.EntityLocation, "Lucknow", 0, 1.0)),
			wantIntent: models.IntentGeneral,
			wantConf:   0.4,
		},
		{
			name:       "empty",
			sq:         subQuery(""),
			wantIntent: models.IntentGreeting,
			wantConf:   0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.Classify(&tt.sq)
			assert.Equal(t, tt.wantIntent, res.Intent)
			assert.InDelta(t, tt.wantConf, res.Confidence, 0.001)
		})
	}
}

// ==========================
// Tie-break Tests
// ==========================

func TestHandler_Classify_GreetingYieldsToDataIntent(t *testing.T) {
	h := createTestHandler(t)

	sq := subQuery("hello potato price", entity(models.EntityCommodity, "potato", 1, 1.0))
	res := h.Classify(&sq)
	assert.Equal(t, models.IntentMarketPrice, res.Intent)
}

func TestHandler_Classify_DensityTieBreak(t *testing.T) {
	h := createTestHandler(t)

	// Two weather hits beat one crop hit.
	sq := subQuery("barish aur mausam ke hisab se fasal")
	res := h.Classify(&sq)
	assert.Equal(t, models.IntentWeather, res.Intent)

	// Equal density falls back to cascade order.
	sq = subQuery("weather crop")
	res = h.Classify(&sq)
	assert.Equal(t, models.IntentWeather, res.Intent)
}

func TestHandler_Classify_LowPriorityMarket(t *testing.T) {
	h := createTestHandler(t)

	// A price keyword without a commodity loses to any other family.
	sq := subQuery("mandi rate aur bhav ke saath mausam")
	res := h.Classify(&sq)
	assert.Equal(t, models.IntentWeather, res.Intent)
}

func TestHandler_Classify_IgnoresKeywordsInsideEntities(t *testing.T) {
	h := createTestHandler(t)

	// An entity span covering a keyword token is not a keyword hit.
	sq := subQuery("rabi weather", models.Entity{Type: models.EntitySeason, Value: "rabi", Start: 0, End: 2, Confidence: 1})
	res := h.Classify(&sq)
	assert.Equal(t, models.IntentGeneral, res.Intent)
}

func TestHandler_Execute(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{SubQueries: []models.SubQuery{
		{Index: 0, Text: "crop suggest karo lucknow mein", Start: 0, End: 5,
			Entities: models.Entities{entity(models.EntityLocation, "Lucknow", 3, 1.0)}},
		{Index: 1, Text: "weather bhi batao", Start: 6, End: 9,
			Entities: models.Entities{entity(models.EntityLocation, "Lucknow", 3, 1.0).Inherit(models.OriginSibling)}},
	}})
	require.NoError(t, err)
	require.Len(t, out.SubQueries, 2)

	assert.Equal(t, models.IntentCropRecommendation, out.SubQueries[0].Intent)
	assert.Equal(t, models.IntentWeather, out.SubQueries[1].Intent)
	assert.Equal(t, 1.0, out.SubQueries[1].Confidence)

	for _, sq := range out.SubQueries {
		assert.NotEmpty(t, sq.Intent)
	}
}

func TestHandler_Rescore(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{SubQueries: []models.SubQuery{
		subQuery("weather batao"),
		subQuery("hi bhai"),
	}})
	require.NoError(t, err)
	subs := out.SubQueries
	assert.Equal(t, 0.85, subs[0].Confidence)

	caller := models.Entity{Type: models.EntityLocation, Value: "Lucknow", Confidence: 1, Inherited: true, Origin: models.OriginCaller}
	subs[0].Entities = append(subs[0].Entities, caller)

	subs = h.Rescore(subs)
	assert.Equal(t, models.IntentWeather, subs[0].Intent)
	assert.Equal(t, 1.0, subs[0].Confidence)
	assert.Equal(t, models.IntentGreeting, subs[1].Intent)
	assert.Equal(t, 0.95, subs[1].Confidence)
}
