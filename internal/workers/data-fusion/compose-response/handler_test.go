package composeresponse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), logger.NewTestLogger(t))
}

func withLocation(intent models.Intent, conf float64, place string) models.SubQuery {
	sq := models.SubQuery{Intent: intent, Confidence: conf}
	if place != "" {
		sq.Entities = models.Entities{{Type: models.EntityLocation, Value: place, Location: &models.Location{Name: place}}}
	}
	return sq
}

func fallbackPrice(commodity, place string, price float64) models.DataAnswer {
	return models.DataAnswer{
		Intent:     models.IntentMarketPrice,
		Freshness:  models.FreshnessFallback,
		IsFallback: true,
		Source:     "reference table",
		Payload:    &models.MarketPrice{Commodity: commodity, Location: place, Price: price, Unit: "quintal"},
	}
}

// ==========================
// Formatting Tests
// ==========================

func TestFormatRupees(t *testing.T) {
	assert.Equal(t, "₹1,200.00", FormatRupees(1200))
	assert.Equal(t, "₹12,345.50", FormatRupees(12345.5))
	assert.Equal(t, "₹340.00", FormatRupees(340))
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Compose_MarketPrice(t *testing.T) {
	h := createTestHandler(t)

	subs := []models.SubQuery{withLocation(models.IntentMarketPrice, 1.0, "Lucknow")}
	resp := h.Compose(subs, []models.DataAnswer{fallbackPrice("potato", "Lucknow", 1200)}, models.LanguageEnglish)

	assert.Equal(t, "The price of potato in Lucknow is ₹1,200.00 per quintal (estimate).", resp.Text)
	assert.Equal(t, models.LanguageEnglish, resp.Language)
	assert.Equal(t, 1.0, resp.Confidence)
	require.Len(t, resp.SubQueries, 1)
	assert.True(t, resp.SubQueries[0].IsFallback)
	assert.Equal(t, models.FreshnessFallback, resp.SubQueries[0].Freshness)
}

func TestHandler_Compose_FreshnessLabels(t *testing.T) {
	h := createTestHandler(t)
	fetched := time.Date(2026, 10, 14, 4, 30, 0, 0, time.UTC) // 10:00 IST

	tests := []struct {
		name   string
		lang   models.Language
		answer models.DataAnswer
		want   string
	}{
		{
			name:   "live english",
			lang:   models.LanguageEnglish,
			answer: models.DataAnswer{Freshness: models.FreshnessLive, Source: "Agmarknet"},
			want:   "(source: Agmarknet)",
		},
		{
			name:   "cached english",
			lang:   models.LanguageEnglish,
			answer: models.DataAnswer{Freshness: models.FreshnessCached, FetchedAt: fetched},
			want:   "(as of 10:00)",
		},
		{
			name:   "fallback hindi",
			lang:   models.LanguageHindi,
			answer: models.DataAnswer{Freshness: models.FreshnessFallback, IsFallback: true},
			want:   "(अनुमान)",
		},
		{
			name:   "fallback hinglish",
			lang:   models.LanguageHinglish,
			answer: models.DataAnswer{Freshness: models.FreshnessFallback, IsFallback: true},
			want:   "(andaza)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := tt.answer
			a.Intent = models.IntentMarketPrice
			a.Payload = &models.MarketPrice{Commodity: "onion", Location: "Nashik", Price: 1800}

			resp := h.Compose([]models.SubQuery{withLocation(models.IntentMarketPrice, 1, "Nashik")}, []models.DataAnswer{a}, tt.lang)
			assert.Contains(t, resp.Text, tt.want)
			assert.Contains(t, resp.Text, "₹1,800.00")
		})
	}
}

func TestHandler_Compose_HindiAndHinglish(t *testing.T) {
	h := createTestHandler(t)
	subs := []models.SubQuery{withLocation(models.IntentMarketPrice, 1.0, "Lucknow")}
	answers := []models.DataAnswer{fallbackPrice("potato", "Lucknow", 1200)}

	hi := h.Compose(subs, answers, models.LanguageHindi)
	assert.Equal(t, "Lucknow में आलू का भाव ₹1,200.00 प्रति क्विंटल है (अनुमान)।", hi.Text)

	hinglish := h.Compose(subs, answers, models.LanguageHinglish)
	assert.Equal(t, "Lucknow mein aloo ka bhav ₹1,200.00 prati quintal hai (andaza).", hinglish.Text)

	unknown := h.Compose(subs, answers, models.Language("fr"))
	assert.Equal(t, models.LanguageEnglish, unknown.Language)
}

func TestHandler_Compose_CompoundInOrder(t *testing.T) {
	h := createTestHandler(t)

	subs := []models.SubQuery{
		withLocation(models.IntentCropRecommendation, 0.9, "Lucknow"),
		withLocation(models.IntentWeather, 1.0, "Lucknow"),
	}
	answers := []models.DataAnswer{
		{
			Intent: models.IntentCropRecommendation, Freshness: models.FreshnessLive, Source: "crop suitability database",
			Payload: &models.CropAdvice{Location: "Lucknow", Season: "rabi", Crops: []models.CropSuggestion{{Crop: "wheat"}, {Crop: "mustard"}}},
		},
		{
			Intent: models.IntentWeather, Freshness: models.FreshnessLive, Source: "Open-Meteo",
			Payload: &models.WeatherReport{Location: "Lucknow", TemperatureC: 29, HumidityPc: 60, RainMM: 0, Condition: "clear"},
		},
	}

	resp := h.Compose(subs, answers, models.LanguageEnglish)
	cropAt := strings.Index(resp.Text, "Good rabi crops for Lucknow: wheat, mustard")
	weatherAt := strings.Index(resp.Text, "Weather in Lucknow: clear sky, 29°C")
	require.GreaterOrEqual(t, cropAt, 0, resp.Text)
	require.Greater(t, weatherAt, cropAt, resp.Text)
	assert.Equal(t, 0.9, resp.Confidence)
	assert.Equal(t, "Open-Meteo", resp.SubQueries[1].Source)
}

func TestHandler_Compose_PriceList(t *testing.T) {
	h := createTestHandler(t)

	answer := models.DataAnswer{
		Intent: models.IntentMarketPrice, Freshness: models.FreshnessFallback, IsFallback: true,
		Payload: &models.PriceList{Location: "Kanpur", Prices: []models.MarketPrice{
			{Commodity: "onion", Price: 1800}, {Commodity: "tomato", Price: 1500},
		}},
	}
	resp := h.Compose([]models.SubQuery{withLocation(models.IntentMarketPrice, 1, "Kanpur")}, []models.DataAnswer{answer}, models.LanguageEnglish)
	assert.Equal(t, "Prices in Kanpur: onion ₹1,800.00, tomato ₹1,500.00 per quintal (estimate).", resp.Text)
}

func TestHandler_Compose_WeatherOutlook(t *testing.T) {
	h := createTestHandler(t)

	answer := models.DataAnswer{
		Intent: models.IntentWeather, Freshness: models.FreshnessLive, Source: "Open-Meteo",
		Payload: &models.WeatherReport{Location: "Patna", TemperatureC: 31, HumidityPc: 70, RainMM: 2, Condition: "rain",
			Daily: []models.DailyForecast{{MaxTempC: 32, RainMM: 1.5}, {MaxTempC: 34, RainMM: 2.5}, {MaxTempC: 33}}},
	}
	resp := h.Compose([]models.SubQuery{withLocation(models.IntentWeather, 1, "Patna")}, []models.DataAnswer{answer}, models.LanguageEnglish)
	assert.Contains(t, resp.Text, "Next 3 days: up to 34°C with 4.0 mm rain in total.")
}

func TestHandler_Compose_Schemes(t *testing.T) {
	h := createTestHandler(t)

	answer := models.DataAnswer{
		Intent: models.IntentGovernmentScheme, Freshness: models.FreshnessLive, Source: "scheme directory",
		Payload: &models.SchemeList{Schemes: []models.Scheme{{Name: "PM-KISAN"}, {Name: "PMFBY"}, {Name: "KCC"}, {Name: "e-NAM"}}},
	}
	resp := h.Compose([]models.SubQuery{{Intent: models.IntentGovernmentScheme, Confidence: 0.85}}, []models.DataAnswer{answer}, models.LanguageEnglish)
	assert.Equal(t, "Government schemes you can look at: PM-KISAN, PMFBY, KCC (source: scheme directory).", resp.Text)
}

// ==========================
// Clarification Tests
// ==========================

func TestHandler_Compose_SingleLocationClarification(t *testing.T) {
	h := createTestHandler(t)

	subs := []models.SubQuery{
		{Intent: models.IntentWeather, Confidence: 0.85},
		{Intent: models.IntentMarketPrice, Confidence: 1, Entities: models.Entities{{Type: models.EntityCommodity, Value: "potato"}}},
	}
	answers := []models.DataAnswer{
		{Intent: models.IntentWeather, Freshness: models.FreshnessUnresolvable, Missing: []models.EntityType{models.EntityLocation}},
		{Intent: models.IntentMarketPrice, Freshness: models.FreshnessUnresolvable, Missing: []models.EntityType{models.EntityLocation}},
	}

	resp := h.Compose(subs, answers, models.LanguageEnglish)
	assert.Equal(t, "Please tell me your city or district so I can look that up.", resp.Text)
	assert.NotContains(t, strings.ToLower(resp.Text), "unknown")
}

func TestHandler_Compose_PayloadWithoutPlaceAsksForLocation(t *testing.T) {
	h := createTestHandler(t)

	answer := models.DataAnswer{
		Intent: models.IntentMarketPrice, Freshness: models.FreshnessFallback, IsFallback: true,
		Payload: &models.MarketPrice{Commodity: "potato", Price: 1200},
	}
	resp := h.Compose([]models.SubQuery{{Intent: models.IntentMarketPrice}}, []models.DataAnswer{answer}, models.LanguageEnglish)
	assert.Equal(t, phrasebooks[models.LanguageEnglish].clarifyLocation, resp.Text)
}

func TestHandler_Compose_CommodityClarification(t *testing.T) {
	h := createTestHandler(t)

	answer := models.DataAnswer{Intent: models.IntentMarketPrice, Freshness: models.FreshnessUnresolvable, Missing: []models.EntityType{models.EntityCommodity}}
	resp := h.Compose([]models.SubQuery{withLocation(models.IntentMarketPrice, 0.55, "Agra")}, []models.DataAnswer{answer}, models.LanguageHinglish)
	assert.Equal(t, "Aap kis fasal ka bhav jaanna chahte hain?", resp.Text)
}

func TestHandler_Compose_GreetingOnce(t *testing.T) {
	h := createTestHandler(t)

	subs := []models.SubQuery{
		{Intent: models.IntentGreeting, Confidence: 0.95},
		{Intent: models.IntentGreeting, Confidence: 0.95},
	}
	resp := h.Compose(subs, []models.DataAnswer{{Freshness: models.FreshnessNone}, {Freshness: models.FreshnessNone}}, models.LanguageHinglish)
	assert.Equal(t, phrasebooks[models.LanguageHinglish].greeting, resp.Text)
	assert.Len(t, resp.SubQueries, 2)
}

func TestHandler_Compose_Empty(t *testing.T) {
	h := createTestHandler(t)

	resp := h.Compose(nil, nil, models.LanguageHindi)
	assert.Equal(t, phrasebooks[models.LanguageHindi].greeting, resp.Text)
	assert.Equal(t, 0.0, resp.Confidence)
	assert.NotNil(t, resp.SubQueries)
}
