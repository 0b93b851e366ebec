package extractentities

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishi-assistant/internal/common/lexicon"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

var ist = time.FixedZone("IST", 5*3600+1800)

// Wednesday.
var refTime = time.Date(2026, 10, 14, 9, 30, 0, 0, ist)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), lexicon.New(), logger.NewTestLogger(t)).
		WithClock(func() time.Time { return refTime })
}

func normalized(text string) models.NormalizedText {
	var tokens []models.Token
	for _, w := range strings.Fields(text) {
		tokens = append(tokens, models.Token{Text: w})
	}
	return models.NormalizedText{Text: text, Tokens: tokens, Empty: len(tokens) == 0}
}

func extract(t *testing.T, h *Handler, text string) models.Entities {
	out, err := h.Execute(context.Background(), &Input{Normalized: normalized(text)})
	require.NoError(t, err)
	return out.Entities
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_PlacesAndCommodities(t *testing.T) {
	h := createTestHandler(t)

	es := extract(t, h, "aloo ka bhav lucknow mein")
	require.Len(t, es, 2)

	assert.Equal(t, models.EntityCommodity, es[0].Type)
	assert.Equal(t, "potato", es[0].Value)
	assert.Equal(t, "aloo", es[0].Raw)
	assert.Equal(t, ConfidenceAlias, es[0].Confidence)
	assert.Equal(t, models.OriginUtterance, es[0].Origin)

	assert.Equal(t, models.EntityLocation, es[1].Type)
	assert.Equal(t, "Lucknow", es[1].Value)
	assert.Equal(t, ConfidenceCanonical, es[1].Confidence)
	require.NotNil(t, es[1].Location)
	assert.Equal(t, "Uttar Pradesh", es[1].Location.State)
	assert.True(t, es[1].Location.HasCoordinates())
	assert.Equal(t, 3, es[1].Start)
	assert.Equal(t, 4, es[1].End)
}

func TestHandler_Execute_LongestSpanWins(t *testing.T) {
	h := createTestHandler(t)

	es := extract(t, h, "new delhi weather")
	require.Len(t, es, 1)
	assert.Equal(t, "New Delhi", es[0].Value)
	assert.Equal(t, 0, es[0].Start)
	assert.Equal(t, 2, es[0].End)
}

func TestHandler_Execute_Devanagari(t *testing.T) {
	h := createTestHandler(t)

	es := extract(t, h, "लखनऊ में आलू का भाव")
	assert.Equal(t, []string{"Lucknow"}, es.Values(models.EntityLocation))
	assert.Equal(t, []string{"potato"}, es.Values(models.EntityCommodity))
}

func TestHandler_Execute_State(t *testing.T) {
	h := createTestHandler(t)

	es := extract(t, h, "rabi mein uttar pradesh mein kya lagaun")
	assert.Equal(t, []string{"rabi"}, es.Values(models.EntitySeason))

	loc := es.LocationOf()
	require.NotNil(t, loc)
	assert.Equal(t, "Uttar Pradesh", loc.Name)
	assert.Equal(t, "Uttar Pradesh", loc.State)
}

func TestHandler_Execute_Fuzzy(t *testing.T) {
	h := createTestHandler(t)

	es := extract(t, h, "lucknw mein mausam")
	require.Len(t, es, 1)
	assert.Equal(t, "Lucknow", es[0].Value)
	assert.Equal(t, ConfidenceFuzzy1, es[0].Confidence)

	es = extract(t, h, "tomatto price")
	require.Len(t, es, 1)
	assert.Equal(t, "tomato", es[0].Value)
	assert.Less(t, es[0].Confidence, ConfidenceAlias)
}

func TestHandler_Execute_KeywordsAreNotEntities(t *testing.T) {
	h := createTestHandler(t)

	// "price" is one edit from "rice" but is a market keyword.
	es := extract(t, h, "rice price batao")
	require.Len(t, es, 1)
	assert.Equal(t, "rice", es[0].Value)
}

func TestHandler_Execute_HinglishVerbsAreNotEntities(t *testing.T) {
	h := createTestHandler(t)

	tests := []string{
		"barish mein kya karna chahiye",
		"mujhe batana ki mausam kaisa hai",
		"kal mandi jana hai",
		"kya barish hona hai",
		"bhav kitna milega",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			es := extract(t, h, text)
			assert.False(t, es.Has(models.EntityLocation), "%v", es)
			assert.False(t, es.Has(models.EntityCommodity), "%v", es)
		})
	}
}

func TestHandler_Execute_MultipleCommodities(t *testing.T) {
	h := createTestHandler(t)

	es := extract(t, h, "onion and tomato price in kanpur")
	assert.Equal(t, []string{"onion", "tomato"}, es.Values(models.EntityCommodity))
	assert.Equal(t, []string{"Kanpur"}, es.Values(models.EntityLocation))

	for i := 1; i < len(es); i++ {
		assert.Less(t, es[i-1].Start, es[i].Start, "entities are in text order")
	}
}

// ==========================
// Date Tests
// ==========================

func TestHandler_Execute_RelativeDates(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		text string
		want string
	}{
		{"weather today", "2026-10-14/2026-10-14"},
		{"kal barish hogi", "2026-10-15/2026-10-15"},
		{"day after tomorrow rain", "2026-10-16/2026-10-16"},
		{"this week forecast", "2026-10-14/2026-10-18"},
		{"agle hafte mausam", "2026-10-19/2026-10-25"},
		{"next 7 days weather", "2026-10-14/2026-10-20"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			es := extract(t, h, tt.text)
			assert.Equal(t, []string{tt.want}, es.Values(models.EntityDateRange))
		})
	}
}

func TestHandler_Execute_ExplicitDates(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		text string
		want []string
	}{
		{"weather on 20/10/2026", []string{"2026-10-20/2026-10-20"}},
		{"weather on 2026-11-02", []string{"2026-11-02/2026-11-02"}},
		{"rain on 25 october", []string{"2026-10-25/2026-10-25"}},
		{"rain on october 25 2027", []string{"2027-10-25/2027-10-25"}},
		{"weather on 31/02/2026", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			es := extract(t, h, tt.text)
			assert.Equal(t, tt.want, es.Values(models.EntityDateRange))
		})
	}
}

func TestHandler_Execute_ReferenceTimeOverridesClock(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Normalized:    normalized("kal mausam"),
		ReferenceTime: time.Date(2026, 1, 31, 22, 0, 0, 0, ist),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-02-01/2026-02-01"}, out.Entities.Values(models.EntityDateRange))
}

// ==========================
// Edge Case Tests
// ==========================

func TestHandler_Execute_Empty(t *testing.T) {
	h := createTestHandler(t)

	es := extract(t, h, "")
	assert.NotNil(t, es)
	assert.Empty(t, es)

	es = extract(t, h, "hello there")
	assert.Empty(t, es)
}

func TestHandler_Execute_NoOverlaps(t *testing.T) {
	h := createTestHandler(t)

	es := extract(t, h, "new delhi mein aloo pyaz tamatar ka bhav aur kal ka mausam")
	for i := 1; i < len(es); i++ {
		assert.LessOrEqual(t, es[i-1].End, es[i].Start)
	}
}

func TestResolveRelative_Sunday(t *testing.T) {
	sunday := time.Date(2026, 10, 18, 12, 0, 0, 0, ist)

	assert.Equal(t, "2026-10-18/2026-10-18", resolveRelative(lexicon.RelativeDate{Week: true}, sunday))
	assert.Equal(t, "2026-10-19/2026-10-25", resolveRelative(lexicon.RelativeDate{Week: true, OffsetDays: 1}, sunday))
}
