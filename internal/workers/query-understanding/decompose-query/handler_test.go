package decomposequery

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
	extractentities "krishi-assistant/internal/workers/query-understanding/extract-entities"
)

// ==========================
// Test Helper Functions
// ==========================

type fixture struct {
	handler   *Handler
	extractor *extractentities.Handler
}

func createTestHandler(t *testing.T) *fixture {
	lex := lexicon.New()
	log := logger.NewTestLogger(t)
	ref := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	return &fixture{
		handler:   NewHandler(LoadConfig(), lex, log),
		extractor: extractentities.NewHandler(extractentities.LoadConfig(), lex, log).WithClock(func() time.Time { return ref }),
	}
}

func (f *fixture) decompose(t *testing.T, text string) []models.SubQuery {
	var tokens []models.Token
	for _, w := range strings.Fields(text) {
		tokens = append(tokens, models.Token{Text: w})
	}
	norm := models.NormalizedText{Text: text, Tokens: tokens, Empty: len(tokens) == 0}

	ents, err := f.extractor.Execute(context.Background(), &extractentities.Input{Normalized: norm})
	require.NoError(t, err)

	out, err := f.handler.Execute(context.Background(), &Input{Normalized: norm, Entities: ents.Entities})
	require.NoError(t, err)
	return out.SubQueries
}

func texts(subs []models.SubQuery) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.Text
	}
	return out
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_SplitsDistinctClusters(t *testing.T) {
	f := createTestHandler(t)

	subs := f.decompose(t, "crop suggest karo lucknow mein aur weather bhi batao")
	require.Len(t, subs, 2)
	assert.Equal(t, []string{"crop suggest karo lucknow mein", "weather bhi batao"}, texts(subs))

	for i, s := range subs {
		assert.Equal(t, i, s.Index)
		loc := s.Entities.LocationOf()
		require.NotNil(t, loc, "sub-query %d has a location", i)
		assert.Equal(t, "Lucknow", loc.Name)
	}

	inherited, _ := subs[1].Entities.First(models.EntityLocation)
	assert.True(t, inherited.Inherited)
	assert.Equal(t, models.OriginSibling, inherited.Origin)
}

func TestHandler_Execute_CommodityConjunctionStaysMerged(t *testing.T) {
	f := createTestHandler(t)

	tests := []string{
		"rice and wheat price",
		"aloo aur pyaz ka bhav lucknow mein",
		"onion & tomato rate in kanpur",
		"gehun aur chana plus sarso ka daam",
	}

	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			subs := f.decompose(t, text)
			require.Len(t, subs, 1)
			assert.Equal(t, text, subs[0].Text)
			assert.GreaterOrEqual(t, len(subs[0].Entities.All(models.EntityCommodity)), 2)
		})
	}
}

func TestHandler_Execute_CommodityConjunctionAfterIntentSwitch(t *testing.T) {
	f := createTestHandler(t)

	tests := []struct {
		text        string
		want        []string
		commodities []string
	}{
		{
			text:        "weather in lucknow and rice and wheat price",
			want:        []string{"weather in lucknow", "rice and wheat price"},
			commodities: []string{"rice", "wheat"},
		},
		{
			text:        "lucknow mein mausam batao aur aloo aur pyaz ka bhav",
			want:        []string{"lucknow mein mausam batao", "aloo aur pyaz ka bhav"},
			commodities: []string{"potato", "onion"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			subs := f.decompose(t, tt.text)
			require.Len(t, subs, 2)
			assert.Equal(t, tt.want, texts(subs))
			assert.False(t, subs[0].Entities.Has(models.EntityCommodity))
			assert.Equal(t, tt.commodities, subs[1].Entities.Values(models.EntityCommodity))
			assert.Equal(t, "Lucknow", subs[1].Entities.LocationOf().Name)
		})
	}
}

func TestHandler_Execute_TrailingLocationJoinsPrevious(t *testing.T) {
	f := createTestHandler(t)

	subs := f.decompose(t, "onion price in kanpur and lucknow")
	require.Len(t, subs, 1)
	assert.Equal(t, "onion price in kanpur and lucknow", subs[0].Text)
}

func TestHandler_Execute_SameFamilyNotSplit(t *testing.T) {
	f := createTestHandler(t)

	subs := f.decompose(t, "weather and rain forecast in patna")
	require.Len(t, subs, 1)
}

func TestHandler_Execute_ThreeClusters(t *testing.T) {
	f := createTestHandler(t)

	subs := f.decompose(t, "lucknow weather batao aur aloo ka bhav aur koi sarkari yojana")
	require.Len(t, subs, 3)
	assert.Equal(t, "lucknow weather batao", subs[0].Text)
	assert.Equal(t, "aloo ka bhav", subs[1].Text)
	assert.Equal(t, "koi sarkari yojana", subs[2].Text)

	for _, s := range subs {
		assert.True(t, s.Entities.Has(models.EntityLocation))
	}
	assert.Equal(t, []string{"potato"}, subs[1].Entities.Values(models.EntityCommodity))
}

func TestHandler_Execute_CommoditiesNotInherited(t *testing.T) {
	f := createTestHandler(t)

	subs := f.decompose(t, "potato price in agra and weather tomorrow")
	require.Len(t, subs, 2)
	assert.False(t, subs[1].Entities.Has(models.EntityCommodity))
	assert.True(t, subs[1].Entities.Has(models.EntityLocation))
	assert.True(t, subs[1].Entities.Has(models.EntityDateRange))
}

func TestHandler_Execute_LaterLocationBackFilled(t *testing.T) {
	f := createTestHandler(t)

	subs := f.decompose(t, "weather batao aur jaipur mein kya fasal lagaun")
	require.Len(t, subs, 2)
	require.True(t, subs[0].Entities.Has(models.EntityLocation))
	assert.Equal(t, "Jaipur", subs[0].Entities.LocationOf().Name)
}

func TestHandler_Execute_OwnLocationKept(t *testing.T) {
	f := createTestHandler(t)

	subs := f.decompose(t, "weather in patna and onion price in nashik")
	require.Len(t, subs, 2)
	assert.Equal(t, "Patna", subs[0].Entities.LocationOf().Name)
	assert.Equal(t, "Nashik", subs[1].Entities.LocationOf().Name)

	loc, _ := subs[1].Entities.First(models.EntityLocation)
	assert.False(t, loc.Inherited)
}

// ==========================
// Edge Case Tests
// ==========================

func TestHandler_Execute_Empty(t *testing.T) {
	f := createTestHandler(t)

	subs := f.decompose(t, "")
	require.Len(t, subs, 1)
	assert.Equal(t, "", subs[0].Text)
	assert.NotNil(t, subs[0].Entities)
}

func TestHandler_Execute_GreetingSplit(t *testing.T) {
	f := createTestHandler(t)

	subs := f.decompose(t, "namaste aur lucknow ka mausam")
	require.Len(t, subs, 2)
	assert.Equal(t, "namaste", subs[0].Text)
}

func TestHandler_Execute_LeadingAndTrailingMarkers(t *testing.T) {
	f := createTestHandler(t)

	subs := f.decompose(t, "aur weather batao bhi")
	require.Len(t, subs, 1)
	assert.Equal(t, "aur weather batao bhi", subs[0].Text)
}

func TestHandler_Execute_DevanagariMarker(t *testing.T) {
	f := createTestHandler(t)

	subs := f.decompose(t, "मौसम और भाव")
	require.Len(t, subs, 2)
	assert.Equal(t, "मौसम", subs[0].Text)
	assert.Equal(t, "भाव", subs[1].Text)
}
