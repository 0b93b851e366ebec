package agmarknet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishi-assistant/internal/common/config"
	apperrors "krishi-assistant/internal/common/errors"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/ratelimit"
	"krishi-assistant/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.ProviderConfig{
		BaseURL:    srv.URL,
		APIKey:     "test-key",
		ResourceID: "res-1",
		Timeout:    2000,
	}
	return New(cfg, ratelimit.Unlimited("market_price"), logger.NewTestLogger(t))
}

func lucknow() *models.Location {
	return &models.Location{Name: "Lucknow", State: "Uttar Pradesh"}
}

func TestFetch_PicksDistrictRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resource/res-1", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api-key"))
		assert.Equal(t, "Potato", r.URL.Query().Get("filters[commodity]"))
		assert.Equal(t, "Uttar Pradesh", r.URL.Query().Get("filters[state]"))
		w.Write([]byte(`{"records":[
			{"state":"Uttar Pradesh","district":"Agra","market":"Agra","commodity":"Potato","arrival_date":"13/10/2026","min_price":"900","max_price":"1100","modal_price":"1000"},
			{"state":"Uttar Pradesh","district":"Lucknow","market":"Lucknow","commodity":"Potato","arrival_date":"14/10/2026","min_price":"1150","max_price":"1400","modal_price":1320}
		]}`))
	})

	p, err := c.Fetch(context.Background(), models.FetchRequest{
		Intent: models.IntentMarketPrice, Commodity: "potato", Location: lucknow(),
	})
	require.NoError(t, err)

	mp, ok := p.(*models.MarketPrice)
	require.True(t, ok)
	assert.Equal(t, "potato", mp.Commodity)
	assert.Equal(t, "Lucknow", mp.Location)
	assert.Equal(t, 1320.0, mp.Price)
	assert.Equal(t, 1150.0, mp.MinPrice)
	assert.Equal(t, "2026-10-14", mp.Date)
	assert.Equal(t, "quintal", mp.Unit)
}

func TestFetch_FallsBackToStateRecord(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"records":[
			{"state":"Uttar Pradesh","district":"Agra","market":"Agra","commodity":"Onion","modal_price":"NR"},
			{"state":"Uttar Pradesh","district":"Kanpur","market":"Kanpur","commodity":"Onion","modal_price":"1800"}
		]}`))
	})

	p, err := c.Fetch(context.Background(), models.FetchRequest{Commodity: "onion", Location: lucknow()})
	require.NoError(t, err)
	assert.Equal(t, "Kanpur", p.(*models.MarketPrice).Market)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apperrors.ErrorCode
	}{
		{"no records", http.StatusOK, `{"records":[]}`, apperrors.ErrCodeProviderUnavailable},
		{"schema mismatch", http.StatusOK, `{"status":"ok"}`, apperrors.ErrCodeMalformedPayload},
		{"not json", http.StatusOK, `<html>`, apperrors.ErrCodeMalformedPayload},
		{"forbidden", http.StatusForbidden, `{"error":"key"}`, apperrors.ErrCodeProviderUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.Fetch(context.Background(), models.FetchRequest{Commodity: "potato", Location: lucknow()})
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.want), err.Error())
		})
	}
}

func TestFetch_RequiresEntities(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected")
	})
	_, err := c.Fetch(context.Background(), models.FetchRequest{Commodity: "potato"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest))
}
