package schemes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "krishi-assistant/internal/common/errors"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/ratelimit"
	"krishi-assistant/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return New(es, "", ratelimit.Unlimited("schemes"), logger.NewTestLogger(t))
}

func TestFetch(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/agri_schemes/_search", r.URL.Path)

		raw, _ := io.ReadAll(r.Body)
		var q map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &q))
		filter := q["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]interface{})
		terms := filter[0].(map[string]interface{})["terms"].(map[string]interface{})["states.keyword"].([]interface{})
		assert.ElementsMatch(t, []interface{}{"ALL", "Uttar Pradesh"}, terms)

		w.Write([]byte(`{"hits":{"hits":[
			{"_source":{"name":"PM-KISAN","description":"Income support","benefit":"₹6,000 per year","states":["ALL"]}},
			{"_source":{"name":""}}
		]}}`))
	})

	p, err := c.Fetch(context.Background(), models.FetchRequest{
		Intent:   models.IntentGovernmentScheme,
		Query:    "kisan yojana",
		Location: &models.Location{Name: "Lucknow", State: "Uttar Pradesh"},
	})
	require.NoError(t, err)

	list, ok := p.(*models.SchemeList)
	require.True(t, ok)
	require.Len(t, list.Schemes, 1)
	assert.Equal(t, "PM-KISAN", list.Schemes[0].Name)
	assert.Equal(t, "Uttar Pradesh", list.State)
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apperrors.ErrorCode
	}{
		{"no hits", http.StatusOK, `{"hits":{"hits":[]}}`, apperrors.ErrCodeProviderUnavailable},
		{"index missing", http.StatusNotFound, `{"error":"index_not_found_exception"}`, apperrors.ErrCodeProviderUnavailable},
		{"bad body", http.StatusOK, `{"hits":`, apperrors.ErrCodeMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			_, err := c.Fetch(context.Background(), models.FetchRequest{})
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, tt.want), err.Error())
		})
	}
}

func TestBuildQuery_MatchAllWithoutText(t *testing.T) {
	q := buildQuery("", "")
	must := q["query"].(map[string]interface{})["bool"].(map[string]interface{})["must"].([]interface{})
	_, ok := must[0].(map[string]interface{})["match_all"]
	assert.True(t, ok)
}

func TestEnsureIndex(t *testing.T) {
	t.Run("creates missing index", func(t *testing.T) {
		var created bool
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodHead:
				w.WriteHeader(http.StatusNotFound)
			case http.MethodPut:
				assert.Equal(t, "/agri_schemes", r.URL.Path)
				raw, _ := io.ReadAll(r.Body)
				assert.Contains(t, string(raw), `"states"`)
				created = true
				w.Write([]byte(`{"acknowledged":true}`))
			}
		})
		require.NoError(t, c.EnsureIndex(context.Background()))
		assert.True(t, created)
	})

	t.Run("existing index untouched", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodHead, r.Method)
			w.WriteHeader(http.StatusOK)
		})
		assert.NoError(t, c.EnsureIndex(context.Background()))
	})

	t.Run("create rejected", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"bad mapping"}`))
		})
		err := c.EnsureIndex(context.Background())
		assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeProviderUnavailable))
	})
}
