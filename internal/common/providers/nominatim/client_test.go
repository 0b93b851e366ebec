package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishi-assistant/internal/common/config"
	apperrors "krishi-assistant/internal/common/errors"
	"krishi-assistant/internal/common/logger"
	"krishi-assistant/internal/common/ratelimit"
)

const barabanki = `[{"lat":"26.9268","lon":"81.1834","name":"Barabanki","display_name":"Barabanki, Uttar Pradesh, India","address":{"city":"Barabanki","state":"Uttar Pradesh"}}]`

func newServer(t *testing.T, hits *int32, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "in", r.URL.Query().Get("countrycodes"))
		assert.Equal(t, "krishi-test/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(url string) config.ProviderConfig {
	return config.ProviderConfig{BaseURL: url, UserAgent: "krishi-test/1.0", Timeout: 2000}
}

func TestResolve(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, barabanki)
	c := New(testConfig(srv.URL), ratelimit.Unlimited("geocoding"), logger.NewTestLogger(t))

	loc, err := c.Resolve(context.Background(), "barabanki")
	require.NoError(t, err)
	assert.Equal(t, "Barabanki", loc.Name)
	assert.Equal(t, "Uttar Pradesh", loc.State)
	assert.InDelta(t, 26.9268, loc.Lat, 1e-6)
}

func TestResolve_NotFound(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, `[]`)
	c := New(testConfig(srv.URL), ratelimit.Unlimited("geocoding"), logger.NewTestLogger(t))

	_, err := c.Resolve(context.Background(), "atlantis")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeLocationNotFound))

	_, err = c.Resolve(context.Background(), "  ")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeLocationNotFound))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestResolve_Malformed(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits, `[{"lat":"north","lon":"east"}]`)
	c := New(testConfig(srv.URL), ratelimit.Unlimited("geocoding"), logger.NewTestLogger(t))

	_, err := c.Resolve(context.Background(), "somewhere")
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeMalformedPayload))
}

func TestResolve_OneRequestPerSecond(t *testing.T) {
	if testing.Short() {
		t.Skip("waits on the real limiter")
	}

	var hits int32
	srv := newServer(t, &hits, barabanki)
	limiter := ratelimit.New("geocoding", time.Second, 5*time.Second)
	c := New(testConfig(srv.URL), limiter, logger.NewTestLogger(t))

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := c.Resolve(context.Background(), "barabanki")
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 2*time.Second)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}
