package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingThrottle struct {
	calls int32
}

func (t *countingThrottle) Wait(ctx context.Context) (time.Duration, error) {
	atomic.AddInt32(&t.calls, 1)
	return 0, nil
}

func TestGetJSON_RetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		assert.Equal(t, "krishi-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "v", r.Header.Get("X-Key"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	throttle := &countingThrottle{}
	c := NewClient(time.Second,
		WithRetries(2),
		WithBackoff(time.Millisecond),
		WithUserAgent("krishi-test"),
		WithThrottle(throttle),
	)

	body, err := c.GetJSON(context.Background(), srv.URL, map[string]string{"X-Key": "v"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	assert.Equal(t, int32(3), atomic.LoadInt32(&throttle.calls))
}

func TestGetJSON_ClientErrorNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("invalid api key"))
	}))
	defer srv.Close()

	c := NewClient(time.Second, WithRetries(3), WithBackoff(time.Millisecond))
	_, err := c.GetJSON(context.Background(), srv.URL, nil)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, "invalid api key", se.Body)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestGetJSON_ExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(time.Second, WithRetries(1), WithBackoff(time.Millisecond))
	_, err := c.GetJSON(context.Background(), srv.URL, nil)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusBadGateway, se.StatusCode)
}

func TestGetJSON_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	c := NewClient(time.Second, WithRetries(2))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.GetJSON(ctx, srv.URL, nil)
	assert.ErrorIs(t, err, ErrTimeout)
}
