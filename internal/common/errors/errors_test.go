package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertToBPMNError(t *testing.T) {
	tests := []struct {
		name        string
		err         *StandardError
		wantCode    string
		wantRetries int
	}{
		{
			name:        "provider unavailable is retried",
			err:         NewProviderUnavailableError("agmarknet", fmt.Errorf("connection refused")),
			wantCode:    "PROVIDER_UNAVAILABLE",
			wantRetries: 3,
		},
		{
			name:        "rate limit wait maps to provider unavailable",
			err:         NewRateLimitWaitExceededError("geocoding", 3*time.Second, time.Second),
			wantCode:    "PROVIDER_UNAVAILABLE",
			wantRetries: 2,
		},
		{
			name:        "invalid request is not retried",
			err:         NewInvalidRequestError("text is required"),
			wantCode:    "INVALID_REQUEST",
			wantRetries: 0,
		},
		{
			name:        "empty input is not retried",
			err:         NewInputEmptyError(),
			wantCode:    "INPUT_EMPTY",
			wantRetries: 0,
		},
		{
			name:        "malformed payload is not retried",
			err:         NewMalformedPayloadError("openmeteo", "missing current"),
			wantCode:    "MALFORMED_PAYLOAD",
			wantRetries: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bpmn := ConvertToBPMNError(tt.err)
			assert.Equal(t, tt.wantCode, bpmn.Code)
			assert.Equal(t, tt.wantRetries, bpmn.Retries)
			assert.Equal(t, string(tt.err.Code), bpmn.ErrorVariables["originalErrorCode"])

			vars := bpmn.ToErrorVariables()
			assert.Equal(t, tt.wantCode, vars["errorCode"])
			assert.Equal(t, tt.err.Retryable, vars["retryable"])
		})
	}
}

func TestStandardErrorUnwrap(t *testing.T) {
	cause := context.DeadlineExceeded
	err := fmt.Errorf("fetch: %w", NewProviderTimeoutError("openmeteo", cause))

	assert.True(t, stderrors.Is(err, context.DeadlineExceeded))
	assert.True(t, HasCode(err, ErrCodeProviderTimeout))
	assert.False(t, HasCode(err, ErrCodeProviderUnavailable))

	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeProviderTimeout, code)
}

func TestNormalize(t *testing.T) {
	std := Normalize(fmt.Errorf("boom"))
	assert.Equal(t, ErrorCode("INTERNAL_ERROR"), std.Code)
	assert.Equal(t, "boom", std.Details)

	orig := NewSessionStoreFailedError("get", fmt.Errorf("redis down"))
	assert.Same(t, orig, Normalize(fmt.Errorf("wrapped: %w", orig)))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "PROVIDER", GetErrorCategory(ErrCodeProviderTimeout))
	assert.Equal(t, "PROVIDER", GetErrorCategory(ErrCodeRateLimitWaitExceeded))
	assert.Equal(t, "STORAGE", GetErrorCategory(ErrCodeSessionStoreFailed))
	assert.Equal(t, "UNDERSTANDING", GetErrorCategory(ErrCodeLocationNotFound))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInputEmpty))
	assert.Equal(t, "OTHER", GetErrorCategory("SOMETHING_ELSE"))
}

func TestRetriesLeft(t *testing.T) {
	tests := []struct {
		name       string
		err        *StandardError
		jobRetries int32
		want       int32
		wantRetry  bool
	}{
		{name: "capped by code budget", err: NewProviderUnavailableError("weather", nil), jobRetries: 10, want: int32(GetRetryCount(ErrCodeProviderUnavailable)), wantRetry: true},
		{name: "last broker retry", err: NewProviderUnavailableError("weather", nil), jobRetries: 1},
		{name: "not retryable", err: NewInvalidRequestError("bad"), jobRetries: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, retry := retriesLeft(tt.err, tt.jobRetries)
			assert.Equal(t, tt.wantRetry, retry)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBackoffFor(t *testing.T) {
	assert.Equal(t, time.Second, backoffFor(0))
	assert.Equal(t, time.Second, backoffFor(1))
	assert.Equal(t, 4*time.Second, backoffFor(3))
	assert.Equal(t, maxRetryBackoff, backoffFor(10))
	assert.Equal(t, maxRetryBackoff, backoffFor(70))
}
