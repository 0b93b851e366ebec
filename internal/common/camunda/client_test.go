package camunda

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"krishi-assistant/internal/common/config"
	apperrors "krishi-assistant/internal/common/errors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		msg  string
		code apperrors.ErrorCode
	}{
		{"rpc error: code = DeadlineExceeded desc = context deadline exceeded", "TIMEOUT_ERROR"},
		{"rpc error: code = Unavailable desc = connection refused", "EXTERNAL_SERVICE_ERROR"},
		{"rpc error: code = NotFound desc = job not found", apperrors.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			err := mapError(errors.New(tt.msg), "complete")
			code, ok := apperrors.CodeOf(err)
			assert.True(t, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestNewClient_RequiresAddress(t *testing.T) {
	_, err := NewClient(context.Background(), config.CamundaConfig{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidRequest))
}
