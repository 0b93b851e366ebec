// internal/common/camunda/client.go
package camunda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"krishi-assistant/internal/common/config"
	apperrors "krishi-assistant/internal/common/errors"
)

// Client owns the Zeebe gateway connection used by the assistant's job
// worker.
type Client struct {
	client         zbc.Client
	connectTimeout time.Duration
}

const defaultConnectTimeout = 10 * time.Second

// NewClient dials the broker and verifies it with a topology request.
func NewClient(ctx context.Context, cfg config.CamundaConfig) (*Client, error) {
	if cfg.BrokerAddress == "" {
		return nil, apperrors.NewInvalidRequestError("camunda broker address is empty")
	}

	zc, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         cfg.BrokerAddress,
		UsePlaintextConnection: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create zeebe client: %w", err)
	}

	c := &Client{client: zc, connectTimeout: defaultConnectTimeout}
	if cfg.RequestTimeout > 0 {
		c.connectTimeout = time.Duration(cfg.RequestTimeout) * time.Millisecond
	}

	if err := c.HealthCheck(ctx); err != nil {
		_ = zc.Close()
		return nil, err
	}
	return c, nil
}

func (c *Client) Zeebe() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

// HealthCheck sends a topology request; used by the readiness check.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return mapError(err, "topology")
	}
	return nil
}

// mapError classifies gateway failures into the application taxonomy.
func mapError(err error, operation string) error {
	msg := strings.ToLower(err.Error())
	wrapped := fmt.Errorf("zeebe %s: %w", operation, err)

	switch {
	case strings.Contains(msg, "deadline exceeded") || strings.Contains(msg, "timeout"):
		return apperrors.NewTimeoutError("zeebe", wrapped)
	case strings.Contains(msg, "invalid argument") || strings.Contains(msg, "not found"):
		return apperrors.NewInvalidRequestError(wrapped.Error())
	default:
		return apperrors.NewExternalServiceError("zeebe", wrapped)
	}
}
