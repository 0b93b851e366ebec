// internal/common/http/client.go
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 4 << 20

var (
	ErrTimeout = errors.New("HTTP_TIMEOUT")
)

// StatusError is a non-2xx response that survived all retries.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Throttle delays a dispatch until the caller may proceed.
type Throttle interface {
	Wait(ctx context.Context) (time.Duration, error)
}

type Client struct {
	httpClient  *http.Client
	maxRetries  int
	baseBackoff time.Duration
	userAgent   string
	throttle    Throttle
}

type Option func(*Client)

// WithRetries sets how many times a 5xx or transport failure is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.baseBackoff = d
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithThrottle waits on t before every attempt, retries included.
func WithThrottle(t Throttle) Option {
	return func(c *Client) {
		c.throttle = t
	}
}

// WithHTTPClient replaces the transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseBackoff: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON issues a GET and returns the body of the first 2xx response.
// Transport failures and 5xx responses are retried with exponential backoff;
// 4xx responses are returned at once as *StatusError.
func (c *Client) GetJSON(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.baseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, timeoutOr(ctx, lastErr)
			}
		}

		if c.throttle != nil {
			if _, err := c.throttle.Wait(ctx); err != nil {
				return nil, err
			}
		}

		body, retry, err := c.get(ctx, url, headers)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retry {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, timeoutOr(ctx, lastErr)
		}
	}

	return nil, lastErr
}

func (c *Client) get(ctx context.Context, url string, headers map[string]string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, false, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, true, fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, false, nil
	case resp.StatusCode >= 500:
		return nil, true, &StatusError{StatusCode: resp.StatusCode, Body: truncate(body)}
	default:
		return nil, false, &StatusError{StatusCode: resp.StatusCode, Body: truncate(body)}
	}
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func timeoutOr(ctx context.Context, lastErr error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, ctx.Err())
	}
	if lastErr != nil {
		return lastErr
	}
	return ctx.Err()
}

func truncate(body []byte) string {
	if len(body) > 256 {
		return string(body[:256])
	}
	return string(body)
}
