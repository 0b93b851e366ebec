package database

import (
	"context"
	"fmt"
	"time"

	"krishi-assistant/internal/common/logger"
)

// RetryWithBackoff runs operation until it succeeds, doubling the delay after
// each failure. It gives up after maxAttempts or when ctx ends.
func RetryWithBackoff(ctx context.Context, operation func(context.Context) error, maxAttempts int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxAttempts; i++ {
		err = operation(ctx)
		if err == nil {
			return nil
		}

		if i < maxAttempts-1 {
			log.Warn(operationName+" failed, retrying", map[string]interface{}{
				"error":       err,
				"attempt":     i + 1,
				"maxAttempts": maxAttempts,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("%s cancelled: %w", operationName, ctx.Err())
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxAttempts, err)
}
