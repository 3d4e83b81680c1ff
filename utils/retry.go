package utils

import (
	"context"
	"fmt"
	"time"
)

// RetryWithBackoff retries fn up to maxRetries times. The wait before attempt
// n+1 is n*n*backoff. It gives up early when ctx is cancelled.
func RetryWithBackoff(ctx context.Context, maxRetries int, backoff time.Duration, fn func() error, logger *Logger) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			wait := time.Duration(attempt*attempt) * backoff
			logger.Warn("Retrying (attempt %d/%d) after %v...", attempt+1, maxRetries, wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return fmt.Errorf("retry cancelled after %d attempts: %w", attempt, ctx.Err())
			}
		}
		if err := fn(); err != nil {
			lastErr = err
			logger.Error("Attempt %d failed: %v", attempt+1, err)
			continue
		}
		return nil
	}
	return fmt.Errorf("all %d attempts failed, last error: %w", maxRetries, lastErr)
}
