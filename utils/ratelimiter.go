package utils

import (
	"context"
	"sync"
	"time"
)

// RateLimiter spaces out requests to the same site
type RateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	delay    time.Duration
}

// NewRateLimiter creates a new RateLimiter with the given delay in milliseconds
func NewRateLimiter(delayMs int) *RateLimiter {
	return &RateLimiter{
		delay: time.Duration(delayMs) * time.Millisecond,
	}
}

// Wait blocks until enough time has passed since the last request.
// The first call never blocks.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.lastCall.IsZero() {
		if elapsed := time.Since(r.lastCall); elapsed < r.delay {
			select {
			case <-time.After(r.delay - elapsed):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	r.lastCall = time.Now()
	return nil
}
