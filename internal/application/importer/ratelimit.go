package importer

import (
	"context"
	"time"
)

// RateLimiter paces calls against the commerce backend admin API.
type RateLimiter interface {
	// Acquire blocks until the next call is allowed or the context ends.
	Acquire(ctx context.Context) error
}

// FixedDelayLimiter waits a fixed delay on every acquire. The admin API
// throttles aggressively during bulk writes; a flat delay between items is
// enough to stay under its bucket.
type FixedDelayLimiter struct {
	delay time.Duration
}

// NewFixedDelayLimiter creates a limiter with the given inter-item delay.
func NewFixedDelayLimiter(delay time.Duration) *FixedDelayLimiter {
	return &FixedDelayLimiter{delay: delay}
}

// Acquire waits out the delay, returning early when the context is canceled.
func (l *FixedDelayLimiter) Acquire(ctx context.Context) error {
	if l.delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(l.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NopLimiter never waits.
type NopLimiter struct{}

func (NopLimiter) Acquire(ctx context.Context) error { return ctx.Err() }
