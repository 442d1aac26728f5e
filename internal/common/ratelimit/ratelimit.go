// Package ratelimit wraps golang.org/x/time/rate with an on/off switch so
// callers can thread an optional limiter through without nil checks.
package ratelimit

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Limiter throttles operations to a maximum rate of requests per second.
// A limiter created with rps <= 0 is disabled and never blocks.
type Limiter struct {
	limiter *rate.Limiter
	rps     float64
}

// New creates a Limiter allowing rps requests per second with a burst of
// one. rps <= 0 disables rate limiting.
func New(rps float64) *Limiter {
	if rps <= 0 {
		return &Limiter{}
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		rps:     rps,
	}
}

// Wait blocks until the next operation is allowed or the context is done.
// It returns immediately for a disabled limiter.
func (l *Limiter) Wait(ctx context.Context) error {
	if l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

// Allow reports whether an operation may proceed right now without waiting.
func (l *Limiter) Allow() bool {
	if l.limiter == nil {
		return true
	}
	return l.limiter.Allow()
}

// Reserve reserves a token and returns the reservation so the caller can
// inspect the required delay. Returns nil for a disabled limiter.
func (l *Limiter) Reserve() *rate.Reservation {
	if l.limiter == nil {
		return nil
	}
	return l.limiter.Reserve()
}

// Enabled reports whether rate limiting is active.
func (l *Limiter) Enabled() bool {
	return l.limiter != nil
}

// RPS returns the configured requests per second (0 when disabled).
func (l *Limiter) RPS() float64 {
	return l.rps
}

// String returns a human-readable description of the limiter.
func (l *Limiter) String() string {
	if l.limiter == nil {
		return "rate limiting disabled"
	}
	if l.rps < 1 {
		return fmt.Sprintf("1 request per %.1f seconds", 1/l.rps)
	}
	return fmt.Sprintf("%.2f rps", l.rps)
}
