// # internal/shared/util/limiter.go
package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter wraps rate.Limiter to provide a simpler interface.
type Limiter struct {
	inner *rate.Limiter
}

// NewLimiter creates a new token bucket limiter.
// r: tokens per second.
// b: burst size.
func NewLimiter(r float64, b int) *Limiter {
	return &Limiter{
		inner: rate.NewLimiter(rate.Limit(r), b),
	}
}

// Allow reports whether one request may proceed now.
func (l *Limiter) Allow() bool {
	return l.inner.Allow()
}

// AllowN reports whether an event with weight n may happen now.
func (l *Limiter) AllowN(n int) bool {
	return l.inner.AllowN(time.Now(), n)
}

// RetryAfter returns how long a caller should wait before one token is
// available again. It only reads the bucket. An unlimited limiter and one
// that never refills both report 0.
func (l *Limiter) RetryAfter() time.Duration {
	limit := l.inner.Limit()
	if limit == rate.Inf || limit <= 0 {
		return 0
	}
	tokens := l.inner.Tokens()
	if tokens >= 1 {
		return 0
	}
	return time.Duration((1 - tokens) / float64(limit) * float64(time.Second))
}

// Wait blocks until n tokens are available.
func (l *Limiter) Wait(ctx context.Context, n int) error {
	return l.inner.WaitN(ctx, n)
}
