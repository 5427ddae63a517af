// # internal/shared/util/limiter_test.go
package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestLimiter(t *testing.T) {
	// 10 tokens per second, burst of 2
	l := NewLimiter(10, 2)

	assert.True(t, l.Allow(), "first token")
	assert.True(t, l.Allow(), "second token (burst)")
	assert.False(t, l.Allow(), "burst exhausted")
	assert.Greater(t, l.RetryAfter(), time.Duration(0))

	time.Sleep(150 * time.Millisecond)
	assert.True(t, l.AllowN(1), "token refilled after wait")
}

func TestLimiter_RetryAfterDoesNotConsume(t *testing.T) {
	for _, r := range []float64{1, 0.001} {
		l := NewLimiter(r, 1)

		assert.Equal(t, time.Duration(0), l.RetryAfter(), "rate %v", r)
		assert.Equal(t, time.Duration(0), l.RetryAfter(), "rate %v", r)
		assert.True(t, l.Allow(), "token still available at rate %v", r)
	}
}

func TestLimiter_RetryAfterEstimate(t *testing.T) {
	l := NewLimiter(1, 1)
	require.True(t, l.Allow())

	wait := l.RetryAfter()
	assert.Greater(t, wait, 900*time.Millisecond)
	assert.LessOrEqual(t, wait, time.Second)
	assert.False(t, l.Allow(), "estimate must not refund or take tokens")
}

func TestLimiter_RetryAfterUnboundedRates(t *testing.T) {
	assert.Equal(t, time.Duration(0), NewLimiter(float64(rate.Inf), 0).RetryAfter())

	never := NewLimiter(0, 1)
	require.True(t, never.Allow())
	assert.Equal(t, time.Duration(0), never.RetryAfter())
}

func TestLimiter_Wait(t *testing.T) {
	l := NewLimiter(100, 1)
	l.Allow() // consume burst

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	require.NoError(t, l.Wait(ctx, 1))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestLimiterRegistry(t *testing.T) {
	// 100 tokens/sec, burst 10, ttl 100ms
	reg := NewLimiterRegistry(100, 10, 100*time.Millisecond)
	defer reg.Stop()

	l1 := reg.Get("1.1.1.1")
	l2 := reg.Get("2.2.2.2")

	assert.NotSame(t, l1, l2, "different keys get different limiters")
	assert.Same(t, l1, reg.Get("1.1.1.1"))
	assert.Equal(t, 2, reg.Len())

	assert.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 20*time.Millisecond)
	assert.NotSame(t, l1, reg.Get("1.1.1.1"), "idle limiter replaced")
}

func TestLimiterRegistry_Cleanup(t *testing.T) {
	reg := NewLimiterRegistry(1, 1, time.Hour)
	reg.Stop()
	reg.Stop()

	reg.Get("a")
	reg.cleanup(time.Now())
	assert.Equal(t, 1, reg.Len())

	reg.cleanup(time.Now().Add(2 * time.Hour))
	assert.Equal(t, 0, reg.Len())
}
