package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestMemoryLimiter(rule Rule) (*MemoryLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)}
	limiter := NewMemoryLimiter(rule, zap.NewNop())
	limiter.now = clock.Now
	return limiter, clock
}

func TestMemoryLimiter_CheckLimit(t *testing.T) {
	ctx := context.Background()
	limiter, clock := newTestMemoryLimiter(Rule{Requests: 3, Window: time.Minute})

	for i := 2; i >= 0; i-- {
		result, err := limiter.CheckLimit(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, i, result.RequestsRemaining)
		assert.Equal(t, 3, result.Limit)
	}

	result, err := limiter.CheckLimit(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.RequestsRemaining)
	assert.Equal(t, "exceeded 3 requests per 1m0s", result.ViolationReason)
	assert.Equal(t, clock.Now().Add(time.Minute), result.ResetAt)

	t.Run("other clients are independent", func(t *testing.T) {
		result, err := limiter.CheckLimit(ctx, "10.0.0.2")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("bucket refills after window", func(t *testing.T) {
		clock.Advance(time.Minute)
		result, err := limiter.CheckLimit(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 2, result.RequestsRemaining)
	})
}

func TestMemoryLimiter_Cleanup(t *testing.T) {
	ctx := context.Background()
	limiter, clock := newTestMemoryLimiter(Rule{Requests: 1, Window: time.Minute})

	_, err := limiter.CheckLimit(ctx, "idle")
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	_, err = limiter.CheckLimit(ctx, "active")
	require.NoError(t, err)

	assert.Equal(t, 0, limiter.Cleanup())

	clock.Advance(31 * time.Minute)
	assert.Equal(t, 1, limiter.Cleanup())

	limiter.mu.Lock()
	_, idleExists := limiter.clients["idle"]
	_, activeExists := limiter.clients["active"]
	limiter.mu.Unlock()
	assert.False(t, idleExists)
	assert.True(t, activeExists)
}

func TestMemoryLimiter_StartCleanupWorker(t *testing.T) {
	limiter, clock := newTestMemoryLimiter(Rule{Requests: 1, Window: time.Minute})
	_, err := limiter.CheckLimit(context.Background(), "idle")
	require.NoError(t, err)
	clock.Advance(2 * time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		limiter.StartCleanupWorker(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		limiter.mu.Lock()
		defer limiter.mu.Unlock()
		return len(limiter.clients) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup worker did not stop")
	}
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	limiter := NewMemoryLimiter(Rule{Requests: 50, Window: time.Hour}, zap.NewNop())

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := limiter.CheckLimit(context.Background(), "shared")
			if err == nil && result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowed)
}

func TestMemoryLimiter_PingClose(t *testing.T) {
	limiter := NewMemoryLimiter(Rule{Requests: 1, Window: time.Second}, zap.NewNop())
	assert.NoError(t, limiter.Ping(context.Background()))
	assert.NoError(t, limiter.Close())
}

func TestRule_Validate(t *testing.T) {
	assert.NoError(t, Rule{Requests: 1, Window: time.Second}.Validate())
	assert.Error(t, Rule{Requests: 0, Window: time.Second}.Validate())
	assert.Error(t, Rule{Requests: 5, Window: 0}.Validate())
}
