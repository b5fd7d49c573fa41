package ratelimit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const idleBucketThreshold = 1 * time.Hour

type clientBucket struct {
	tokens     int
	lastRefill time.Time
}

// MemoryLimiter is a per-process token bucket. Each client starts with
// Rule.Requests tokens and the bucket refills completely once Rule.Window has
// passed since the last refill.
type MemoryLimiter struct {
	mu      sync.Mutex
	rule    Rule
	clients map[string]*clientBucket
	now     func() time.Time
	logger  *zap.Logger
}

// NewMemoryLimiter creates a new MemoryLimiter instance
func NewMemoryLimiter(rule Rule, logger *zap.Logger) *MemoryLimiter {
	return &MemoryLimiter{
		rule:    rule,
		clients: make(map[string]*clientBucket),
		now:     time.Now,
		logger:  logger,
	}
}

// CheckLimit consumes one token for key if one is available.
func (l *MemoryLimiter) CheckLimit(_ context.Context, key string) (*RateLimitResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	bucket, exists := l.clients[key]
	if !exists {
		bucket = &clientBucket{tokens: l.rule.Requests, lastRefill: now}
		l.clients[key] = bucket
	} else if now.Sub(bucket.lastRefill) >= l.rule.Window {
		bucket.tokens = l.rule.Requests
		bucket.lastRefill = now
	}

	resetAt := bucket.lastRefill.Add(l.rule.Window)
	if bucket.tokens <= 0 {
		return l.rule.denied(resetAt), nil
	}

	bucket.tokens--
	return &RateLimitResult{
		Allowed:           true,
		Limit:             l.rule.Requests,
		RequestsRemaining: bucket.tokens,
		ResetAt:           resetAt,
	}, nil
}

// Cleanup drops buckets that have not refilled within the idle threshold and
// returns how many were removed.
func (l *MemoryLimiter) Cleanup() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	threshold := idleBucketThreshold
	if l.rule.Window > threshold {
		threshold = l.rule.Window
	}

	now := l.now()
	removed := 0
	for key, bucket := range l.clients {
		if now.Sub(bucket.lastRefill) > threshold {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

// StartCleanupWorker periodically drops idle buckets until ctx is cancelled.
func (l *MemoryLimiter) StartCleanupWorker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.logger.Info("started rate limit cleanup worker", zap.Duration("interval", interval))

	for {
		select {
		case <-ticker.C:
			if removed := l.Cleanup(); removed > 0 {
				l.logger.Debug("removed idle rate limit buckets", zap.Int("count", removed))
			}
		case <-ctx.Done():
			l.logger.Info("stopping rate limit cleanup worker")
			return
		}
	}
}

// Ping always succeeds; the store is local memory.
func (l *MemoryLimiter) Ping(context.Context) error {
	return nil
}

// Close is a no-op.
func (l *MemoryLimiter) Close() error {
	return nil
}
