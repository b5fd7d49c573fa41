package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "ratelimit"

// RedisLimiter counts requests per fixed window in Redis so that several
// replicas share one allowance per client.
type RedisLimiter struct {
	client *redis.Client
	rule   Rule
	now    func() time.Time
	logger *zap.Logger
}

// NewRedisLimiter creates a RedisLimiter backed by the given client.
func NewRedisLimiter(client *redis.Client, rule Rule, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		rule:   rule,
		now:    time.Now,
		logger: logger,
	}
}

// NewRedisClient builds a go-redis client from connection settings.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// CheckLimit increments the counter for key's current window.
func (l *RedisLimiter) CheckLimit(ctx context.Context, key string) (*RateLimitResult, error) {
	windowStart, resetAt := l.windowBounds(l.now())
	redisKey := l.windowKey(key, windowStart)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.rule.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		l.logger.Warn("rate limit store unavailable", zap.String("key", redisKey), zap.Error(err))
		return nil, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	count := int(incr.Val())
	if count > l.rule.Requests {
		return l.rule.denied(resetAt), nil
	}

	return &RateLimitResult{
		Allowed:           true,
		Limit:             l.rule.Requests,
		RequestsRemaining: l.rule.Requests - count,
		ResetAt:           resetAt,
	}, nil
}

// windowBounds aligns now to the start of its window.
func (l *RedisLimiter) windowBounds(now time.Time) (start time.Time, reset time.Time) {
	start = now.Truncate(l.rule.Window)
	return start, start.Add(l.rule.Window)
}

func (l *RedisLimiter) windowKey(key string, windowStart time.Time) string {
	return fmt.Sprintf("%s:%s:%d", keyPrefix, key, windowStart.Unix())
}

// Ping checks connectivity to Redis.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	if err := l.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (l *RedisLimiter) Close() error {
	return l.client.Close()
}
