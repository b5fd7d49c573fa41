package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Limiter decides whether a client identified by key may make another request.
type Limiter interface {
	CheckLimit(ctx context.Context, key string) (*RateLimitResult, error)
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Limiter = (*MemoryLimiter)(nil)
	_ Limiter = (*RedisLimiter)(nil)
)

// RateLimitResult represents the result of a rate limit check
type RateLimitResult struct {
	Allowed           bool
	Limit             int
	RequestsRemaining int
	ResetAt           time.Time
	ViolationReason   string
}

// Rule is the per-client allowance: Requests per Window.
type Rule struct {
	Requests int
	Window   time.Duration
}

// Validate checks that the rule can admit at least one request.
func (r Rule) Validate() error {
	if r.Requests <= 0 {
		return fmt.Errorf("rate limit requests must be positive, got %d", r.Requests)
	}
	if r.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive, got %s", r.Window)
	}
	return nil
}

func (r Rule) violation() string {
	return fmt.Sprintf("exceeded %d requests per %s", r.Requests, r.Window)
}

func (r Rule) denied(resetAt time.Time) *RateLimitResult {
	return &RateLimitResult{
		Allowed:         false,
		Limit:           r.Requests,
		ResetAt:         resetAt,
		ViolationReason: r.violation(),
	}
}
