package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/credit-limit-service/config"
	"github.com/upb/credit-limit-service/services"
	"github.com/upb/credit-limit-service/services/ratelimit"
	"go.uber.org/zap/zaptest"
)

func TestNewDependencies(t *testing.T) {
	t.Run("memory rate limiter", func(t *testing.T) {
		ctx := context.Background()
		deps, err := NewDependencies(ctx, testConfig(), zaptest.NewLogger(t))
		require.NoError(t, err)
		require.NotNil(t, deps)

		assert.NotNil(t, deps.Config)
		assert.NotNil(t, deps.Logger)
		assert.NotNil(t, deps.Metrics)
		assert.NotNil(t, deps.Decisions)
		assert.NotNil(t, deps.Feedback)
		assert.IsType(t, &ratelimit.MemoryLimiter{}, deps.RateLimiter)
		assert.NotNil(t, deps.RateLimitMiddleware)

		assert.NoError(t, deps.Close(ctx))
	})

	t.Run("rate limiting disabled", func(t *testing.T) {
		ctx := context.Background()
		cfg := testConfig()
		cfg.RateLimit.Enabled = false

		deps, err := NewDependencies(ctx, cfg, zaptest.NewLogger(t))
		require.NoError(t, err)

		assert.Nil(t, deps.RateLimiter)
		assert.Nil(t, deps.RateLimitMiddleware)
		assert.NoError(t, deps.Close(ctx))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimit.Backend = config.RateLimitBackendRedis
		cfg.Redis.Addr = "127.0.0.1:1"

		deps, err := NewDependencies(context.Background(), cfg, zaptest.NewLogger(t))
		assert.Error(t, err)
		assert.Nil(t, deps)
		assert.Contains(t, err.Error(), "failed to initialize rate limiter")
		assert.True(t, services.IsInternalError(err))
		assert.Contains(t, err.Error(), "rate limit store unreachable")
	})

	t.Run("non-positive cleanup interval", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimit.CleanupInterval = 0

		deps, err := NewDependencies(context.Background(), cfg, zaptest.NewLogger(t))
		assert.Error(t, err)
		assert.Nil(t, deps)
		assert.Contains(t, err.Error(), "cleanup interval")
	})

	t.Run("invalid rule", func(t *testing.T) {
		cfg := testConfig()
		cfg.RateLimit.Requests = 0

		_, err := NewDependencies(context.Background(), cfg, zaptest.NewLogger(t))
		assert.Error(t, err)
	})
}

func TestDependenciesClose(t *testing.T) {
	ctx := context.Background()
	deps, err := NewDependencies(ctx, testConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.NoError(t, deps.Close(ctx))
	// Second close should not panic
	assert.NoError(t, deps.Close(ctx))
}

// Test helpers

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            8080,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
			RequestTimeout:  5 * time.Second,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		RateLimit: config.RateLimitConfig{
			Enabled:         true,
			Requests:        5,
			Window:          time.Minute,
			Backend:         config.RateLimitBackendMemory,
			CleanupInterval: time.Minute,
		},
		Feedback: config.FeedbackConfig{MaxLength: 2000},
		Observability: config.ObservabilityConfig{
			LogLevel:  "debug",
			LogFormat: "json",
		},
	}
}
