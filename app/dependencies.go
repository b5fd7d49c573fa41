package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/upb/credit-limit-service/config"
	"github.com/upb/credit-limit-service/internal/observability"
	"github.com/upb/credit-limit-service/middleware"
	"github.com/upb/credit-limit-service/services"
	"github.com/upb/credit-limit-service/services/decision"
	"github.com/upb/credit-limit-service/services/feedback"
	"github.com/upb/credit-limit-service/services/ratelimit"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *observability.InMemoryMetrics

	// Services
	Decisions *decision.Service
	Feedback  *feedback.Service

	// Rate limiting; both nil when disabled
	RateLimiter         ratelimit.Limiter
	RateLimitMiddleware *middleware.RateLimitMiddleware

	stopWorkers context.CancelFunc
	workers     sync.WaitGroup
	closeOnce   sync.Once
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NewInMemoryMetrics(),
	}

	ctxLogger := observability.NewLogger(logger)
	deps.Decisions = decision.NewService(ctxLogger, deps.Metrics)
	deps.Feedback = feedback.NewService(cfg.Feedback.MaxLength, ctxLogger, deps.Metrics)

	if err := deps.initRateLimiter(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initRateLimiter builds the configured limiter backend
func (d *Dependencies) initRateLimiter(ctx context.Context, cfg *config.Config) error {
	if !cfg.RateLimit.Enabled {
		d.Logger.Warn("rate limiting disabled")
		return nil
	}

	rule := ratelimit.Rule{Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window}
	if err := rule.Validate(); err != nil {
		return err
	}

	switch cfg.RateLimit.Backend {
	case config.RateLimitBackendRedis:
		limiter := ratelimit.NewRedisLimiter(
			ratelimit.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB),
			rule, d.Logger)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := limiter.Ping(pingCtx); err != nil {
			_ = limiter.Close()
			return services.WrapInternal("rate limit store unreachable", err)
		}
		d.RateLimiter = limiter
		d.Logger.Info("redis rate limiter connected", zap.String("addr", cfg.Redis.Addr))

	default:
		if cfg.RateLimit.CleanupInterval <= 0 {
			return fmt.Errorf("rate limit cleanup interval must be positive, got %s", cfg.RateLimit.CleanupInterval)
		}
		limiter := ratelimit.NewMemoryLimiter(rule, d.Logger)
		workerCtx, cancel := context.WithCancel(context.Background())
		d.stopWorkers = cancel
		d.workers.Add(1)
		go func() {
			defer d.workers.Done()
			limiter.StartCleanupWorker(workerCtx, cfg.RateLimit.CleanupInterval)
		}()
		d.RateLimiter = limiter
	}

	d.RateLimitMiddleware = middleware.NewRateLimitMiddleware(d.RateLimiter, d.Logger)
	d.Logger.Info("rate limiting enabled",
		zap.String("backend", cfg.RateLimit.Backend),
		zap.Int("requests", rule.Requests),
		zap.Duration("window", rule.Window))
	return nil
}

// Close gracefully shuts down all dependencies. It is safe to call more than once.
func (d *Dependencies) Close(ctx context.Context) error {
	var closeErr error

	d.closeOnce.Do(func() {
		d.Logger.Info("shutting down dependencies")

		if d.stopWorkers != nil {
			d.stopWorkers()
			d.workers.Wait()
		}

		if d.RateLimiter != nil {
			if err := d.RateLimiter.Close(); err != nil {
				closeErr = fmt.Errorf("failed to close rate limiter: %w", err)
			}
		}

		// Sync logger
		_ = d.Logger.Sync()
	})

	return closeErr
}
