package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/upb/credit-limit-service/internal/observability"
	"github.com/upb/credit-limit-service/utils"
	"go.uber.org/zap"
)

// Version is reported by the status endpoint.
const Version = "1.0.0"

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// StatusResponse describes the running service
type StatusResponse struct {
	Version     string                        `json:"version"`
	Environment string                        `json:"environment"`
	RateLimit   string                        `json:"rateLimit"`
	Uptime      string                        `json:"uptime"`
	Metrics     observability.MetricsSnapshot `json:"metrics"`
}

// StoreChecker reports whether a backing store is reachable
type StoreChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	store       StoreChecker
	metrics     observability.Metrics
	environment string
	rateLimit   string
	startedAt   time.Time
	logger      *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. store may be nil when rate
// limiting is disabled.
func NewHealthHandler(store StoreChecker, metrics observability.Metrics, environment, rateLimit string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		store:       store,
		metrics:     metrics,
		environment: environment,
		rateLimit:   rateLimit,
		startedAt:   time.Now(),
		logger:      logger,
	}
}

// HandleHealth handles GET /healthz
// Basic health check - always returns 200 if service is running
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleReadiness handles GET /readyz
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{"engine": "healthy"}
	timestamp := time.Now().UTC().Format(time.RFC3339)

	checks["rate_limit_store"] = "disabled"
	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Warn("rate limit store health check failed", zap.Error(err))
			checks["rate_limit_store"] = "unhealthy"

			if err := utils.WriteServiceUnavailable(w, "rate limit store unavailable", map[string]interface{}{
				"status":    "unhealthy",
				"timestamp": timestamp,
				"checks":    checks,
			}); err != nil {
				h.logger.Error("failed to write readiness response", zap.Error(err))
			}
			return
		}
		checks["rate_limit_store"] = "healthy"
	}

	if err := utils.WriteOK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: timestamp,
		Checks:    checks,
	}); err != nil {
		h.logger.Error("failed to write readiness response", zap.Error(err))
	}
}

// HandleStatus handles GET /api/v1/status
func (h *HealthHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, StatusResponse{
		Version:     Version,
		Environment: h.environment,
		RateLimit:   h.rateLimit,
		Uptime:      time.Since(h.startedAt).Round(time.Second).String(),
		Metrics:     h.metrics.Snapshot(),
	})
}
