package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/upb/credit-limit-service/services"
	"github.com/upb/credit-limit-service/services/ratelimit"
	"github.com/upb/credit-limit-service/utils"
	"go.uber.org/zap"
)

// RateLimitChecker defines the interface for rate limit checking
type RateLimitChecker interface {
	CheckLimit(ctx context.Context, key string) (*ratelimit.RateLimitResult, error)
}

// RateLimitMiddleware limits requests per client IP.
type RateLimitMiddleware struct {
	limiter RateLimitChecker
	logger  *zap.Logger
}

// NewRateLimitMiddleware creates a new RateLimitMiddleware
func NewRateLimitMiddleware(limiter RateLimitChecker, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
		logger:  logger,
	}
}

// Limit rejects requests over the client's allowance with 429. If the limit
// store fails the request is let through and the failure logged.
func (m *RateLimitMiddleware) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := GetRequestIDFromContext(ctx)
		clientIP := ClientIP(r)

		result, err := m.limiter.CheckLimit(ctx, clientIP)
		if err != nil {
			m.logger.Warn("rate limit check failed, allowing request",
				zap.String("request_id", requestID),
				zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.RequestsRemaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

		if !result.Allowed {
			retryAfter := int(time.Until(result.ResetAt).Round(time.Second).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))

			limitErr := services.NewDomainError(services.ErrorTypeRateLimit, result.ViolationReason, services.ErrRateLimitExceeded).
				WithDetail("requests_remaining", result.RequestsRemaining).
				WithDetail("reset_at", result.ResetAt.UTC().Format(time.RFC3339))

			m.logger.Warn("request blocked by rate limit",
				zap.String("request_id", requestID),
				zap.String("client_ip", clientIP),
				zap.Error(limitErr))

			_ = utils.WriteError(w, http.StatusTooManyRequests,
				services.GetErrorMessage(limitErr), services.GetErrorDetails(limitErr))
			return
		}

		next.ServeHTTP(w, r)
	})
}
