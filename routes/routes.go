package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/credit-limit-service/app"
	"github.com/upb/credit-limit-service/handlers"
	"github.com/upb/credit-limit-service/middleware"
	"github.com/upb/credit-limit-service/services"
	"github.com/upb/credit-limit-service/utils"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(deps.Config.Server.RequestTimeout))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Config.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{
			middleware.RequestIDHeader,
			"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After",
		},
		MaxAge: 300,
	}))

	decisionHandler := handlers.NewDecisionHandler(deps.Decisions, deps.Logger)
	feedbackHandler := handlers.NewFeedbackHandler(deps.Feedback, deps.Logger)

	healthHandler := handlers.NewHealthHandler(deps.RateLimiter, deps.Metrics,
		deps.Config.Environment, deps.Config.RateLimit.Describe(), deps.Logger)

	// Only the POST endpoints are rate limited
	var limited []func(http.Handler) http.Handler
	if deps.RateLimitMiddleware != nil {
		limited = append(limited, deps.RateLimitMiddleware.Limit)
	}

	// Health check endpoints
	r.Get("/healthz", healthHandler.HandleHealth)
	r.Get("/readyz", healthHandler.HandleReadiness)

	// Paths used by the original web client
	r.Route("/api", func(r chi.Router) {
		r.With(limited...).Post("/credit-limit", decisionHandler.HandleCreditLimit)
		r.With(limited...).Post("/feedback", feedbackHandler.HandleSubmit)

		// API v1 routes
		r.Route("/v1", func(r chi.Router) {
			r.Get("/status", healthHandler.HandleStatus)
			r.Get("/cards", decisionHandler.HandleListCards)
			r.With(limited...).Post("/credit-limit", decisionHandler.HandleCreditLimit)
			r.With(limited...).Post("/feedback", feedbackHandler.HandleSubmit)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteNotFound(w, services.ErrRouteNotFound.Message)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteMethodNotAllowed(w, "")
	})

	return r
}
