package handlers

import (
	"context"
	"net/http"

	"github.com/upb/credit-limit-service/internal/eligibility"
	"github.com/upb/credit-limit-service/middleware"
	"github.com/upb/credit-limit-service/utils"
	"go.uber.org/zap"
)

// DecisionService defines the interface for credit limit decisions
type DecisionService interface {
	// Decide validates a decoded JSON payload and evaluates it
	Decide(ctx context.Context, raw any) (eligibility.Decision, error)

	// Policies returns the card policy table
	Policies() []eligibility.Policy
}

// CardsResponse lists the card products and their thresholds.
type CardsResponse struct {
	Cards             []eligibility.Policy `json:"cards"`
	CeilingMultiplier float64              `json:"ceilingMultiplier"`
}

// DecisionHandler handles credit limit HTTP requests
type DecisionHandler struct {
	service DecisionService
	logger  *zap.Logger
}

// NewDecisionHandler creates a new DecisionHandler
func NewDecisionHandler(service DecisionService, logger *zap.Logger) *DecisionHandler {
	return &DecisionHandler{
		service: service,
		logger:  logger,
	}
}

// HandleCreditLimit handles POST /api/credit-limit
// Approved and rejected decisions are both 200; only unusable input is 400.
func (h *DecisionHandler) HandleCreditLimit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var raw any
	if err := decodeJSON(w, r, &raw); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		HandleServiceError(w, eligibility.MalformedPayload(""), h.logger)
		return
	}

	decision, err := h.service.Decide(ctx, raw)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if err := utils.WriteOK(w, decision); err != nil {
		h.logger.Error("failed to write decision response",
			zap.String("request_id", requestID),
			zap.Error(err))
	}
}

// HandleListCards handles GET /api/v1/cards
func (h *DecisionHandler) HandleListCards(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, CardsResponse{
		Cards:             h.service.Policies(),
		CeilingMultiplier: eligibility.CeilingMultiplier,
	})
}
