package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/upb/credit-limit-service/middleware"
	"github.com/upb/credit-limit-service/services/feedback"
	"github.com/upb/credit-limit-service/utils"
	"go.uber.org/zap"
)

// FeedbackService defines the interface for feedback submission
type FeedbackService interface {
	Submit(ctx context.Context, req feedback.Request) (*feedback.Receipt, error)
}

// FeedbackResponse acknowledges a submission
type FeedbackResponse struct {
	OK bool      `json:"ok"`
	ID uuid.UUID `json:"id"`
}

// FeedbackHandler handles feedback HTTP requests
type FeedbackHandler struct {
	service FeedbackService
	logger  *zap.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(service FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		service: service,
		logger:  logger,
	}
}

// HandleSubmit handles POST /api/feedback
func (h *FeedbackHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestIDFromContext(ctx)

	var req *feedback.Request
	if err := decodeJSON(w, r, &req); err != nil || req == nil {
		h.logger.Warn("failed to parse feedback body",
			zap.String("request_id", requestID),
			zap.Error(err))
		_ = utils.WriteBadRequest(w, feedback.ErrInvalidPayload.Message, nil)
		return
	}

	receipt, err := h.service.Submit(ctx, *req)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, FeedbackResponse{OK: true, ID: receipt.ID})
}
