package handlers

import (
	"errors"
	"net/http"

	"github.com/upb/credit-limit-service/internal/eligibility"
	"github.com/upb/credit-limit-service/services"
	"github.com/upb/credit-limit-service/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := services.GetErrorDetails(err)

	var validationErr *eligibility.ValidationError
	switch {
	case errors.As(err, &validationErr):
		if err := utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse{
			Error: validationErr.Message,
			Code:  string(validationErr.Kind),
			Field: validationErr.Field,
		}); err != nil {
			logger.Error("failed to write validation response", zap.Error(err))
		}

	case services.IsValidationError(err):
		if err := utils.WriteBadRequest(w, services.GetErrorMessage(err), details); err != nil {
			logger.Error("failed to write bad request response", zap.Error(err))
		}

	case services.IsNotFoundError(err):
		if err := utils.WriteNotFound(w, services.GetErrorMessage(err)); err != nil {
			logger.Error("failed to write not found response", zap.Error(err))
		}

	case services.IsRateLimitError(err):
		if err := utils.WriteTooManyRequests(w, services.GetErrorMessage(err), details); err != nil {
			logger.Error("failed to write rate limit response", zap.Error(err))
		}

	case services.IsInternalError(err):
		// Log internal errors but return generic message
		logger.Error("internal server error", zap.Error(err))
		if err := utils.WriteInternalServerError(w, "An internal error occurred"); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		if err := utils.WriteInternalServerError(w, "An unexpected error occurred"); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}
	}
}
