package feedback

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/upb/credit-limit-service/internal/observability"
	"github.com/upb/credit-limit-service/services"
	"github.com/upb/credit-limit-service/utils"
	"go.uber.org/zap"
)

// DefaultMaxLength is the longest feedback accepted, in characters.
const DefaultMaxLength = 2000

var (
	ErrFeedbackRequired = services.NewDomainError(services.ErrorTypeValidation, "Feedback is required", nil)
	ErrFeedbackTooLong  = services.NewDomainError(services.ErrorTypeValidation, "Feedback too long", nil)
	ErrInvalidPayload   = services.NewDomainError(services.ErrorTypeValidation, "Invalid payload", nil)
)

// Request is a free-text comment, optionally tagged with the card page it
// was sent from.
type Request struct {
	Feedback string `json:"feedback"`
	Context  string `json:"context,omitempty" validate:"omitempty,max=64"`
}

// Receipt acknowledges an accepted submission.
type Receipt struct {
	ID         uuid.UUID `json:"id"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// Service accepts feedback. Submissions are logged, not stored.
type Service struct {
	maxLength int
	logger    observability.Logger
	metrics   observability.Metrics
	now       func() time.Time
}

// NewService creates a new feedback Service instance. A non-positive
// maxLength falls back to DefaultMaxLength.
func NewService(maxLength int, logger observability.Logger, metrics observability.Metrics) *Service {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	return &Service{
		maxLength: maxLength,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Submit validates and records a submission.
func (s *Service) Submit(ctx context.Context, req Request) (*Receipt, error) {
	if err := utils.ValidateRequired(req.Feedback, "feedback"); err != nil {
		return nil, ErrFeedbackRequired
	}
	if err := utils.ValidateStringLength(req.Feedback, "feedback", 0, s.maxLength); err != nil {
		return nil, ErrFeedbackTooLong
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, services.NewDomainError(services.ErrorTypeValidation, ErrInvalidPayload.Message, err).
			WithDetail("fields", utils.GetValidationFields(err))
	}

	receipt := &Receipt{
		ID:         uuid.New(),
		ReceivedAt: s.now().UTC(),
	}

	s.metrics.RecordFeedback(ctx)
	s.logger.Info(ctx, "feedback received",
		zap.String("feedback_id", receipt.ID.String()),
		zap.String("context", req.Context),
		zap.Int("length", len([]rune(req.Feedback))))

	return receipt, nil
}
