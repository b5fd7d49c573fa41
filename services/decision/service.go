package decision

import (
	"context"
	"errors"

	"github.com/upb/credit-limit-service/internal/eligibility"
	"github.com/upb/credit-limit-service/internal/observability"
	"go.uber.org/zap"
)

// Service runs credit limit requests through the eligibility engine and
// records each outcome. Applicant names and account numbers are never logged.
type Service struct {
	logger  observability.Logger
	metrics observability.Metrics
}

// NewService creates a new decision Service instance
func NewService(logger observability.Logger, metrics observability.Metrics) *Service {
	return &Service{
		logger:  logger,
		metrics: metrics,
	}
}

// Decide validates raw and evaluates it against the card policy. A rejection
// is a normal Decision; only a request that cannot be evaluated returns an
// error, always an *eligibility.ValidationError.
func (s *Service) Decide(ctx context.Context, raw any) (eligibility.Decision, error) {
	req, err := eligibility.Validate(raw)
	if err != nil {
		s.logValidationFailure(ctx, err)
		return eligibility.Decision{}, err
	}

	decision, err := eligibility.Evaluate(req)
	if err != nil {
		s.logValidationFailure(ctx, err)
		return eligibility.Decision{}, err
	}

	s.metrics.RecordDecision(ctx, observability.DecisionLabels{
		Card:    string(req.Card),
		Outcome: string(decision.Outcome),
	})
	s.logger.Info(ctx, "credit limit decision",
		zap.String("card", string(req.Card)),
		zap.String("outcome", string(decision.Outcome)),
		zap.Bool("approved", decision.Approved))

	return decision, nil
}

// Policies returns the card policy table.
func (s *Service) Policies() []eligibility.Policy {
	return eligibility.Policies()
}

func (s *Service) logValidationFailure(ctx context.Context, err error) {
	var verr *eligibility.ValidationError
	if errors.As(err, &verr) {
		s.logger.Info(ctx, "credit limit request rejected by validation",
			zap.String("kind", string(verr.Kind)),
			zap.String("field", verr.Field))
		return
	}
	s.logger.Warn(ctx, "credit limit request failed", zap.Error(err))
}
