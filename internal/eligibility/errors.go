package eligibility

import (
	"fmt"

	"github.com/upb/credit-limit-service/services"
)

// ValidationKind categorizes structural validation failures.
type ValidationKind string

const (
	KindMissingField     ValidationKind = "missing_field"
	KindInvalidCardType  ValidationKind = "invalid_card_type"
	KindInvalidNumeric   ValidationKind = "invalid_numeric"
	KindOutOfRange       ValidationKind = "out_of_range"
	KindMalformedPayload ValidationKind = "malformed_payload"
)

// ValidationError reports a request that could not be evaluated. It is never
// used for policy rejections.
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Is matches any ValidationError of the same kind, so the sentinels below work
// with errors.Is.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Unwrap links validation failures into the service error taxonomy.
func (e *ValidationError) Unwrap() error {
	return services.ErrInvalidInput
}

var (
	ErrMissingField     = &ValidationError{Kind: KindMissingField, Message: "missing field"}
	ErrInvalidCardType  = &ValidationError{Kind: KindInvalidCardType, Message: "invalid card type"}
	ErrInvalidNumeric   = &ValidationError{Kind: KindInvalidNumeric, Message: "invalid numeric value"}
	ErrOutOfRange       = &ValidationError{Kind: KindOutOfRange, Message: "numeric value out of range"}
	ErrMalformedPayload = &ValidationError{Kind: KindMalformedPayload, Message: "malformed payload"}
)

func missingField(field string) *ValidationError {
	return &ValidationError{
		Kind:    KindMissingField,
		Field:   field,
		Message: "Missing field: " + field,
	}
}

func invalidCardType() *ValidationError {
	return &ValidationError{
		Kind:    KindInvalidCardType,
		Field:   "card",
		Message: "Invalid card type",
	}
}

func invalidNumeric(field string) *ValidationError {
	return &ValidationError{
		Kind:    KindInvalidNumeric,
		Field:   field,
		Message: "Invalid numeric value: " + field,
	}
}

func outOfRange(field string) *ValidationError {
	bound := "greater than 0"
	if field == "monthlyExpenses" {
		bound = "0 or more"
	}
	return &ValidationError{
		Kind:    KindOutOfRange,
		Field:   field,
		Message: fmt.Sprintf("Numeric value out of range: %s must be %s", field, bound),
	}
}

// MalformedPayload builds the error returned for input that cannot be read as
// a request object at all. field may be empty.
func MalformedPayload(field string) *ValidationError {
	msg := "Invalid request payload"
	if field != "" {
		msg = fmt.Sprintf("Invalid request payload: %s has the wrong type", field)
	}
	return &ValidationError{
		Kind:    KindMalformedPayload,
		Field:   field,
		Message: msg,
	}
}
