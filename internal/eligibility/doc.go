// Package eligibility provides the credit limit increase decision engine.
//
// This package implements:
//   - A compiled-in policy table per card product (visa, mastercard, amex)
//   - Validation of untyped request payloads into an IncreaseRequest
//   - Ordered guard evaluation (ceiling, debt-to-income, cap multiplier)
//   - Approve/reject decisions with customer-facing messages
//
// The engine is pure: it holds no mutable state, performs no I/O and is safe
// for concurrent use. Policy rejections are decisions, not errors; only
// structurally invalid input produces a *ValidationError.
package eligibility
