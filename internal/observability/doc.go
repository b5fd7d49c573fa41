// Package observability provides structured logging and in-process metrics
// for the credit limit service.
//
// This package implements:
//   - A zap-backed Logger that tags every entry with the request id
//   - Decision and feedback counters reported by the status endpoint
package observability
