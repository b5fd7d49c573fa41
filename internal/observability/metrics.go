package observability

import (
	"context"
	"sync"
)

// Metrics collects application metrics.
type Metrics interface {
	RecordDecision(ctx context.Context, labels DecisionLabels)
	RecordFeedback(ctx context.Context)
	Snapshot() MetricsSnapshot
}

// DecisionLabels contains metric dimensions.
type DecisionLabels struct {
	Card    string
	Outcome string
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Decisions map[string]map[string]int64 `json:"decisions"`
	Feedback  int64                       `json:"feedback"`
}

// InMemoryMetrics keeps counters for the lifetime of the process.
type InMemoryMetrics struct {
	mu        sync.Mutex
	decisions map[DecisionLabels]int64
	feedback  int64
}

// NewInMemoryMetrics creates an empty collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{decisions: make(map[DecisionLabels]int64)}
}

func (m *InMemoryMetrics) RecordDecision(_ context.Context, labels DecisionLabels) {
	m.mu.Lock()
	m.decisions[labels]++
	m.mu.Unlock()
}

func (m *InMemoryMetrics) RecordFeedback(context.Context) {
	m.mu.Lock()
	m.feedback++
	m.mu.Unlock()
}

// Snapshot returns counters grouped by card, then outcome.
func (m *InMemoryMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MetricsSnapshot{
		Decisions: make(map[string]map[string]int64),
		Feedback:  m.feedback,
	}
	for labels, count := range m.decisions {
		byOutcome, ok := snap.Decisions[labels.Card]
		if !ok {
			byOutcome = make(map[string]int64)
			snap.Decisions[labels.Card] = byOutcome
		}
		byOutcome[labels.Outcome] = count
	}
	return snap
}
