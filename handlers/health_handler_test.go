package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/credit-limit-service/internal/observability"
	"go.uber.org/zap"
)

// MockStoreChecker is a mock implementation of StoreChecker
type MockStoreChecker struct {
	mock.Mock
}

func (m *MockStoreChecker) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestHandleHealth(t *testing.T) {
	handler := NewHealthHandler(nil, observability.NewInMemoryMetrics(), "test", "disabled", zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handler.HandleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "healthy", response.Status)
	assert.NotEmpty(t, response.Timestamp)
}

func TestHandleReadiness(t *testing.T) {
	tests := []struct {
		name           string
		store          func() StoreChecker
		expectedStatus int
		expectedCheck  string
	}{
		{
			name:           "rate limiting disabled",
			store:          func() StoreChecker { return nil },
			expectedStatus: http.StatusOK,
			expectedCheck:  "disabled",
		},
		{
			name: "store reachable",
			store: func() StoreChecker {
				m := new(MockStoreChecker)
				m.On("Ping", mock.Anything).Return(nil)
				return m
			},
			expectedStatus: http.StatusOK,
			expectedCheck:  "healthy",
		},
		{
			name: "store unreachable",
			store: func() StoreChecker {
				m := new(MockStoreChecker)
				m.On("Ping", mock.Anything).Return(errors.New("connection refused"))
				return m
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCheck:  "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler(tt.store(), observability.NewInMemoryMetrics(), "test", "memory", zap.NewNop())

			w := httptest.NewRecorder()
			handler.HandleReadiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))

			if tt.expectedStatus == http.StatusServiceUnavailable {
				assert.Equal(t, "rate limit store unavailable", body["error"])
				assert.Equal(t, "service_unavailable", body["code"])
				details, ok := body["details"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, "unhealthy", details["status"])
				body = details
			} else {
				assert.Equal(t, "healthy", body["status"])
			}

			checks, ok := body["checks"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.expectedCheck, checks["rate_limit_store"])
			assert.Equal(t, "healthy", checks["engine"])
		})
	}
}

func TestHandleStatus(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	metrics.RecordDecision(context.Background(), observability.DecisionLabels{Card: "visa", Outcome: "approved"})
	handler := NewHealthHandler(nil, metrics, "staging", "redis", zap.NewNop())

	w := httptest.NewRecorder()
	handler.HandleStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var response StatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, Version, response.Version)
	assert.Equal(t, "staging", response.Environment)
	assert.Equal(t, "redis", response.RateLimit)
	assert.Equal(t, int64(1), response.Metrics.Decisions["visa"]["approved"])
}
