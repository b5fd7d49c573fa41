package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/upb/credit-limit-service/internal/observability"
	"github.com/upb/credit-limit-service/services/feedback"
	"go.uber.org/zap"
)

// MockFeedbackService is a mock implementation of FeedbackService
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) Submit(ctx context.Context, req feedback.Request) (*feedback.Receipt, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feedback.Receipt), args.Error(1)
}

func postFeedback(h *FeedbackHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.HandleSubmit(w, req)
	return w
}

func TestHandleSubmitFeedback(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		id := uuid.New()
		mockService := new(MockFeedbackService)
		mockService.On("Submit", mock.Anything, feedback.Request{Feedback: "Great", Context: "amex"}).
			Return(&feedback.Receipt{ID: id, ReceivedAt: time.Now()}, nil)

		w := postFeedback(NewFeedbackHandler(mockService, zap.NewNop()), `{"feedback":"Great","context":"amex"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true,"id":"`+id.String()+`"}`, w.Body.String())
		mockService.AssertExpectations(t)
	})

	t.Run("invalid payloads never reach the service", func(t *testing.T) {
		for _, body := range []string{`not json`, `null`, `{"feedback":42}`, `{"feedback":"a"} {}`} {
			mockService := new(MockFeedbackService)

			w := postFeedback(NewFeedbackHandler(mockService, zap.NewNop()), body)

			assert.Equal(t, http.StatusBadRequest, w.Code, body)
			var response map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, "Invalid payload", response["error"], body)
			mockService.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
		}
	})
}

func TestHandleSubmitFeedback_Validation(t *testing.T) {
	logger := zap.NewNop()
	svc := feedback.NewService(0, observability.NewLogger(logger), observability.NewInMemoryMetrics())
	handler := NewFeedbackHandler(svc, logger)

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{name: "missing", body: `{}`, wantError: "Feedback is required"},
		{name: "blank", body: `{"feedback":"   "}`, wantError: "Feedback is required"},
		{name: "too long", body: `{"feedback":"` + strings.Repeat("a", 2001) + `"}`, wantError: "Feedback too long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postFeedback(handler, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var response map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.wantError, response["error"])
		})
	}
}
