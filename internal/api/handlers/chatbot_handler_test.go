package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/unitycure/backend/internal/api/handlers"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

type MockChatbotService struct {
	mock.Mock
}

func (m *MockChatbotService) Record(ctx context.Context, userID, sessionID, message, response string) (*entities.ChatbotMessage, error) {
	args := m.Called(ctx, userID, sessionID, message, response)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ChatbotMessage), args.Error(1)
}

func (m *MockChatbotService) History(ctx context.Context, userID string, limit int) ([]*entities.ChatbotMessage, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ChatbotMessage), args.Error(1)
}

func TestChatbotHandler_RecordMessage(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := new(MockChatbotService)
		handler := handlers.NewChatbotHandler(svc)
		svc.On("Record", mock.Anything, "u-1", "s-1", "I have a fever", "Please rest").
			Return(&entities.ChatbotMessage{ID: "c-1"}, nil).Once()

		body := `{"userId":"u-1","sessionId":"s-1","userMessage":"I have a fever","botResponse":"Please rest"}`
		req := httptest.NewRequest(http.MethodPost, "/api/chatbot/messages", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.RecordMessage(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"ok":true,"id":"c-1"}`, rec.Body.String())
		svc.AssertExpectations(t)
	})

	t.Run("validation error", func(t *testing.T) {
		svc := new(MockChatbotService)
		handler := handlers.NewChatbotHandler(svc)
		svc.On("Record", mock.Anything, "", "", "", "").
			Return(nil, apperrors.NewValidationError("userId is required")).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/chatbot/messages", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		handler.RecordMessage(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "userId is required")
	})
}

func TestChatbotHandler_History(t *testing.T) {
	svc := new(MockChatbotService)
	handler := handlers.NewChatbotHandler(svc)
	svc.On("History", mock.Anything, "u-1", 10).
		Return([]*entities.ChatbotMessage{{ID: "c-1", UserID: "u-1"}}, nil).Once()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/chatbot/history/{userId}", handler.History)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chatbot/history/u-1?limit=10", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"c-1"`)
	svc.AssertExpectations(t)
}
