package services

import (
	"context"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
)

// ChatbotService persists assistant conversations. Obtaining the response is
// the caller's job.
type ChatbotService struct {
	repo repositories.ChatbotMessageRepository
}

// NewChatbotService creates a new chatbot service.
func NewChatbotService(repo repositories.ChatbotMessageRepository) *ChatbotService {
	return &ChatbotService{repo: repo}
}

// Record stores one exchange.
func (s *ChatbotService) Record(ctx context.Context, userID, sessionID, message, response string) (*entities.ChatbotMessage, error) {
	msg := &entities.ChatbotMessage{
		UserID:      userID,
		SessionID:   sessionID,
		UserMessage: message,
		BotResponse: response,
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// History returns a user's newest exchanges, 50 by default.
func (s *ChatbotService) History(ctx context.Context, userID string, limit int) ([]*entities.ChatbotMessage, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.repo.List(ctx, repositories.ChatbotMessageFilter{
		UserID:      userID,
		ListOptions: repositories.ListOptions{Limit: limit},
	})
}
