package repositories

import (
	"context"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// ChatbotMessageRepository defines the interface for chat history
type ChatbotMessageRepository interface {
	Create(ctx context.Context, message *entities.ChatbotMessage) error
	InsertMany(ctx context.Context, messages []*entities.ChatbotMessage) error
	List(ctx context.Context, filter ChatbotMessageFilter) ([]*entities.ChatbotMessage, error)
	Count(ctx context.Context) (int64, error)
}

// ChatbotMessageFilter defines filters for listing chat history
type ChatbotMessageFilter struct {
	UserID    string
	SessionID string
	ListOptions
}
