package repositories

import (
	"context"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// ContactMessageRepository defines the interface for contact form messages
type ContactMessageRepository interface {
	Create(ctx context.Context, message *entities.ContactMessage) error
	InsertMany(ctx context.Context, messages []*entities.ContactMessage) error
	List(ctx context.Context, filter ContactMessageFilter) ([]*entities.ContactMessage, error)
	Count(ctx context.Context) (int64, error)
}

// ContactMessageFilter defines filters for listing messages
type ContactMessageFilter struct {
	Status entities.ContactStatus
	Email  string
	ListOptions
}
