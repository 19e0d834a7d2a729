package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// ContactService stores contact form messages.
type ContactService struct {
	repo   repositories.ContactMessageRepository
	logger zerolog.Logger
}

// NewContactService creates a new contact service.
func NewContactService(repo repositories.ContactMessageRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

// Submit validates and stores a message. New messages always start as "new".
func (s *ContactService) Submit(ctx context.Context, message *entities.ContactMessage) error {
	message.Status = entities.ContactStatusNew
	if err := message.Validate(); err != nil {
		return err
	}
	if !entities.ValidEmail(message.Email) {
		return apperrors.NewValidationError("invalid email format")
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return err
	}
	s.logger.Info().Str("contact_id", message.ID).Str("subject", message.Subject).Msg("contact message received")
	return nil
}

// List returns messages newest first.
func (s *ContactService) List(ctx context.Context, filter repositories.ContactMessageFilter) ([]*entities.ContactMessage, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	return s.repo.List(ctx, filter)
}
