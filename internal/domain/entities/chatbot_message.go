package entities

import (
	"time"

	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// ChatbotMessage stores one exchange with the assistant.
type ChatbotMessage struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId,omitempty"`
	SessionID   string    `json:"sessionId,omitempty"`
	UserMessage string    `json:"userMessage"`
	BotResponse string    `json:"botResponse"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate checks required fields.
func (m *ChatbotMessage) Validate() error {
	if m.UserMessage == "" || m.BotResponse == "" {
		return apperrors.NewValidationError("userMessage and botResponse are required")
	}
	return nil
}
