package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
)

var chatbotMessageColumns = []any{
	"id", "user_id", "session_id", "user_message", "bot_response", "created_at", "updated_at",
}

// ChatbotMessageAdapter implements the ChatbotMessageRepository interface
type ChatbotMessageAdapter struct {
	base
}

// NewChatbotMessageAdapter creates a new chat history adapter
func NewChatbotMessageAdapter(s store.Store) repositories.ChatbotMessageRepository {
	return &ChatbotMessageAdapter{base: newBase(s, schema.ChatbotMessages)}
}

func chatbotMessageRecord(m *entities.ChatbotMessage) goqu.Record {
	return goqu.Record{
		"id":           m.ID,
		"user_id":      m.UserID,
		"session_id":   m.SessionID,
		"user_message": m.UserMessage,
		"bot_response": m.BotResponse,
		"created_at":   toMillis(m.CreatedAt),
		"updated_at":   toMillis(m.UpdatedAt),
	}
}

func scanChatbotMessage(s scanner) (*entities.ChatbotMessage, error) {
	var (
		m                entities.ChatbotMessage
		created, updated int64
	)
	if err := s.Scan(&m.ID, &m.UserID, &m.SessionID, &m.UserMessage, &m.BotResponse, &created, &updated); err != nil {
		return nil, err
	}
	m.CreatedAt = fromMillis(created)
	m.UpdatedAt = fromMillis(updated)
	return &m, nil
}

// Create inserts a message
func (a *ChatbotMessageAdapter) Create(ctx context.Context, message *entities.ChatbotMessage) error {
	prepare(&message.ID, &message.CreatedAt, &message.UpdatedAt)
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(chatbotMessageRecord(message)), "create chatbot message")
	return err
}

// InsertMany inserts messages in a single statement
func (a *ChatbotMessageAdapter) InsertMany(ctx context.Context, messages []*entities.ChatbotMessage) error {
	if len(messages) == 0 {
		return nil
	}
	rows := make([]any, 0, len(messages))
	for _, m := range messages {
		prepare(&m.ID, &m.CreatedAt, &m.UpdatedAt)
		rows = append(rows, chatbotMessageRecord(m))
	}
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(rows...), "insert chatbot messages")
	return err
}

// List retrieves chat history with filters
func (a *ChatbotMessageAdapter) List(ctx context.Context, filter repositories.ChatbotMessageFilter) ([]*entities.ChatbotMessage, error) {
	ds := a.selectFrom(chatbotMessageColumns)
	if filter.UserID != "" {
		ds = ds.Where(goqu.C("user_id").Eq(filter.UserID))
	}
	if filter.SessionID != "" {
		ds = ds.Where(goqu.C("session_id").Eq(filter.SessionID))
	}
	return queryAll(ctx, a.base, paginate(ds, filter.ListOptions), scanChatbotMessage)
}

// Count returns the number of messages
func (a *ChatbotMessageAdapter) Count(ctx context.Context) (int64, error) {
	return a.count(ctx)
}
