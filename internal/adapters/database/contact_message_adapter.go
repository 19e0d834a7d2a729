package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
)

var contactMessageColumns = []any{
	"id", "first_name", "last_name", "email", "phone", "subject", "message",
	"newsletter", "status", "created_at", "updated_at",
}

// ContactMessageAdapter implements the ContactMessageRepository interface
type ContactMessageAdapter struct {
	base
}

// NewContactMessageAdapter creates a new contact message adapter
func NewContactMessageAdapter(s store.Store) repositories.ContactMessageRepository {
	return &ContactMessageAdapter{base: newBase(s, schema.ContactMessages)}
}

func contactMessageRecord(c *entities.ContactMessage) goqu.Record {
	return goqu.Record{
		"id":         c.ID,
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"email":      c.Email,
		"phone":      c.Phone,
		"subject":    c.Subject,
		"message":    c.Message,
		"newsletter": c.Newsletter,
		"status":     string(c.Status),
		"created_at": toMillis(c.CreatedAt),
		"updated_at": toMillis(c.UpdatedAt),
	}
}

func scanContactMessage(s scanner) (*entities.ContactMessage, error) {
	var (
		c                entities.ContactMessage
		status           string
		created, updated int64
	)
	err := s.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Subject, &c.Message,
		&c.Newsletter, &status, &created, &updated,
	)
	if err != nil {
		return nil, err
	}
	c.Status = entities.ContactStatus(status)
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)
	return &c, nil
}

// Create inserts a message
func (a *ContactMessageAdapter) Create(ctx context.Context, message *entities.ContactMessage) error {
	prepare(&message.ID, &message.CreatedAt, &message.UpdatedAt)
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(contactMessageRecord(message)), "create contact message")
	return err
}

// InsertMany inserts messages in a single statement
func (a *ContactMessageAdapter) InsertMany(ctx context.Context, messages []*entities.ContactMessage) error {
	if len(messages) == 0 {
		return nil
	}
	rows := make([]any, 0, len(messages))
	for _, m := range messages {
		prepare(&m.ID, &m.CreatedAt, &m.UpdatedAt)
		rows = append(rows, contactMessageRecord(m))
	}
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(rows...), "insert contact messages")
	return err
}

// List retrieves messages with filters
func (a *ContactMessageAdapter) List(ctx context.Context, filter repositories.ContactMessageFilter) ([]*entities.ContactMessage, error) {
	ds := a.selectFrom(contactMessageColumns)
	if filter.Status != "" {
		ds = ds.Where(goqu.C("status").Eq(string(filter.Status)))
	}
	if filter.Email != "" {
		ds = ds.Where(goqu.C("email").Eq(filter.Email))
	}
	return queryAll(ctx, a.base, paginate(ds, filter.ListOptions), scanContactMessage)
}

// Count returns the number of messages
func (a *ContactMessageAdapter) Count(ctx context.Context) (int64, error) {
	return a.count(ctx)
}
