package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

var feedbackColumns = []any{
	"id", "service_id", "service_type", "user_id", "rating", "review", "created_at", "updated_at",
}

// FeedbackAdapter implements feedback persistence.
type FeedbackAdapter struct {
	base
}

// NewFeedbackAdapter creates a new feedback adapter.
func NewFeedbackAdapter(s store.Store) repositories.FeedbackRepository {
	return &FeedbackAdapter{base: newBase(s, schema.Feedback)}
}

func feedbackRecord(f *entities.Feedback) goqu.Record {
	return goqu.Record{
		"id":           f.ID,
		"service_id":   f.ServiceID,
		"service_type": f.ServiceType,
		"user_id":      f.UserID,
		"rating":       f.Rating,
		"review":       f.Review,
		"created_at":   toMillis(f.CreatedAt),
		"updated_at":   toMillis(f.UpdatedAt),
	}
}

func scanFeedback(s scanner) (*entities.Feedback, error) {
	var (
		f                entities.Feedback
		created, updated int64
	)
	err := s.Scan(&f.ID, &f.ServiceID, &f.ServiceType, &f.UserID, &f.Rating, &f.Review, &created, &updated)
	if err != nil {
		return nil, err
	}
	f.CreatedAt = fromMillis(created)
	f.UpdatedAt = fromMillis(updated)
	return &f, nil
}

// Create inserts a feedback record.
func (a *FeedbackAdapter) Create(ctx context.Context, feedback *entities.Feedback) error {
	prepare(&feedback.ID, &feedback.CreatedAt, &feedback.UpdatedAt)
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(feedbackRecord(feedback)), "create feedback")
	return err
}

// InsertMany inserts feedback records in a single statement.
func (a *FeedbackAdapter) InsertMany(ctx context.Context, feedback []*entities.Feedback) error {
	if len(feedback) == 0 {
		return nil
	}
	rows := make([]any, 0, len(feedback))
	for _, f := range feedback {
		prepare(&f.ID, &f.CreatedAt, &f.UpdatedAt)
		rows = append(rows, feedbackRecord(f))
	}
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(rows...), "insert feedback")
	return err
}

// List retrieves feedback with filters.
func (a *FeedbackAdapter) List(ctx context.Context, filter repositories.FeedbackFilter) ([]*entities.Feedback, error) {
	ds := a.selectFrom(feedbackColumns)
	if filter.ServiceID != "" {
		ds = ds.Where(goqu.C("service_id").Eq(filter.ServiceID))
	}
	if filter.ServiceType != "" {
		ds = ds.Where(goqu.C("service_type").Eq(filter.ServiceType))
	}
	if filter.UserID != "" {
		ds = ds.Where(goqu.C("user_id").Eq(filter.UserID))
	}
	return queryAll(ctx, a.base, paginate(ds, filter.ListOptions), scanFeedback)
}

// RatingStats returns the average and number of ratings for a service.
func (a *FeedbackAdapter) RatingStats(ctx context.Context, serviceID, serviceType string) (float64, int, error) {
	query, args, err := a.db.From(a.table).
		Select(goqu.COALESCE(goqu.AVG("rating"), 0), goqu.COUNT(goqu.Star())).
		Where(goqu.C("service_id").Eq(serviceID), goqu.C("service_type").Eq(serviceType)).
		ToSQL()
	if err != nil {
		return 0, 0, apperrors.NewInternalError("failed to build rating query", err)
	}
	var (
		average float64
		count   int
	)
	if err := a.store.QueryRow(ctx, query, args...).Scan(&average, &count); err != nil {
		return 0, 0, apperrors.NewInternalError("failed to aggregate ratings", err)
	}
	return average, count, nil
}

// Count returns the number of feedback records.
func (a *FeedbackAdapter) Count(ctx context.Context) (int64, error) {
	return a.count(ctx)
}
