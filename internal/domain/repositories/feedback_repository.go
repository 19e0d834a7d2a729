package repositories

import (
	"context"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// FeedbackRepository defines the interface for feedback operations.
type FeedbackRepository interface {
	Create(ctx context.Context, feedback *entities.Feedback) error
	InsertMany(ctx context.Context, feedback []*entities.Feedback) error
	List(ctx context.Context, filter FeedbackFilter) ([]*entities.Feedback, error)

	// RatingStats aggregates every rating left for one service.
	RatingStats(ctx context.Context, serviceID, serviceType string) (average float64, count int, err error)

	Count(ctx context.Context) (int64, error)
}

// FeedbackFilter defines filters for listing feedback.
type FeedbackFilter struct {
	ServiceID   string
	ServiceType string
	UserID      string
	ListOptions
}
