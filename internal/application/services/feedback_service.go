package services

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
)

const defaultFeedbackLimit = 20

// FeedbackService handles feedback submissions and keeps hospital ratings
// in step with them.
type FeedbackService struct {
	repo      repositories.FeedbackRepository
	hospitals repositories.HospitalRepository
	eventBus  providers.EventBus
	logger    zerolog.Logger
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(repo repositories.FeedbackRepository, hospitals repositories.HospitalRepository, logger zerolog.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, hospitals: hospitals, logger: logger}
}

// SetEventBus publishes rating changes on bus.
func (s *FeedbackService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// Submit stores feedback. Hospital feedback also recomputes the hospital's
// rating from all of its feedback; a failure there is logged, not returned.
func (s *FeedbackService) Submit(ctx context.Context, feedback *entities.Feedback) error {
	ctx, span := observability.StartSpan(ctx, "FeedbackService.Submit")
	defer span.End()

	if err := feedback.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		observability.RecordError(span, err)
		return err
	}

	if feedback.ServiceType == entities.ServiceTypeHospital {
		if err := s.RefreshHospitalRating(ctx, feedback.ServiceID); err != nil {
			s.logger.Error().Err(err).Str("hospital_id", feedback.ServiceID).Msg("failed to update hospital rating")
		}
	}
	return nil
}

// RefreshHospitalRating sets the hospital's rating to the average of its
// feedback, rounded to one decimal, and the feedback count.
func (s *FeedbackService) RefreshHospitalRating(ctx context.Context, hospitalID string) error {
	average, count, err := s.repo.RatingStats(ctx, hospitalID, entities.ServiceTypeHospital)
	if err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	rounded := math.Round(average*10) / 10
	if err := s.hospitals.UpdateRating(ctx, hospitalID, rounded, count); err != nil {
		return err
	}
	publishEvent(ctx, s.eventBus, s.logger, entities.NewDataEvent(entities.DataEventHospitalRated, hospitalID, map[string]interface{}{
		"average": rounded,
		"count":   count,
	}))
	return nil
}

// List returns the newest feedback for one service, 20 by default.
func (s *FeedbackService) List(ctx context.Context, serviceID, serviceType string, limit int) ([]*entities.Feedback, error) {
	if limit <= 0 {
		limit = defaultFeedbackLimit
	}
	return s.repo.List(ctx, repositories.FeedbackFilter{
		ServiceID:   serviceID,
		ServiceType: serviceType,
		ListOptions: repositories.ListOptions{Limit: limit},
	})
}
