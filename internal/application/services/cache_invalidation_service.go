package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
)

// Cache key patterns owned by the response cache and the cached hospital
// repository.
const (
	httpCachePattern      = "http:cache:*"
	hospitalCachePattern  = "hospital:*"
	hospitalsCachePattern = "hospitals:*"
)

// CacheInvalidationService drops cached reads when data events arrive
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	logger   zerolog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus, logger zerolog.Logger) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		logger:   logger.With().Str("component", "cache_invalidation").Logger(),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins listening for events and invalidating cache
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelDataUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to data updates: %w", err)
	}

	go s.processEvents(eventChan)
	s.logger.Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service and waits for it to exit
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	<-s.done
	s.logger.Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.DataEvent) {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event != nil {
				s.handleEvent(event)
			}
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.DataEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var err error
	switch event.Type {
	case entities.DataEventHospitalRated:
		err = s.InvalidateHospital(ctx, event.RecordID)
	case entities.DataEventProviderRegistered:
		err = s.invalidate(ctx, httpCachePattern)
	case entities.DataEventDataImported:
		err = s.InvalidateAll(ctx)
	default:
		s.logger.Debug().Str("type", string(event.Type)).Msg("ignoring event")
		return
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("event_id", event.ID).Str("type", string(event.Type)).Msg("cache invalidation failed")
		return
	}
	s.logger.Debug().Str("event_id", event.ID).Str("type", string(event.Type)).Msg("cache invalidated")
}

// InvalidateHospital drops one cached hospital, every cached hospital list
// and the response cache.
func (s *CacheInvalidationService) InvalidateHospital(ctx context.Context, hospitalID string) error {
	if hospitalID != "" {
		if err := s.cache.Delete(ctx, "hospital:"+hospitalID); err != nil {
			return fmt.Errorf("failed to invalidate hospital %s: %w", hospitalID, err)
		}
	}
	return s.invalidate(ctx, hospitalsCachePattern, httpCachePattern)
}

// InvalidateAll drops every cached read. It is used after bulk imports.
func (s *CacheInvalidationService) InvalidateAll(ctx context.Context) error {
	return s.invalidate(ctx, hospitalCachePattern, hospitalsCachePattern, httpCachePattern)
}

func (s *CacheInvalidationService) invalidate(ctx context.Context, patterns ...string) error {
	for _, pattern := range patterns {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
	}
	return nil
}

// publishEvent sends event on bus when one is configured. Failures are
// logged; callers never fail because of them.
func publishEvent(ctx context.Context, bus providers.EventBus, logger zerolog.Logger, event *entities.DataEvent) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, providers.EventChannelDataUpdates, event); err != nil {
		logger.Warn().Err(err).Str("type", string(event.Type)).Msg("failed to publish data event")
	}
}
