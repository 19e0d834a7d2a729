package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
)

const (
	warmPages    = 3
	warmPageSize = 20
)

// CacheWarmingService preloads hospital reads into the cache. hospitals is
// expected to be the read-through cached repository, so reading a page is
// enough to cache it.
type CacheWarmingService struct {
	hospitals repositories.HospitalRepository
	cache     providers.CacheProvider
	logger    zerolog.Logger
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(
	hospitals repositories.HospitalRepository,
	cache providers.CacheProvider,
	logger zerolog.Logger,
) *CacheWarmingService {
	return &CacheWarmingService{
		hospitals: hospitals,
		cache:     cache,
		logger:    logger.With().Str("component", "cache_warming").Logger(),
	}
}

// WarmCache loads the first hospital list pages and every hospital on them.
// Failures are logged; warming never fails the caller.
func (s *CacheWarmingService) WarmCache(ctx context.Context) int {
	warmed := 0
	for page := 0; page < warmPages; page++ {
		hospitals, err := s.hospitals.List(ctx, repositories.HospitalFilter{
			ListOptions: repositories.ListOptions{Limit: warmPageSize, Offset: page * warmPageSize},
		})
		if err != nil {
			s.logger.Warn().Err(err).Int("page", page).Msg("failed to warm hospitals page")
			continue
		}
		for _, h := range hospitals {
			if _, err := s.hospitals.GetByID(ctx, h.ID); err != nil {
				s.logger.Warn().Err(err).Str("hospital_id", h.ID).Msg("failed to warm hospital")
				continue
			}
			warmed++
		}
		if len(hospitals) < warmPageSize {
			break
		}
	}

	if _, err := s.hospitals.List(ctx, repositories.HospitalFilter{EmergencyOnly: true}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to warm emergency hospitals")
	}

	s.logger.Info().Int("hospitals", warmed).Msg("cache warming completed")
	return warmed
}

// StartPeriodicWarming warms once, then again every interval until ctx is done
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	s.WarmCache(ctx)

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				s.logger.Info().Msg("stopping cache warming")
				return
			case <-ticker.C:
				s.WarmCache(ctx)
			}
		}
	}()
	s.logger.Info().Dur("interval", interval).Msg("started periodic cache warming")
}

// InvalidateCache drops every cached hospital entry. Migration and restore
// write through the uncached path, so callers run this after them.
func (s *CacheWarmingService) InvalidateCache(ctx context.Context) error {
	for _, pattern := range []string{"hospital:*", "hospitals:*"} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			s.logger.Warn().Err(err).Str("pattern", pattern).Msg("failed to invalidate cache pattern")
			return err
		}
	}
	s.logger.Info().Msg("hospital cache invalidated")
	return nil
}
