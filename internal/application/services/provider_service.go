package services

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/observability"
)

const defaultProviderRadiusKm = 10

// ProviderQuery selects providers. Text is matched against name, specialty
// and services; Near restricts to providers around a point.
type ProviderQuery struct {
	Type              string
	Text              string
	Near              *entities.GeoPoint
	MaxDistanceMeters float64
	Limit             int
}

// ProviderService registers and searches care providers. The search index
// is optional; without it, or when it fails, text queries run against the
// store.
type ProviderService struct {
	repo     repositories.ProviderRepository
	search   repositories.ProviderSearchRepository
	eventBus providers.EventBus
	logger   zerolog.Logger
}

// NewProviderService creates a new provider service. search may be nil.
func NewProviderService(repo repositories.ProviderRepository, search repositories.ProviderSearchRepository, logger zerolog.Logger) *ProviderService {
	return &ProviderService{repo: repo, search: search, logger: logger}
}

// SetEventBus publishes registrations on bus.
func (s *ProviderService) SetEventBus(bus providers.EventBus) {
	s.eventBus = bus
}

// Register validates and stores a provider, then indexes it.
func (s *ProviderService) Register(ctx context.Context, provider *entities.Provider) error {
	ctx, span := observability.StartSpan(ctx, "ProviderService.Register")
	defer span.End()

	if err := provider.Validate(); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, provider); err != nil {
		observability.RecordError(span, err)
		return err
	}
	if s.search != nil {
		if err := s.search.Index(ctx, provider); err != nil {
			s.logger.Warn().Err(err).Str("provider_id", provider.ID).Msg("failed to index provider")
		}
	}
	publishEvent(ctx, s.eventBus, s.logger, entities.NewDataEvent(entities.DataEventProviderRegistered, provider.ID, map[string]interface{}{
		"providerType": provider.ProviderType,
	}))
	return nil
}

// Search returns providers matching q.
func (s *ProviderService) Search(ctx context.Context, q ProviderQuery) ([]*entities.Provider, error) {
	ctx, span := observability.StartSpan(ctx, "ProviderService.Search")
	defer span.End()

	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	if q.Near != nil {
		// filtering happens after the distance cut, so only cap when unfiltered
		nearbyLimit := limit
		if q.Type != "" || q.Text != "" {
			nearbyLimit = math.MaxInt32
		}
		found, err := s.repo.Nearby(ctx, repositories.NearbyQuery{
			Latitude:  q.Near.Latitude(),
			Longitude: q.Near.Longitude(),
			RadiusKm:  radiusKm(q.MaxDistanceMeters, defaultProviderRadiusKm),
			Limit:     nearbyLimit,
		})
		if err != nil {
			observability.RecordError(span, err)
			return nil, err
		}
		return truncate(filterProviders(found, q.Type, q.Text), limit), nil
	}

	if q.Text != "" && s.search != nil {
		found, err := s.searchIndex(ctx, q.Text, limit)
		if err == nil {
			return filterProviders(found, q.Type, ""), nil
		}
		s.logger.Warn().Err(err).Msg("provider index search failed, falling back to store")
	}

	return s.repo.List(ctx, repositories.ProviderFilter{
		ProviderType: q.Type,
		Query:        q.Text,
		ListOptions:  repositories.ListOptions{Limit: limit},
	})
}

func (s *ProviderService) searchIndex(ctx context.Context, text string, limit int) ([]*entities.Provider, error) {
	ids, err := s.search.Search(ctx, text, limit)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByIDs(ctx, ids)
}

// Reindex rebuilds the search index from the store and returns the number
// of providers indexed.
func (s *ProviderService) Reindex(ctx context.Context) (int, error) {
	ctx, span := observability.StartSpan(ctx, "ProviderService.Reindex")
	defer span.End()

	if s.search == nil {
		return 0, nil
	}
	if err := s.search.InitSchema(ctx); err != nil {
		observability.RecordError(span, err)
		return 0, err
	}
	all, err := s.repo.List(ctx, repositories.ProviderFilter{})
	if err != nil {
		observability.RecordError(span, err)
		return 0, err
	}
	for _, p := range all {
		if err := s.search.Index(ctx, p); err != nil {
			observability.RecordError(span, err)
			return 0, err
		}
	}
	s.logger.Info().Int("count", len(all)).Msg("providers reindexed")
	return len(all), nil
}

func filterProviders(candidates []*entities.Provider, providerType, text string) []*entities.Provider {
	providerType = strings.ToLower(providerType)
	text = strings.ToLower(text)
	out := make([]*entities.Provider, 0, len(candidates))
	for _, p := range candidates {
		if providerType != "" && !strings.Contains(strings.ToLower(p.ProviderType), providerType) {
			continue
		}
		if text != "" && !providerMatches(p, text) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func providerMatches(p *entities.Provider, text string) bool {
	if strings.Contains(strings.ToLower(p.Name), text) || strings.Contains(strings.ToLower(p.Specialty), text) {
		return true
	}
	for _, service := range p.Services {
		if strings.Contains(strings.ToLower(service), text) {
			return true
		}
	}
	return false
}

func truncate[T any](items []T, limit int) []T {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
