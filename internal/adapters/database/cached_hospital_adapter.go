package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
)

// CachedHospitalAdapter wraps a HospitalRepository with read-through caching
// of single hospitals and list pages. Writes invalidate synchronously so a
// rating update is visible on the next read.
type CachedHospitalAdapter struct {
	repositories.HospitalRepository
	cache  providers.CacheProvider
	logger zerolog.Logger
}

// NewCachedHospitalAdapter creates a new cached hospital adapter
func NewCachedHospitalAdapter(adapter repositories.HospitalRepository, cache providers.CacheProvider, logger zerolog.Logger) repositories.HospitalRepository {
	return &CachedHospitalAdapter{
		HospitalRepository: adapter,
		cache:              cache,
		logger:             logger,
	}
}

// Cache TTLs (in seconds)
const (
	hospitalByIDTTL  = 300
	hospitalsListTTL = 120
)

const hospitalsListPattern = "hospitals:list:*"

func hospitalCacheKey(id string) string {
	return fmt.Sprintf("hospital:%s", id)
}

func hospitalsListCacheKey(filter repositories.HospitalFilter) string {
	return fmt.Sprintf("hospitals:list:%s:%t:%d:%d:%t",
		filter.Specialty, filter.EmergencyOnly, filter.Limit, filter.Offset, filter.Oldest)
}

// GetByID retrieves a hospital by ID with caching
func (a *CachedHospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	key := hospitalCacheKey(id)
	var hospital entities.Hospital
	if a.load(ctx, key, &hospital) {
		return &hospital, nil
	}

	found, err := a.HospitalRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.store(ctx, key, found, hospitalByIDTTL)
	return found, nil
}

// List retrieves hospitals with caching
func (a *CachedHospitalAdapter) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	key := hospitalsListCacheKey(filter)
	var hospitals []*entities.Hospital
	if a.load(ctx, key, &hospitals) {
		return hospitals, nil
	}

	found, err := a.HospitalRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	a.store(ctx, key, found, hospitalsListTTL)
	return found, nil
}

// Create creates a hospital and invalidates list caches
func (a *CachedHospitalAdapter) Create(ctx context.Context, hospital *entities.Hospital) error {
	if err := a.HospitalRepository.Create(ctx, hospital); err != nil {
		return err
	}
	a.invalidate(ctx, "")
	return nil
}

// InsertMany inserts hospitals and invalidates list caches
func (a *CachedHospitalAdapter) InsertMany(ctx context.Context, hospitals []*entities.Hospital) error {
	if err := a.HospitalRepository.InsertMany(ctx, hospitals); err != nil {
		return err
	}
	a.invalidate(ctx, "")
	return nil
}

// Upsert writes a hospital and invalidates its caches
func (a *CachedHospitalAdapter) Upsert(ctx context.Context, hospital *entities.Hospital) error {
	if err := a.HospitalRepository.Upsert(ctx, hospital); err != nil {
		return err
	}
	a.invalidate(ctx, hospital.ID)
	return nil
}

// UpdateRating updates the rating and invalidates the hospital's caches
func (a *CachedHospitalAdapter) UpdateRating(ctx context.Context, id string, average float64, count int) error {
	if err := a.HospitalRepository.UpdateRating(ctx, id, average, count); err != nil {
		return err
	}
	a.invalidate(ctx, id)
	return nil
}

func (a *CachedHospitalAdapter) load(ctx context.Context, key string, dest any) bool {
	cached, err := a.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(cached, dest); err != nil {
		a.logger.Warn().Err(err).Str("key", key).Msg("Failed to unmarshal cached hospitals")
		return false
	}
	return true
}

func (a *CachedHospitalAdapter) store(ctx context.Context, key string, value any, ttl int) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, key, data, ttl); err != nil {
		a.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache hospitals")
	}
}

func (a *CachedHospitalAdapter) invalidate(ctx context.Context, id string) {
	if id != "" {
		if err := a.cache.Delete(ctx, hospitalCacheKey(id)); err != nil {
			a.logger.Warn().Err(err).Str("hospital_id", id).Msg("Failed to invalidate hospital cache")
		}
	}
	if err := a.cache.DeletePattern(ctx, hospitalsListPattern); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to invalidate hospitals list cache")
	}
}
