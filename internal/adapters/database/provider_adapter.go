package database

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
)

var providerColumns = []any{
	"id", "provider_type", "name", "address", "longitude", "latitude", "contact",
	"services", "specialty", "admin_name", "admin_email", "verified",
	"created_at", "updated_at",
}

// ProviderAdapter implements the ProviderRepository interface
type ProviderAdapter struct {
	base
}

// NewProviderAdapter creates a new provider adapter
func NewProviderAdapter(s store.Store) repositories.ProviderRepository {
	return &ProviderAdapter{base: newBase(s, schema.Providers)}
}

func providerRecord(p *entities.Provider) goqu.Record {
	return goqu.Record{
		"id":            p.ID,
		"provider_type": p.ProviderType,
		"name":          p.Name,
		"address":       p.Address,
		"longitude":     p.Location.Longitude(),
		"latitude":      p.Location.Latitude(),
		"contact":       p.Contact,
		"services":      encodeList(p.Services),
		"specialty":     p.Specialty,
		"admin_name":    p.Admin.Name,
		"admin_email":   p.Admin.Email,
		"verified":      p.Verified,
		"created_at":    toMillis(p.CreatedAt),
		"updated_at":    toMillis(p.UpdatedAt),
	}
}

func scanProvider(s scanner) (*entities.Provider, error) {
	var (
		p                entities.Provider
		lng, lat         float64
		services         string
		created, updated int64
	)
	err := s.Scan(
		&p.ID, &p.ProviderType, &p.Name, &p.Address, &lng, &lat, &p.Contact,
		&services, &p.Specialty, &p.Admin.Name, &p.Admin.Email, &p.Verified,
		&created, &updated,
	)
	if err != nil {
		return nil, err
	}
	if p.Services, err = decodeList(services); err != nil {
		return nil, err
	}
	p.Location = entities.NewPoint(lng, lat)
	p.CreatedAt = fromMillis(created)
	p.UpdatedAt = fromMillis(updated)
	return &p, nil
}

func providerLocation(p *entities.Provider) entities.GeoPoint { return p.Location }

// Create inserts a provider
func (a *ProviderAdapter) Create(ctx context.Context, provider *entities.Provider) error {
	prepare(&provider.ID, &provider.CreatedAt, &provider.UpdatedAt)
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(providerRecord(provider)), "create provider")
	return err
}

// InsertMany inserts providers in a single statement
func (a *ProviderAdapter) InsertMany(ctx context.Context, providers []*entities.Provider) error {
	if len(providers) == 0 {
		return nil
	}
	rows := make([]any, 0, len(providers))
	for _, p := range providers {
		prepare(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		rows = append(rows, providerRecord(p))
	}
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(rows...), "insert providers")
	return err
}

// GetByID retrieves a provider by ID
func (a *ProviderAdapter) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	ds := a.selectFrom(providerColumns).Where(goqu.C("id").Eq(id))
	return queryOne(ctx, a.base, ds, scanProvider, "provider with id "+id)
}

// GetByIDs retrieves providers by ID in the order given. Unknown ids are skipped.
func (a *ProviderAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Provider, error) {
	if len(ids) == 0 {
		return []*entities.Provider{}, nil
	}
	found, err := queryAll(ctx, a.base, a.selectFrom(providerColumns).Where(goqu.C("id").In(ids)), scanProvider)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entities.Provider, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]*entities.Provider, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// List retrieves providers with filters
func (a *ProviderAdapter) List(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	ds := a.selectFrom(providerColumns)
	if filter.ProviderType != "" {
		ds = ds.Where(goqu.C("provider_type").Eq(filter.ProviderType))
	}
	if filter.VerifiedOnly {
		ds = ds.Where(goqu.C("verified").Eq(true))
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		pattern := "%" + q + "%"
		ds = ds.Where(goqu.Or(
			goqu.L("LOWER(name) LIKE ?", pattern),
			goqu.L("LOWER(specialty) LIKE ?", pattern),
			goqu.L("LOWER(CAST(services AS TEXT)) LIKE ?", pattern),
		))
	}
	return queryAll(ctx, a.base, paginate(ds, filter.ListOptions), scanProvider)
}

// Nearby retrieves providers around a point, nearest first
func (a *ProviderAdapter) Nearby(ctx context.Context, query repositories.NearbyQuery) ([]*entities.Provider, error) {
	return nearby(ctx, a.base, providerColumns, query, scanProvider, providerLocation)
}

// Count returns the number of providers
func (a *ProviderAdapter) Count(ctx context.Context) (int64, error) {
	return a.count(ctx)
}
