package database

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

var hospitalColumns = []any{
	"id", "name", "address", "longitude", "latitude", "contact", "services",
	"specialty", "emergency_services", "rating_average", "rating_count",
	"created_at", "updated_at",
}

// HospitalAdapter implements the HospitalRepository interface
type HospitalAdapter struct {
	base
}

// NewHospitalAdapter creates a new hospital adapter
func NewHospitalAdapter(s store.Store) repositories.HospitalRepository {
	return &HospitalAdapter{base: newBase(s, schema.Hospitals)}
}

// hospitalDetails are the columns a re-import may overwrite.
func hospitalDetails(h *entities.Hospital) goqu.Record {
	return goqu.Record{
		"name":               h.Name,
		"address":            h.Address,
		"longitude":          h.Location.Longitude(),
		"latitude":           h.Location.Latitude(),
		"contact":            h.Contact,
		"services":           encodeList(h.Services),
		"specialty":          h.Specialty,
		"emergency_services": h.EmergencyServices,
		"updated_at":         toMillis(h.UpdatedAt),
	}
}

func hospitalRecord(h *entities.Hospital) goqu.Record {
	rec := hospitalDetails(h)
	rec["id"] = h.ID
	rec["rating_average"] = h.Rating.Average
	rec["rating_count"] = h.Rating.Count
	rec["created_at"] = toMillis(h.CreatedAt)
	return rec
}

func scanHospital(s scanner) (*entities.Hospital, error) {
	var (
		h                entities.Hospital
		lng, lat         float64
		services         string
		created, updated int64
	)
	err := s.Scan(
		&h.ID, &h.Name, &h.Address, &lng, &lat, &h.Contact, &services,
		&h.Specialty, &h.EmergencyServices, &h.Rating.Average, &h.Rating.Count,
		&created, &updated,
	)
	if err != nil {
		return nil, err
	}
	if h.Services, err = decodeList(services); err != nil {
		return nil, err
	}
	h.Location = entities.NewPoint(lng, lat)
	h.CreatedAt = fromMillis(created)
	h.UpdatedAt = fromMillis(updated)
	return &h, nil
}

func hospitalLocation(h *entities.Hospital) entities.GeoPoint { return h.Location }

// Create inserts a hospital
func (a *HospitalAdapter) Create(ctx context.Context, hospital *entities.Hospital) error {
	prepare(&hospital.ID, &hospital.CreatedAt, &hospital.UpdatedAt)
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(hospitalRecord(hospital)), "create hospital")
	return err
}

// InsertMany inserts hospitals in a single statement
func (a *HospitalAdapter) InsertMany(ctx context.Context, hospitals []*entities.Hospital) error {
	if len(hospitals) == 0 {
		return nil
	}
	rows := make([]any, 0, len(hospitals))
	for _, h := range hospitals {
		prepare(&h.ID, &h.CreatedAt, &h.UpdatedAt)
		rows = append(rows, hospitalRecord(h))
	}
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(rows...), "insert hospitals")
	return err
}

// Upsert inserts the hospital or updates the one with the same name. An
// existing rating is kept; it only changes through UpdateRating.
func (a *HospitalAdapter) Upsert(ctx context.Context, hospital *entities.Hospital) error {
	fresh := *hospital
	err := a.Create(ctx, &fresh)
	if err == nil {
		*hospital = fresh
		return nil
	}
	if !apperrors.IsConflict(err) {
		return err
	}

	details := *hospital
	if details.UpdatedAt.IsZero() {
		details.UpdatedAt = time.Now().UTC()
	}
	update := a.db.Update(a.table).
		Set(hospitalDetails(&details)).
		Where(goqu.C("name").Eq(hospital.Name))
	if _, err := a.exec(ctx, update, "update hospital"); err != nil {
		return err
	}

	existing, err := a.GetByName(ctx, hospital.Name)
	if err != nil {
		return err
	}
	*hospital = *existing
	return nil
}

// GetByID retrieves a hospital by ID
func (a *HospitalAdapter) GetByID(ctx context.Context, id string) (*entities.Hospital, error) {
	ds := a.selectFrom(hospitalColumns).Where(goqu.C("id").Eq(id))
	return queryOne(ctx, a.base, ds, scanHospital, "hospital with id "+id)
}

// GetByName retrieves a hospital by its exact name
func (a *HospitalAdapter) GetByName(ctx context.Context, name string) (*entities.Hospital, error) {
	ds := a.selectFrom(hospitalColumns).Where(goqu.C("name").Eq(name))
	return queryOne(ctx, a.base, ds, scanHospital, "hospital "+name)
}

// List retrieves hospitals with filters
func (a *HospitalAdapter) List(ctx context.Context, filter repositories.HospitalFilter) ([]*entities.Hospital, error) {
	ds := a.selectFrom(hospitalColumns)
	if filter.Specialty != "" {
		ds = ds.Where(goqu.C("specialty").Eq(filter.Specialty))
	}
	if filter.EmergencyOnly {
		ds = ds.Where(goqu.C("emergency_services").Eq(true))
	}
	return queryAll(ctx, a.base, paginate(ds, filter.ListOptions), scanHospital)
}

// Nearby retrieves hospitals around a point, nearest first
func (a *HospitalAdapter) Nearby(ctx context.Context, query repositories.NearbyQuery) ([]*entities.Hospital, error) {
	return nearby(ctx, a.base, hospitalColumns, query, scanHospital, hospitalLocation)
}

// UpdateRating replaces a hospital's rating aggregate
func (a *HospitalAdapter) UpdateRating(ctx context.Context, id string, average float64, count int) error {
	update := a.db.Update(a.table).
		Set(goqu.Record{
			"rating_average": average,
			"rating_count":   count,
			"updated_at":     toMillis(time.Now()),
		}).
		Where(goqu.C("id").Eq(id))
	return a.execOne(ctx, update, "update hospital rating", id)
}

// Count returns the number of hospitals
func (a *HospitalAdapter) Count(ctx context.Context) (int64, error) {
	return a.count(ctx)
}
