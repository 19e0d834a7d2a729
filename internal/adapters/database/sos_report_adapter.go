package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
)

var sosReportColumns = []any{
	"id", "longitude", "latitude", "symptoms", "description", "status", "created_at", "updated_at",
}

// SosReportAdapter implements the SosReportRepository interface
type SosReportAdapter struct {
	base
}

// NewSosReportAdapter creates a new SOS report adapter
func NewSosReportAdapter(s store.Store) repositories.SosReportRepository {
	return &SosReportAdapter{base: newBase(s, schema.SosReports)}
}

func sosReportRecord(r *entities.SosReport) goqu.Record {
	return goqu.Record{
		"id":          r.ID,
		"longitude":   r.Location.Longitude(),
		"latitude":    r.Location.Latitude(),
		"symptoms":    encodeList(r.Symptoms),
		"description": r.Description,
		"status":      string(r.Status),
		"created_at":  toMillis(r.CreatedAt),
		"updated_at":  toMillis(r.UpdatedAt),
	}
}

func scanSosReport(s scanner) (*entities.SosReport, error) {
	var (
		r                entities.SosReport
		lng, lat         float64
		symptoms, status string
		created, updated int64
	)
	err := s.Scan(&r.ID, &lng, &lat, &symptoms, &r.Description, &status, &created, &updated)
	if err != nil {
		return nil, err
	}
	if r.Symptoms, err = decodeList(symptoms); err != nil {
		return nil, err
	}
	r.Location = entities.NewPoint(lng, lat)
	r.Status = entities.SosStatus(status)
	r.CreatedAt = fromMillis(created)
	r.UpdatedAt = fromMillis(updated)
	return &r, nil
}

func sosReportLocation(r *entities.SosReport) entities.GeoPoint { return r.Location }

// Create inserts a report
func (a *SosReportAdapter) Create(ctx context.Context, report *entities.SosReport) error {
	prepare(&report.ID, &report.CreatedAt, &report.UpdatedAt)
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(sosReportRecord(report)), "create sos report")
	return err
}

// InsertMany inserts reports in a single statement
func (a *SosReportAdapter) InsertMany(ctx context.Context, reports []*entities.SosReport) error {
	if len(reports) == 0 {
		return nil
	}
	rows := make([]any, 0, len(reports))
	for _, r := range reports {
		prepare(&r.ID, &r.CreatedAt, &r.UpdatedAt)
		rows = append(rows, sosReportRecord(r))
	}
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(rows...), "insert sos reports")
	return err
}

// GetByID retrieves a report by ID
func (a *SosReportAdapter) GetByID(ctx context.Context, id string) (*entities.SosReport, error) {
	ds := a.selectFrom(sosReportColumns).Where(goqu.C("id").Eq(id))
	return queryOne(ctx, a.base, ds, scanSosReport, "sos report with id "+id)
}

// List retrieves reports, newest first by default
func (a *SosReportAdapter) List(ctx context.Context, filter repositories.SosReportFilter) ([]*entities.SosReport, error) {
	ds := a.selectFrom(sosReportColumns)
	if filter.Status != "" {
		ds = ds.Where(goqu.C("status").Eq(string(filter.Status)))
	}
	return queryAll(ctx, a.base, paginate(ds, filter.ListOptions), scanSosReport)
}

// Nearby retrieves reports around a point, nearest first
func (a *SosReportAdapter) Nearby(ctx context.Context, query repositories.NearbyQuery) ([]*entities.SosReport, error) {
	return nearby(ctx, a.base, sosReportColumns, query, scanSosReport, sosReportLocation)
}

// Count returns the number of reports
func (a *SosReportAdapter) Count(ctx context.Context) (int64, error) {
	return a.count(ctx)
}
