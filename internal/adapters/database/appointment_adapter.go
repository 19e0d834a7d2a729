package database

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
)

var appointmentColumns = []any{
	"id", "doctor_name", "hospital", "type", "date", "time",
	"patient_name", "patient_age", "patient_contact", "reason",
	"created_at", "updated_at",
}

// AppointmentAdapter implements the AppointmentRepository interface
type AppointmentAdapter struct {
	base
}

// NewAppointmentAdapter creates a new appointment adapter
func NewAppointmentAdapter(s store.Store) repositories.AppointmentRepository {
	return &AppointmentAdapter{base: newBase(s, schema.Appointments)}
}

func appointmentRecord(a *entities.Appointment) goqu.Record {
	var age any
	if a.Patient.Age != nil {
		age = *a.Patient.Age
	}
	return goqu.Record{
		"id":              a.ID,
		"doctor_name":     a.DoctorName,
		"hospital":        a.Hospital,
		"type":            a.Type,
		"date":            toMillis(a.Date),
		"time":            a.Time,
		"patient_name":    a.Patient.Name,
		"patient_age":     age,
		"patient_contact": a.Patient.Contact,
		"reason":          a.Patient.Reason,
		"created_at":      toMillis(a.CreatedAt),
		"updated_at":      toMillis(a.UpdatedAt),
	}
}

func scanAppointment(s scanner) (*entities.Appointment, error) {
	var (
		a                      entities.Appointment
		date, created, updated int64
		age                    sql.NullInt64
	)
	err := s.Scan(
		&a.ID, &a.DoctorName, &a.Hospital, &a.Type, &date, &a.Time,
		&a.Patient.Name, &age, &a.Patient.Contact, &a.Patient.Reason,
		&created, &updated,
	)
	if err != nil {
		return nil, err
	}
	if age.Valid {
		n := int(age.Int64)
		a.Patient.Age = &n
	}
	a.Date = fromMillis(date)
	a.CreatedAt = fromMillis(created)
	a.UpdatedAt = fromMillis(updated)
	return &a, nil
}

// Create inserts an appointment
func (a *AppointmentAdapter) Create(ctx context.Context, appointment *entities.Appointment) error {
	prepare(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(appointmentRecord(appointment)), "create appointment")
	return err
}

// InsertMany inserts appointments in a single statement
func (a *AppointmentAdapter) InsertMany(ctx context.Context, appointments []*entities.Appointment) error {
	if len(appointments) == 0 {
		return nil
	}
	rows := make([]any, 0, len(appointments))
	for _, ap := range appointments {
		prepare(&ap.ID, &ap.CreatedAt, &ap.UpdatedAt)
		rows = append(rows, appointmentRecord(ap))
	}
	_, err := a.exec(ctx, a.db.Insert(a.table).Rows(rows...), "insert appointments")
	return err
}

// GetByID retrieves an appointment by ID
func (a *AppointmentAdapter) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	ds := a.selectFrom(appointmentColumns).Where(goqu.C("id").Eq(id))
	return queryOne(ctx, a.base, ds, scanAppointment, "appointment with id "+id)
}

// List retrieves appointments with filters
func (a *AppointmentAdapter) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	ds := a.selectFrom(appointmentColumns)
	if filter.DoctorName != "" {
		ds = ds.Where(goqu.C("doctor_name").Eq(filter.DoctorName))
	}
	if filter.Hospital != "" {
		ds = ds.Where(goqu.C("hospital").Eq(filter.Hospital))
	}
	if filter.From != nil {
		ds = ds.Where(goqu.C("date").Gte(toMillis(*filter.From)))
	}
	if filter.To != nil {
		ds = ds.Where(goqu.C("date").Lt(toMillis(*filter.To)))
	}
	return queryAll(ctx, a.base, paginate(ds, filter.ListOptions), scanAppointment)
}

// Count returns the number of appointments
func (a *AppointmentAdapter) Count(ctx context.Context) (int64, error) {
	return a.count(ctx)
}
