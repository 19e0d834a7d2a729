package repositories

import (
	"context"
	"time"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
)

// AppointmentRepository defines the interface for appointment data operations
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entities.Appointment) error
	InsertMany(ctx context.Context, appointments []*entities.Appointment) error
	GetByID(ctx context.Context, id string) (*entities.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]*entities.Appointment, error)
	Count(ctx context.Context) (int64, error)
}

// AppointmentFilter defines filters for listing appointments
type AppointmentFilter struct {
	DoctorName string
	Hospital   string
	From       *time.Time
	To         *time.Time
	ListOptions
}
