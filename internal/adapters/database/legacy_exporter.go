package database

import (
	"context"

	"github.com/zatekoja/unitycure/backend/internal/adapters/legacy"
	"github.com/zatekoja/unitycure/backend/internal/domain/providers"
	"github.com/zatekoja/unitycure/backend/internal/domain/repositories"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	"github.com/zatekoja/unitycure/backend/internal/infrastructure/store"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// LegacyExporter reads the live store back in the flat legacy row shape, so
// a snapshot of the live store can be restored like any legacy snapshot.
type LegacyExporter struct {
	users        repositories.UserRepository
	hospitals    repositories.HospitalRepository
	appointments repositories.AppointmentRepository
	sosReports   repositories.SosReportRepository
	feedback     repositories.FeedbackRepository
	providers    repositories.ProviderRepository
	contacts     repositories.ContactMessageRepository
	chatbot      repositories.ChatbotMessageRepository
}

var _ providers.RowSource = (*LegacyExporter)(nil)

// NewLegacyExporter creates an exporter over s.
func NewLegacyExporter(s store.Store) *LegacyExporter {
	return &LegacyExporter{
		users:        NewUserAdapter(s),
		hospitals:    NewHospitalAdapter(s),
		appointments: NewAppointmentAdapter(s),
		sosReports:   NewSosReportAdapter(s),
		feedback:     NewFeedbackAdapter(s),
		providers:    NewProviderAdapter(s),
		contacts:     NewContactMessageAdapter(s),
		chatbot:      NewChatbotMessageAdapter(s),
	}
}

// Tables returns the known table names.
func (e *LegacyExporter) Tables() []string {
	return schema.TableNames
}

// ReadTable returns every record of table, oldest first.
func (e *LegacyExporter) ReadTable(ctx context.Context, table string) ([]map[string]any, error) {
	all := repositories.ListOptions{Oldest: true}
	switch table {
	case schema.Users:
		return export(e.users.List(ctx, all))(legacy.FromUser)
	case schema.Hospitals:
		return export(e.hospitals.List(ctx, repositories.HospitalFilter{ListOptions: all}))(legacy.FromHospital)
	case schema.Appointments:
		return export(e.appointments.List(ctx, repositories.AppointmentFilter{ListOptions: all}))(legacy.FromAppointment)
	case schema.SosReports:
		return export(e.sosReports.List(ctx, repositories.SosReportFilter{ListOptions: all}))(legacy.FromSosReport)
	case schema.Feedback:
		return export(e.feedback.List(ctx, repositories.FeedbackFilter{ListOptions: all}))(legacy.FromFeedback)
	case schema.Providers:
		return export(e.providers.List(ctx, repositories.ProviderFilter{ListOptions: all}))(legacy.FromProvider)
	case schema.ContactMessages:
		return export(e.contacts.List(ctx, repositories.ContactMessageFilter{ListOptions: all}))(legacy.FromContactMessage)
	case schema.ChatbotMessages:
		return export(e.chatbot.List(ctx, repositories.ChatbotMessageFilter{ListOptions: all}))(legacy.FromChatbotMessage)
	default:
		return nil, apperrors.NewValidationError("unknown table " + table)
	}
}

func export[T any](items []*T, err error) func(func(*T) legacy.Row) ([]map[string]any, error) {
	return func(toRow func(*T) legacy.Row) ([]map[string]any, error) {
		if err != nil {
			return nil, err
		}
		rows := make([]map[string]any, 0, len(items))
		for _, item := range items {
			rows = append(rows, toRow(item))
		}
		return rows, nil
	}
}
