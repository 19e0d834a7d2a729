package legacy

import (
	"fmt"
	"strings"
	"time"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/internal/domain/schema"
	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

func transformError(table string, err error) error {
	return apperrors.NewRowTransformError(table, err.Error())
}

func location(table string, row Row) (entities.GeoPoint, error) {
	lat, err := Float(row, "lat")
	if err != nil {
		return entities.GeoPoint{}, transformError(table, err)
	}
	lng, err := Float(row, "lng")
	if err != nil {
		return entities.GeoPoint{}, transformError(table, err)
	}
	point := entities.NewPoint(lng, lat)
	if err := point.Validate(); err != nil {
		return entities.GeoPoint{}, transformError(table, err)
	}
	return point, nil
}

func list(table string, row Row, col string) ([]string, error) {
	items, err := List(row, col)
	if err != nil {
		return nil, transformError(table, fmt.Errorf("column %s: %w", col, err))
	}
	return items, nil
}

// timestamps reads created_at/updated_at when the row carries them. Absent
// values stay zero and are filled in on insert.
func timestamps(table string, row Row) (created, updated time.Time, err error) {
	created, _, err = Time(row, "created_at")
	if err != nil {
		return created, updated, transformError(table, err)
	}
	updated, ok, err := Time(row, "updated_at")
	if err != nil {
		return created, updated, transformError(table, err)
	}
	if !ok {
		updated = created
	}
	return created, updated, nil
}

// ToUser converts a users row.
func ToUser(row Row) (*entities.User, error) {
	u := &entities.User{
		Identifier: strings.TrimSpace(Text(row, "identifier")),
		Password:   Text(row, "password"),
		Role:       entities.Role(strings.TrimSpace(Text(row, "role"))),
		Redirect:   Text(row, "redirect"),
	}
	if u.Redirect == "" {
		u.Redirect = entities.DefaultRedirect
	}
	var err error
	if u.CreatedAt, u.UpdatedAt, err = timestamps(schema.Users, row); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, transformError(schema.Users, err)
	}
	return u, nil
}

// ToHospital converts a hospitals row. Rating columns are optional.
func ToHospital(row Row) (*entities.Hospital, error) {
	loc, err := location(schema.Hospitals, row)
	if err != nil {
		return nil, err
	}
	services, err := list(schema.Hospitals, row, "services")
	if err != nil {
		return nil, err
	}
	avg, err := Float(row, "rating_average")
	if err != nil {
		return nil, transformError(schema.Hospitals, err)
	}
	count, _, err := Int(row, "rating_count")
	if err != nil {
		return nil, transformError(schema.Hospitals, err)
	}
	h := &entities.Hospital{
		Name:              strings.TrimSpace(Text(row, "name")),
		Address:           Text(row, "address"),
		Location:          loc,
		Contact:           Text(row, "contact"),
		Services:          services,
		Specialty:         Text(row, "specialty"),
		EmergencyServices: Bool(row, "emergency_services"),
		Rating:            entities.Rating{Average: avg, Count: int(count)},
	}
	if h.CreatedAt, h.UpdatedAt, err = timestamps(schema.Hospitals, row); err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, transformError(schema.Hospitals, err)
	}
	return h, nil
}

// ToAppointment converts an appointments row. An unusable patient age is
// dropped rather than stored.
func ToAppointment(row Row) (*entities.Appointment, error) {
	date, ok, err := Time(row, "date")
	if err != nil {
		return nil, transformError(schema.Appointments, err)
	}
	if !ok {
		return nil, apperrors.NewRowTransformError(schema.Appointments, "date is required")
	}
	a := &entities.Appointment{
		DoctorName: Text(row, "doctor_name"),
		Hospital:   Text(row, "hospital"),
		Type:       Text(row, "type"),
		Date:       date,
		Time:       Text(row, "time"),
		Patient: entities.Patient{
			Name:    Text(row, "patient_name"),
			Age:     patientAge(row),
			Contact: Text(row, "patient_contact"),
			Reason:  Text(row, "reason"),
		},
	}
	if a.CreatedAt, a.UpdatedAt, err = timestamps(schema.Appointments, row); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, transformError(schema.Appointments, err)
	}
	return a, nil
}

func patientAge(row Row) *int {
	n, ok, err := Int(row, "patient_age")
	if err != nil || !ok || !entities.ValidAge(int(n)) {
		return nil
	}
	age := int(n)
	return &age
}

// ToSosReport converts a sos_reports row.
func ToSosReport(row Row) (*entities.SosReport, error) {
	loc, err := location(schema.SosReports, row)
	if err != nil {
		return nil, err
	}
	symptoms, err := list(schema.SosReports, row, "symptoms")
	if err != nil {
		return nil, err
	}
	s := &entities.SosReport{
		Location:    loc,
		Symptoms:    symptoms,
		Description: Text(row, "description"),
		Status:      entities.SosStatus(Text(row, "status")),
	}
	if s.CreatedAt, s.UpdatedAt, err = timestamps(schema.SosReports, row); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, transformError(schema.SosReports, err)
	}
	return s, nil
}

// ToFeedback converts a feedback row.
func ToFeedback(row Row) (*entities.Feedback, error) {
	rating, _, err := Int(row, "rating")
	if err != nil {
		return nil, transformError(schema.Feedback, err)
	}
	f := &entities.Feedback{
		ServiceID:   Text(row, "service_id"),
		ServiceType: Text(row, "service_type"),
		UserID:      Text(row, "user_id"),
		Rating:      int(rating),
		Review:      Text(row, "review"),
	}
	if f.CreatedAt, f.UpdatedAt, err = timestamps(schema.Feedback, row); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, transformError(schema.Feedback, err)
	}
	return f, nil
}

// ToProvider converts a providers row. Legacy providers may predate the
// admin columns, so only the name is required.
func ToProvider(row Row) (*entities.Provider, error) {
	loc, err := location(schema.Providers, row)
	if err != nil {
		return nil, err
	}
	services, err := list(schema.Providers, row, "services")
	if err != nil {
		return nil, err
	}
	p := &entities.Provider{
		ProviderType: Text(row, "provider_type"),
		Name:         strings.TrimSpace(Text(row, "name")),
		Address:      Text(row, "address"),
		Location:     loc,
		Contact:      Text(row, "contact"),
		Services:     services,
		Specialty:    Text(row, "specialty"),
		Admin: entities.ProviderAdmin{
			Name:  Text(row, "admin_name"),
			Email: Text(row, "admin_email"),
		},
		Verified: Bool(row, "verified"),
	}
	if p.Name == "" {
		return nil, apperrors.NewRowTransformError(schema.Providers, "provider name is required")
	}
	if p.CreatedAt, p.UpdatedAt, err = timestamps(schema.Providers, row); err != nil {
		return nil, err
	}
	return p, nil
}

// ToContactMessage converts a contact_messages row.
func ToContactMessage(row Row) (*entities.ContactMessage, error) {
	c := &entities.ContactMessage{
		FirstName:  Text(row, "first_name"),
		LastName:   Text(row, "last_name"),
		Email:      Text(row, "email"),
		Phone:      Text(row, "phone"),
		Subject:    Text(row, "subject"),
		Message:    Text(row, "message"),
		Newsletter: Bool(row, "newsletter"),
		Status:     entities.ContactStatus(Text(row, "status")),
	}
	var err error
	if c.CreatedAt, c.UpdatedAt, err = timestamps(schema.ContactMessages, row); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, transformError(schema.ContactMessages, err)
	}
	return c, nil
}

// ToChatbotMessage converts a chatbot_messages row.
func ToChatbotMessage(row Row) (*entities.ChatbotMessage, error) {
	m := &entities.ChatbotMessage{
		UserID:      Text(row, "user_id"),
		SessionID:   Text(row, "session_id"),
		UserMessage: Text(row, "user_message"),
		BotResponse: Text(row, "bot_response"),
	}
	var err error
	if m.CreatedAt, m.UpdatedAt, err = timestamps(schema.ChatbotMessages, row); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, transformError(schema.ChatbotMessages, err)
	}
	return m, nil
}
