package legacy

import (
	"time"

	"github.com/zatekoja/unitycure/backend/internal/domain/entities"
	"github.com/zatekoja/unitycure/backend/pkg/utils"
)

// The From* functions map entities back to the flat legacy row shape used in
// snapshot files. ToX(FromX(e)) yields e apart from the id.

func flag(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func stamp(row Row, created, updated time.Time) Row {
	if !created.IsZero() {
		row["created_at"] = created.UTC().Format(time.RFC3339Nano)
	}
	if !updated.IsZero() {
		row["updated_at"] = updated.UTC().Format(time.RFC3339Nano)
	}
	return row
}

func FromUser(u *entities.User) Row {
	return stamp(Row{
		"id":         u.ID,
		"identifier": u.Identifier,
		"password":   u.Password,
		"role":       string(u.Role),
		"redirect":   u.Redirect,
	}, u.CreatedAt, u.UpdatedAt)
}

func FromHospital(h *entities.Hospital) Row {
	return stamp(Row{
		"id":                 h.ID,
		"name":               h.Name,
		"address":            h.Address,
		"lat":                h.Location.Latitude(),
		"lng":                h.Location.Longitude(),
		"contact":            h.Contact,
		"services":           utils.JoinStringList(h.Services),
		"specialty":          h.Specialty,
		"emergency_services": flag(h.EmergencyServices),
		"rating_average":     h.Rating.Average,
		"rating_count":       int64(h.Rating.Count),
	}, h.CreatedAt, h.UpdatedAt)
}

func FromAppointment(a *entities.Appointment) Row {
	var age any
	if a.Patient.Age != nil {
		age = int64(*a.Patient.Age)
	}
	return stamp(Row{
		"id":              a.ID,
		"doctor_name":     a.DoctorName,
		"hospital":        a.Hospital,
		"type":            a.Type,
		"date":            a.Date.UTC().Format(time.RFC3339Nano),
		"time":            a.Time,
		"patient_name":    a.Patient.Name,
		"patient_age":     age,
		"patient_contact": a.Patient.Contact,
		"reason":          a.Patient.Reason,
	}, a.CreatedAt, a.UpdatedAt)
}

func FromSosReport(s *entities.SosReport) Row {
	return stamp(Row{
		"id":          s.ID,
		"lat":         s.Location.Latitude(),
		"lng":         s.Location.Longitude(),
		"symptoms":    utils.JoinStringList(s.Symptoms),
		"description": s.Description,
		"status":      string(s.Status),
	}, s.CreatedAt, s.UpdatedAt)
}

func FromFeedback(f *entities.Feedback) Row {
	return stamp(Row{
		"id":           f.ID,
		"service_id":   f.ServiceID,
		"service_type": f.ServiceType,
		"user_id":      f.UserID,
		"rating":       int64(f.Rating),
		"review":       f.Review,
	}, f.CreatedAt, f.UpdatedAt)
}

func FromProvider(p *entities.Provider) Row {
	return stamp(Row{
		"id":            p.ID,
		"provider_type": p.ProviderType,
		"name":          p.Name,
		"address":       p.Address,
		"lat":           p.Location.Latitude(),
		"lng":           p.Location.Longitude(),
		"contact":       p.Contact,
		"services":      utils.JoinStringList(p.Services),
		"specialty":     p.Specialty,
		"admin_name":    p.Admin.Name,
		"admin_email":   p.Admin.Email,
		"verified":      flag(p.Verified),
	}, p.CreatedAt, p.UpdatedAt)
}

func FromContactMessage(c *entities.ContactMessage) Row {
	return stamp(Row{
		"id":         c.ID,
		"first_name": c.FirstName,
		"last_name":  c.LastName,
		"email":      c.Email,
		"phone":      c.Phone,
		"subject":    c.Subject,
		"message":    c.Message,
		"newsletter": flag(c.Newsletter),
		"status":     string(c.Status),
	}, c.CreatedAt, c.UpdatedAt)
}

func FromChatbotMessage(m *entities.ChatbotMessage) Row {
	return stamp(Row{
		"id":           m.ID,
		"user_id":      m.UserID,
		"session_id":   m.SessionID,
		"user_message": m.UserMessage,
		"bot_response": m.BotResponse,
	}, m.CreatedAt, m.UpdatedAt)
}
