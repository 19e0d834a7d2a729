package entities

import (
	"regexp"
	"strings"
	"time"

	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// ContactStatus tracks a contact form message.
type ContactStatus string

const (
	ContactStatusNew        ContactStatus = "new"
	ContactStatusInProgress ContactStatus = "in_progress"
	ContactStatusResolved   ContactStatus = "resolved"
)

// ContactStatuses lists every accepted status.
var ContactStatuses = []ContactStatus{ContactStatusNew, ContactStatusInProgress, ContactStatusResolved}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactMessage is a message sent through the contact form.
type ContactMessage struct {
	ID         string        `json:"id"`
	FirstName  string        `json:"firstName"`
	LastName   string        `json:"lastName"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone,omitempty"`
	Subject    string        `json:"subject"`
	Message    string        `json:"message"`
	Newsletter bool          `json:"newsletter"`
	Status     ContactStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// Normalize trims text fields and lower-cases the email.
func (c *ContactMessage) Normalize() {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.Subject = strings.TrimSpace(c.Subject)
	if c.Status == "" {
		c.Status = ContactStatusNew
	}
}

// Validate checks required fields and the status enumeration.
func (c *ContactMessage) Validate() error {
	c.Normalize()
	if c.FirstName == "" || c.LastName == "" || c.Email == "" || c.Subject == "" || c.Message == "" {
		return apperrors.NewValidationError("firstName, lastName, email, subject and message are required")
	}
	for _, status := range ContactStatuses {
		if c.Status == status {
			return nil
		}
	}
	return apperrors.NewValidationError("contact status " + string(c.Status) + " is not recognized")
}

// ValidEmail reports whether email looks like an address.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}
