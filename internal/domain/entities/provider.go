package entities

import (
	"strings"
	"time"

	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// ProviderAdmin is the contact person who registered a provider.
type ProviderAdmin struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Provider is a self-registered care provider (clinic, pharmacy, lab...).
type Provider struct {
	ID           string        `json:"id"`
	ProviderType string        `json:"providerType"`
	Name         string        `json:"name"`
	Address      string        `json:"address"`
	Location     GeoPoint      `json:"location"`
	Contact      string        `json:"contact"`
	Services     []string      `json:"services"`
	Specialty    string        `json:"specialty,omitempty"`
	Admin        ProviderAdmin `json:"admin"`
	Verified     bool          `json:"verified"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Validate checks required fields.
func (p *Provider) Validate() error {
	switch {
	case strings.TrimSpace(p.ProviderType) == "":
		return apperrors.NewValidationError("providerType is required")
	case strings.TrimSpace(p.Name) == "":
		return apperrors.NewValidationError("provider name is required")
	case strings.TrimSpace(p.Address) == "":
		return apperrors.NewValidationError("provider address is required")
	case strings.TrimSpace(p.Contact) == "":
		return apperrors.NewValidationError("provider contact is required")
	case strings.TrimSpace(p.Admin.Name) == "" || strings.TrimSpace(p.Admin.Email) == "":
		return apperrors.NewValidationError("provider admin name and email are required")
	}
	if p.Services == nil {
		p.Services = []string{}
	}
	return p.Location.Validate()
}
