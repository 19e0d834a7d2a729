package entities

import (
	"strings"
	"time"

	"golang.org/x/text/cases"

	apperrors "github.com/zatekoja/unitycure/backend/pkg/errors"
)

// Role is one of the fixed platform roles.
type Role string

const (
	RoleCitizen       Role = "Citizen"
	RoleHospitalStaff Role = "Hospital Staff"
	RoleDoctor        Role = "Doctor"
	RoleDispatcher    Role = "Dispatcher"
	RolePlatformAdmin Role = "Platform Admin"
)

// Roles lists every accepted role.
var Roles = []Role{RoleCitizen, RoleHospitalStaff, RoleDoctor, RoleDispatcher, RolePlatformAdmin}

// IsValid reports whether r is one of Roles.
func (r Role) IsValid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// DefaultRedirect is where users land when registration omits a redirect.
const DefaultRedirect = "/user_dashboard.html"

// User represents a platform account. Identifier is an email or phone number
// and is unique without regard to case.
type User struct {
	ID         string    `json:"id"`
	Identifier string    `json:"identifier"`
	Password   string    `json:"-"`
	Role       Role      `json:"role"`
	Redirect   string    `json:"redirect"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// IdentifierKey returns the natural key used for uniqueness and lookups.
func (u *User) IdentifierKey() string {
	return NormalizeIdentifier(u.Identifier)
}

// NormalizeIdentifier trims and case-folds an identifier. A Caser is not
// safe for concurrent use, so each call builds its own.
func NormalizeIdentifier(identifier string) string {
	return cases.Fold().String(strings.TrimSpace(identifier))
}

// Validate checks required fields and the role enumeration.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Identifier) == "" {
		return apperrors.NewValidationError("identifier is required")
	}
	if u.Password == "" {
		return apperrors.NewValidationError("password is required")
	}
	if !u.Role.IsValid() {
		return apperrors.NewValidationError("role " + string(u.Role) + " is not recognized")
	}
	if u.Redirect == "" {
		return apperrors.NewValidationError("redirect is required")
	}
	return nil
}
