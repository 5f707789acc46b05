package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of a user
type UserRole string

const (
	UserRoleUser       UserRole = "user"
	UserRoleAdmin      UserRole = "admin"
	UserRoleSuperAdmin UserRole = "super_admin"
)

// ParseUserRole maps a stored role string to a UserRole, defaulting to
// the ordinary user role for unknown values.
func ParseUserRole(role string) UserRole {
	switch UserRole(role) {
	case UserRoleAdmin:
		return UserRoleAdmin
	case UserRoleSuperAdmin:
		return UserRoleSuperAdmin
	default:
		return UserRoleUser
	}
}

// User represents a registered account in the registry.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionIdentity is the normalized view of the authenticated user held
// by the session cache and handed to every consumer.
type SessionIdentity struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	DisplayName  string    `json:"display_name"`
	Role         UserRole  `json:"role"`
	IsAdmin      bool      `json:"is_admin"`
	IsSuperAdmin bool      `json:"is_super_admin"`
}

// NewSessionIdentity builds a SessionIdentity and derives the display
// name and admin flags from the raw attributes.
func NewSessionIdentity(id uuid.UUID, email, firstName, lastName string, role UserRole) *SessionIdentity {
	return &SessionIdentity{
		ID:           id,
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		DisplayName:  displayName(email, firstName, lastName),
		Role:         role,
		IsAdmin:      role == UserRoleAdmin || role == UserRoleSuperAdmin,
		IsSuperAdmin: role == UserRoleSuperAdmin,
	}
}

// IdentityFromUser builds a SessionIdentity from a persisted user record.
func IdentityFromUser(u *User) *SessionIdentity {
	return NewSessionIdentity(u.ID, u.Email, u.FirstName, u.LastName, u.Role)
}

func displayName(email, firstName, lastName string) string {
	name := strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
	if name != "" {
		return name
	}
	// Fall back to the local part of the email address
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

// RequestIdentity carries the pre-validated identity attributes an
// upstream gate may attach to a request, plus the raw session cookie for
// the fallback path. Trusted is true only when the gate attached a full
// attribute set.
type RequestIdentity struct {
	Trusted   bool
	UserID    string
	Email     string
	FirstName string
	LastName  string
	Role      string

	SessionCookie string
}

// AuthSession is the underlying identity-provider session used by the
// fallback resolution path.
type AuthSession struct {
	ID         string
	IdentityID string
	Email      string
	Active     bool
	ExpiresAt  time.Time
}
