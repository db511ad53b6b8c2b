package entity

import (
	"strings"
	"time"

	errs "github.com/wanjiru-dev/church-ledger/internal/domain/error"
	coreport "github.com/wanjiru-dev/church-ledger/internal/domain/port/core"
)

// Role is the single source of truth for what a user may do.
// Boolean checks are derived from it, never stored alongside it.
type Role string

// Roles
const (
	RoleAdmin   Role = "ADMIN"
	RoleFinance Role = "FINANCE"
)

// Display returns the human-readable label for the role
func (r Role) Display() string {
	switch r {
	case RoleAdmin:
		return "Church Treasurer"
	case RoleFinance:
		return "Finance Team"
	default:
		return string(r)
	}
}

// IsValidRole validates if the role is allowed
func IsValidRole(role string) bool {
	return role == string(RoleAdmin) || role == string(RoleFinance)
}

// User represents an account identity. Credentials are stored as an opaque
// hash produced by the password hasher port.
type User struct {
	ID           uint64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Profile is attached one-to-one and exists for every user
	Profile *Profile
}

// Profile holds the role and contact details attached to a user
type Profile struct {
	ID          uint64
	UserID      uint64
	Role        Role
	PhoneNumber string
}

// NewUser creates a user with its attached profile. The pair is constructed
// together so the persistence layer can save both inside one transaction.
func NewUser(username, email, firstName, lastName, passwordHash string, role Role, timeProvider coreport.TimeProvider) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errs.NewValidationError("username", errs.ErrInvalidRequest)
	}
	if !IsValidRole(string(role)) {
		return nil, errs.NewValidationError("role", errs.ErrInvalidRole)
	}

	now := timeProvider.Now()
	return &User{
		Username:     username,
		Email:        strings.TrimSpace(email),
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
		Profile: &Profile{
			Role: role,
		},
	}, nil
}

// IsAdmin reports whether the user's role grants treasurer privileges
func (u *User) IsAdmin() bool {
	return u.Profile != nil && u.Profile.Role == RoleAdmin
}

// DisplayName returns the user's full name, falling back to the username
func (u *User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// Actor identifies who is performing an operation. It is populated by the
// authentication boundary and consumed by the authorization policy.
type Actor struct {
	UserID    uint64
	ProfileID uint64
	Role      Role
	Name      string
}

// IsAdmin reports whether the actor holds the treasurer role
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
