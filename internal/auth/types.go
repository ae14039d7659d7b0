package auth

import (
	"errors"
	"regexp"
	"time"
)

// emailPattern is a pragmatic format check: one @, no whitespace,
// a dot in the domain. Real validation happens when mail is sent.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// maxEmailLength is the maximum allowed email address length.
const maxEmailLength = 254

// IsValidEmail checks if an email address meets format requirements.
func IsValidEmail(email string) bool {
	return email != "" && len(email) <= maxEmailLength && emailPattern.MatchString(email)
}

// Role represents an authorisation tier in the system.
type Role string

const (
	// RoleUser is a standard authenticated account. Can view its own
	// profile and change its own password, nothing more.
	RoleUser Role = "user"

	// RoleAdmin manages the whole site: portfolio, testimonials,
	// contact messages, uploads, stats, and other accounts.
	RoleAdmin Role = "admin"
)

// ValidRoles is the closed set of valid account roles.
var ValidRoles = []Role{RoleUser, RoleAdmin}

// IsValid returns true if the role is one of the defined tiers.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents an authenticated account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	PasswordHash string    `json:"-"` // never serialised
	Role         Role      `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sentinel errors for auth operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrEmailExists        = errors.New("email already registered")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrForbidden          = errors.New("insufficient permissions")
)
