package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Role is the closed set of authorization roles a user account can hold.
// Keeping it a dedicated type (instead of an open string) prevents
// invalid-role states from ever reaching the persistence layer.
type Role string

const (
	// RoleAdmin grants access to the user-management endpoints.
	RoleAdmin Role = "admin"

	// RoleUser is the default role assigned at registration.
	RoleUser Role = "user"
)

// Valid reports whether r is one of the two supported roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// String implements the fmt.Stringer interface.
func (r Role) String() string {
	return string(r)
}

// emailPattern is the minimal address shape accepted at registration:
// something, an @, something, a dot, something.
var emailPattern = regexp.MustCompile(`^.+@.+\..+$`)

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique login identifier, always stored lowercased.
	Email string `json:"email"`

	// Role determines which guarded endpoints the user may reach.
	Role Role `json:"role"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This value MUST be a hash, never plaintext, and is excluded from
	// JSON serialization so it can never cross the system boundary.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification of the account.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Sanitize returns a copy of the user safe to cross the system boundary:
// the password hash is zeroed. PasswordHash already carries `json:"-"`,
// so the projection holds for non-JSON representations as well.
func (u User) Sanitize() User {
	u.PasswordHash = ""
	return u
}

// NormalizeEmail lowercases and trims the user's email in place,
// mirroring what the store's unique index expects.
func (u *User) NormalizeEmail() {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

// UserUpdate describes a partial update of a user record.
// Zero-valued fields are left untouched by the store.
type UserUpdate struct {
	// Name replaces the display name when non-empty.
	Name string

	// Email replaces the login email when non-empty; must already be
	// normalized and validated by the caller.
	Email string

	// Role replaces the authorization role when non-empty; must be a
	// member of the closed [Role] set.
	Role Role
}

// IsZero reports whether the update carries no changes at all.
func (u UserUpdate) IsZero() bool {
	return u.Name == "" && u.Email == "" && u.Role == ""
}

// ValidateEmail checks an email against the minimal accepted address shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format: %q", email)
	}
	return nil
}
