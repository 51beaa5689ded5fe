package service

import (
	"context"

	"github.com/ykarimov/authgate/models"
)

// AuthService owns the credential lifecycle and session tokens: it is the
// only component that ever sees a plaintext password.
type AuthService interface {
	// Register validates and creates a new account with the default role.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login verifies the email/password pair and returns the account.
	Login(ctx context.Context, email, password string) (models.User, error)

	// ResetPassword overwrites the stored hash of the account identified by
	// email with the hash of newPassword. No ownership proof is required.
	ResetPassword(ctx context.Context, email, newPassword string) error

	// CreateToken issues a signed session token for the user.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw token string (signature, issuer, expiry).
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// GetUserByID resolves a token subject to a live user record.
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
}

// UserService covers profile self-service and the admin user-management
// operations. It never touches plaintext passwords.
type UserService interface {
	// ListUsers returns every account.
	ListUsers(ctx context.Context) ([]models.User, error)

	// GetUser returns a single account by ID.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// UpdateUser applies a partial admin update (name, email, role).
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)

	// DeleteUser removes an account. Accounts holding the admin role are
	// protected and cannot be deleted, including by themselves.
	DeleteUser(ctx context.Context, userID int64) error

	// UpdateProfile applies a partial self-service update (name, email).
	UpdateProfile(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)
}
