package store

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

import (
	"context"

	"github.com/ykarimov/authgate/models"
)

// UserRepository is the data-access contract for the users table.
//
// Implementations must be safe for concurrent use; the HTTP layer calls
// these methods from many request goroutines at once.
type UserRepository interface {
	// CreateUser persists a new user and returns the canonical record with
	// server-assigned fields (UserID, CreatedAt, UpdatedAt).
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the user with the given (lowercased) email,
	// or ErrNoUserWasFound.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns the user with the given ID, or ErrNoUserWasFound.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// GetAllUsers returns every user record ordered by ID.
	GetAllUsers(ctx context.Context) ([]models.User, error)

	// UpdateUser applies a partial update (name, email, role; zero values
	// skipped) and returns the updated record, or ErrNoUserWasFound.
	UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error)

	// UpdatePassword overwrites the stored password hash of the user,
	// or returns ErrNoUserWasFound.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// DeleteUser removes the user record, or returns ErrNoUserWasFound.
	DeleteUser(ctx context.Context, userID int64) error
}
