package service

import (
	"context"
	"fmt"

	"github.com/ykarimov/authgate/internal/logger"
	"github.com/ykarimov/authgate/internal/store"
	"github.com/ykarimov/authgate/models"
)

// userService is the concrete implementation of UserService.
// It covers the admin user-management operations and profile self-service.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService backed by the given repository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// ListUsers returns every account record.
func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepository.GetAllUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return users, nil
}

// GetUser returns a single account by ID.
func (s *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("id", userID).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	return user, nil
}

// UpdateUser applies a partial admin update of name, email, and role.
//
// The email, when present, is normalized and validated; the role, when
// present, must belong to the closed role set. Empty fields keep their
// current values.
//
// Returns:
//   - ErrInvalidEmail / ErrInvalidRole on malformed input.
//   - store.ErrNoUserWasFound (wrapped) if the target does not exist.
//   - store.ErrEmailAlreadyExists (wrapped) if the new email is taken.
func (s *userService) UpdateUser(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.normalizeUpdate(&update); err != nil {
		log.Err(err).Int64("id", userID).Msg("invalid update provided")
		return models.User{}, err
	}
	if update.Role != "" && !update.Role.Valid() {
		log.Error().Int64("id", userID).Str("role", update.Role.String()).Msg("invalid role provided")
		return models.User{}, ErrInvalidRole
	}

	updated, err := s.userRepository.UpdateUser(ctx, userID, update)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user update failed")
		return models.User{}, fmt.Errorf("user update failed: %w", err)
	}

	return updated, nil
}

// DeleteUser removes an account after checking the admin-protection rule:
// accounts holding the admin role cannot be deleted, including by the admin
// performing the request.
//
// Returns:
//   - store.ErrNoUserWasFound (wrapped) if the target does not exist.
//   - ErrAdminProtected if the target holds the admin role.
func (s *userService) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	target, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("user lookup failed")
		return fmt.Errorf("user lookup failed: %w", err)
	}

	if target.IsAdmin() {
		log.Error().Int64("id", userID).Msg("refusing to delete admin account")
		return ErrAdminProtected
	}

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		log.Err(err).Int64("id", userID).Msg("user deletion failed")
		return fmt.Errorf("user deletion failed: %w", err)
	}

	return nil
}

// UpdateProfile applies a partial self-service update of name and email.
// Any role change in update is discarded: profile updates can never
// escalate privileges.
func (s *userService) UpdateProfile(ctx context.Context, userID int64, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	update.Role = ""
	if err := s.normalizeUpdate(&update); err != nil {
		log.Err(err).Int64("id", userID).Msg("invalid profile update provided")
		return models.User{}, err
	}
	if update.IsZero() {
		// nothing to change, return the current record
		return s.GetUser(ctx, userID)
	}

	updated, err := s.userRepository.UpdateUser(ctx, userID, update)
	if err != nil {
		log.Err(err).Int64("id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", err)
	}

	return updated, nil
}

// normalizeUpdate lowercases and validates the email field when present.
func (s *userService) normalizeUpdate(update *models.UserUpdate) error {
	if update.Email == "" {
		return nil
	}

	u := models.User{Email: update.Email}
	u.NormalizeEmail()
	update.Email = u.Email

	if err := models.ValidateEmail(update.Email); err != nil {
		return ErrInvalidEmail
	}

	return nil
}
