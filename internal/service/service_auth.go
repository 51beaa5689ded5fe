package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ykarimov/authgate/internal/config"
	"github.com/ykarimov/authgate/internal/logger"
	"github.com/ykarimov/authgate/internal/store"
	"github.com/ykarimov/authgate/internal/utils"
	"github.com/ykarimov/authgate/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, password resets,
// and the JWT token lifecycle using a UserRepository for persistence and
// bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// bcryptCost is the bcrypt work factor applied when hashing passwords.
	bcryptCost int

	// minPasswordLength is the password policy enforced before any hashing.
	minPasswordLength int

	// defaultRole is assigned to newly registered accounts.
	defaultRole models.Role

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.Auth, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:    userRepository,
		tokenSignKey:      cfg.TokenSignKey,
		tokenIssuer:       cfg.TokenIssuer,
		tokenDuration:     cfg.TokenDuration,
		bcryptCost:        cfg.BcryptCost,
		minPasswordLength: cfg.MinPasswordLength,
		defaultRole:       models.Role(cfg.DefaultRole),
		logger:            logger,
	}
}

// Register creates a new user account with the default role.
//
// It validates that the name is non-empty, the email matches the accepted
// address shape (after lowercasing), and the password satisfies the minimum
// length policy. The password is bcrypt-hashed before it reaches the
// repository; the plaintext is never stored or logged.
//
// Returns the persisted user (with server-assigned UserID) or:
//   - ErrInvalidDataProvided if the name is empty.
//   - ErrInvalidEmail if the email does not match the address shape.
//   - ErrPasswordTooShort if the password violates the length policy.
//   - store.ErrEmailAlreadyExists (wrapped) if the email is already taken.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	user := models.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  a.defaultRole,
	}
	user.NormalizeEmail()

	if user.Name == "" {
		log.Error().Msg("empty name provided")
		return models.User{}, ErrInvalidDataProvided
	}
	if err := models.ValidateEmail(user.Email); err != nil {
		log.Err(err).Msg("invalid email provided")
		return models.User{}, ErrInvalidEmail
	}
	if err := a.checkPasswordPolicy(req.Password); err != nil {
		return models.User{}, err
	}

	hash, err := utils.HashPassword(req.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}
	user.PasswordHash = hash

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It looks up the account by (lowercased) email and verifies the supplied
// password against the stored bcrypt hash; the comparison runs in constant
// time with respect to where a mismatch occurs.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - store.ErrNoUserWasFound (wrapped) if no account owns the email.
//   - ErrWrongPassword if the password does not match.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Msg("empty email or password provided")
		return models.User{}, ErrInvalidDataProvided
	}

	lookup := models.User{Email: email}
	lookup.NormalizeEmail()

	foundUser, err := a.userRepository.FindUserByEmail(ctx, lookup.Email)
	if err != nil {
		log.Err(err).Str("email", lookup.Email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.CheckPassword(password, foundUser.PasswordHash) {
		log.Error().
			Int64("id", foundUser.UserID).
			Str("email", foundUser.Email).
			Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// ResetPassword overwrites the stored hash of the account identified by
// email with the bcrypt hash of newPassword.
//
// Reset is keyed by email alone: no previous password or emailed token is
// required. This is a documented simplification of the flow, not an
// oversight.
//
// Returns:
//   - ErrPasswordTooShort if newPassword violates the length policy.
//   - store.ErrNoUserWasFound (wrapped) if no account owns the email.
func (a *authService) ResetPassword(ctx context.Context, email, newPassword string) error {
	log := logger.FromContext(ctx)

	if err := a.checkPasswordPolicy(newPassword); err != nil {
		return err
	}

	lookup := models.User{Email: email}
	lookup.NormalizeEmail()

	foundUser, err := a.userRepository.FindUserByEmail(ctx, lookup.Email)
	if err != nil {
		log.Err(err).Str("email", lookup.Email).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	hash, err := utils.HashPassword(newPassword, a.bcryptCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if err := a.userRepository.UpdatePassword(ctx, foundUser.UserID, hash); err != nil {
		log.Err(err).Int64("id", foundUser.UserID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// GetUserByID resolves a token subject to a live user record.
// The lookup hits the store on every call so that role changes and account
// deletions take effect immediately.
func (a *authService) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// checkPasswordPolicy enforces the minimum password length before any
// hashing is attempted. The plaintext is never logged.
func (a *authService) checkPasswordPolicy(password string) error {
	if len(password) < a.minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
