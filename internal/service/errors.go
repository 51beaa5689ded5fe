package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrInvalidRole         = errors.New("invalid role")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	// ErrAdminProtected is returned when a delete targets an account holding
	// the admin role. Admin accounts cannot be deleted, including by themselves.
	ErrAdminProtected = errors.New("admin accounts cannot be deleted")
)
