package auth

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmailTaken   = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password
	// so responses cannot leak which emails exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	// ErrTokenRevoked marks a refresh token with a valid signature that is
	// no longer in the persisted token set.
	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenNotFound = errors.New("refresh token not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrWrongPassword = errors.New("current password does not match")
)
