package user

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPhone    = errors.New("invalid phone number")
	ErrInvalidCode     = errors.New("invalid verification code")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrTooManyAttempts = errors.New("too many verification attempts")
	ErrInvalidToken    = errors.New("invalid or revoked token")
)
