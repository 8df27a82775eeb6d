package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordTooLong    = errors.New("password is too long")

	// ErrTokenInvalid covers every way a bearer token can fail validation:
	// malformed, bad signature, missing subject, expired.
	ErrTokenInvalid = errors.New("token is invalid or expired")

	// ErrAuthRequired means no bearer token was presented at all.
	ErrAuthRequired = errors.New("authentication required")
	// ErrUnauthorized is the single outcome for a presented token that does
	// not resolve to a live user.
	ErrUnauthorized = errors.New("unauthorized")
)

const TokenTypeBearer = "bearer"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthToken is what a client receives after register/login. Nothing about it
// is stored server-side.
type AuthToken struct {
	AccessToken string
	TokenType   string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}
