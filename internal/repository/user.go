package repository

import (
	"context"

	"github.com/ErlanBelekov/resume-api/internal/domain"
)

type UserRepository interface {
	// FindByEmail matches the email exactly as stored. Returns
	// domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create inserts a new user. A unique violation on email is reported as
	// domain.ErrDuplicateEmail.
	Create(ctx context.Context, email, passwordHash string) (*domain.User, error)
}
