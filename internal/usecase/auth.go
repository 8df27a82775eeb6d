package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ErlanBelekov/resume-api/internal/domain"
	"github.com/ErlanBelekov/resume-api/internal/metrics"
	"github.com/ErlanBelekov/resume-api/internal/repository"
)

const bearerScheme = "Bearer"

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type TokenService interface {
	Issue(subject string) (domain.AuthToken, error)
	Validate(raw string) (string, error)
}

type AuthUsecase struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenService

	// dummyHash is compared against when the email is unknown so that a
	// failed login costs one bcrypt comparison either way.
	dummyHash string
}

func NewAuthUsecase(users repository.UserRepository, hasher PasswordHasher, tokens TokenService) *AuthUsecase {
	// A failure here leaves dummyHash empty; Verify then returns false quickly.
	dummy, _ := hasher.Hash("not-a-real-password")
	return &AuthUsecase{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummy,
	}
}

// Register creates a user with a hashed password and returns a fresh token.
func (u *AuthUsecase) Register(ctx context.Context, email, password string) (domain.AuthToken, error) {
	_, err := u.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		metrics.AuthEventsTotal.WithLabelValues(metrics.EventRegister, metrics.OutcomeRejected).Inc()
		return domain.AuthToken{}, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrUserNotFound):
		metrics.AuthEventsTotal.WithLabelValues(metrics.EventRegister, metrics.OutcomeError).Inc()
		return domain.AuthToken{}, fmt.Errorf("find user: %w", err)
	}

	start := time.Now()
	hash, err := u.hasher.Hash(password)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues(metrics.EventRegister, metrics.OutcomeError).Inc()
		return domain.AuthToken{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := u.users.Create(ctx, email, hash)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.AuthEventsTotal.WithLabelValues(metrics.EventRegister, metrics.OutcomeRejected).Inc()
			return domain.AuthToken{}, domain.ErrDuplicateEmail
		}
		metrics.AuthEventsTotal.WithLabelValues(metrics.EventRegister, metrics.OutcomeError).Inc()
		return domain.AuthToken{}, fmt.Errorf("create user: %w", err)
	}

	tok, err := u.tokens.Issue(user.Email)
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues(metrics.EventRegister, metrics.OutcomeError).Inc()
		return domain.AuthToken{}, fmt.Errorf("issue token: %w", err)
	}
	metrics.AuthEventsTotal.WithLabelValues(metrics.EventRegister, metrics.OutcomeSuccess).Inc()
	return tok, nil
}

// Login verifies the password and returns a fresh token. Unknown email and
// wrong password are indistinguishable to the caller.
func (u *AuthUsecase) Login(ctx context.Context, email, password string) (domain.AuthToken, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			u.hasher.Verify(password, u.dummyHash)
			metrics.AuthEventsTotal.WithLabelValues(metrics.EventLogin, metrics.OutcomeRejected).Inc()
			return domain.AuthToken{}, domain.ErrInvalidCredentials
		}
		metrics.AuthEventsTotal.WithLabelValues(metrics.EventLogin, metrics.OutcomeError).Inc()
		return domain.AuthToken{}, fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		metrics.AuthEventsTotal.WithLabelValues(metrics.EventLogin, metrics.OutcomeRejected).Inc()
		return domain.AuthToken{}, domain.ErrInvalidCredentials
	}

	tok, err := u.tokens.Issue(user.Email)
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues(metrics.EventLogin, metrics.OutcomeError).Inc()
		return domain.AuthToken{}, fmt.Errorf("issue token: %w", err)
	}
	metrics.AuthEventsTotal.WithLabelValues(metrics.EventLogin, metrics.OutcomeSuccess).Inc()
	return tok, nil
}

// Authenticate resolves an Authorization header value to the user it names.
// It returns domain.ErrAuthRequired when no bearer token is present and
// domain.ErrUnauthorized when one is present but does not resolve.
func (u *AuthUsecase) Authenticate(ctx context.Context, header string) (*domain.User, error) {
	raw, ok := bearerToken(header)
	if !ok {
		metrics.AuthEventsTotal.WithLabelValues(metrics.EventAuthenticate, metrics.OutcomeRejected).Inc()
		return nil, domain.ErrAuthRequired
	}

	email, err := u.tokens.Validate(raw)
	if err != nil {
		metrics.AuthEventsTotal.WithLabelValues(metrics.EventAuthenticate, metrics.OutcomeRejected).Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.AuthEventsTotal.WithLabelValues(metrics.EventAuthenticate, metrics.OutcomeRejected).Inc()
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
		}
		metrics.AuthEventsTotal.WithLabelValues(metrics.EventAuthenticate, metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("find user: %w", err)
	}

	metrics.AuthEventsTotal.WithLabelValues(metrics.EventAuthenticate, metrics.OutcomeSuccess).Inc()
	return user, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
