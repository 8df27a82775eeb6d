package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/resume-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims carries the token subject (the user's email) plus the registered
// iat/exp/jti claims.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 bearer tokens. The key, ttl and
// clock are fixed at construction and never mutated.
type TokenService struct {
	key    []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

type TokenOption func(*TokenService)

// WithClock replaces time.Now for both issuance and validation.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

func NewTokenService(key []byte, ttl time.Duration, opts ...TokenOption) *TokenService {
	s := &TokenService{
		key: key,
		ttl: ttl,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	return s
}

// TTL is the lifetime given to tokens from Issue.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for subject using the configured ttl.
func (s *TokenService) Issue(subject string) (domain.AuthToken, error) {
	return s.IssueWithTTL(subject, s.ttl)
}

func (s *TokenService) IssueWithTTL(subject string, ttl time.Duration) (domain.AuthToken, error) {
	if subject == "" {
		return domain.AuthToken{}, errors.New("issue token: empty subject")
	}
	if ttl <= 0 {
		return domain.AuthToken{}, fmt.Errorf("issue token: non-positive ttl %s", ttl)
	}

	// NumericDate has second precision; truncate so the returned timestamps
	// match what is signed.
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return domain.AuthToken{}, fmt.Errorf("sign jwt: %w", err)
	}

	return domain.AuthToken{
		AccessToken: signed,
		TokenType:   domain.TokenTypeBearer,
		IssuedAt:    issuedAt,
		ExpiresAt:   expiresAt,
	}, nil
}

// Validate returns the subject of a well-formed, correctly signed, unexpired
// token. Every failure wraps domain.ErrTokenInvalid; the wrapped cause is for
// logs only. A token is already expired at exactly its exp second.
func (s *TokenService) Validate(rawToken string) (string, error) {
	claims := &Claims{}

	_, err := s.parser.ParseWithClaims(rawToken, claims, func(*jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrTokenInvalid, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", domain.ErrTokenInvalid)
	}

	return claims.Subject, nil
}
