package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ErlanBelekov/resume-api/internal/auth"
	"github.com/ErlanBelekov/resume-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "token-test-secret-at-least-32-chars!!"

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// clock is a settable time source shared by issuer and validator.
type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newService(c *clock, ttl time.Duration) *auth.TokenService {
	return auth.NewTokenService([]byte(testKey), ttl, auth.WithClock(c.now))
}

func TestIssue_ThenValidate_ReturnsSubject(t *testing.T) {
	c := &clock{t: epoch}
	svc := newService(c, 30*time.Minute)

	tok, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	assert.Equal(t, domain.TokenTypeBearer, tok.TokenType)
	assert.Equal(t, epoch, tok.IssuedAt)
	assert.Equal(t, epoch.Add(30*time.Minute), tok.ExpiresAt)
	assert.True(t, tok.ExpiresAt.After(tok.IssuedAt))

	sub, err := svc.Validate(tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", sub)
}

func TestIssue_SameSecondTokensDiffer(t *testing.T) {
	c := &clock{t: epoch}
	svc := newService(c, time.Hour)

	t1, err := svc.Issue("a@x.com")
	require.NoError(t, err)
	t2, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	assert.NotEqual(t, t1.AccessToken, t2.AccessToken)

	for _, tok := range []domain.AuthToken{t1, t2} {
		sub, err := svc.Validate(tok.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", sub)
	}
}

func TestIssueWithTTL_RejectsBadInput(t *testing.T) {
	svc := newService(&clock{t: epoch}, time.Hour)

	_, err := svc.IssueWithTTL("a@x.com", 0)
	assert.Error(t, err)

	_, err = svc.IssueWithTTL("a@x.com", -time.Minute)
	assert.Error(t, err)

	_, err = svc.IssueWithTTL("", time.Minute)
	assert.Error(t, err)
}

func TestValidate_ExpiryIsExclusive(t *testing.T) {
	c := &clock{t: epoch}
	svc := newService(c, 10*time.Minute)

	tok, err := svc.Issue("a@x.com")
	require.NoError(t, err)

	c.t = tok.ExpiresAt.Add(-time.Second)
	_, err = svc.Validate(tok.AccessToken)
	assert.NoError(t, err, "one second before exp must be accepted")

	c.t = tok.ExpiresAt
	_, err = svc.Validate(tok.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid, "exactly at exp must be rejected")

	c.t = tok.ExpiresAt.Add(time.Hour)
	_, err = svc.Validate(tok.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestValidate_TamperedTokenRejected(t *testing.T) {
	svc := newService(&clock{t: epoch}, time.Hour)

	tok, err := svc.Issue("a@x.com")
	require.NoError(t, err)
	raw := tok.AccessToken

	for i := range len(raw) {
		b := []byte(raw)
		if b[i] == 'A' {
			b[i] = 'B'
		} else {
			b[i] = 'A'
		}

		_, err := svc.Validate(string(b))
		if !errors.Is(err, domain.ErrTokenInvalid) {
			t.Fatalf("tampered byte %d (%q -> %q) accepted", i, raw[i], b[i])
		}
	}
}

func TestValidate_WrongKeyRejected(t *testing.T) {
	c := &clock{t: epoch}
	other := auth.NewTokenService([]byte("another-secret-that-is-32-chars-long"), time.Hour, auth.WithClock(c.now))

	tok, err := other.Issue("a@x.com")
	require.NoError(t, err)

	_, err = newService(c, time.Hour).Validate(tok.AccessToken)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestValidate_MalformedRejected(t *testing.T) {
	svc := newService(&clock{t: epoch}, time.Hour)

	for _, raw := range []string{"", "not.a.jwt", "clearly-not-a-jwt", "a.b"} {
		_, err := svc.Validate(raw)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid, "input %q", raw)
	}
}

func TestValidate_MissingSubjectRejected(t *testing.T) {
	tok := signClaims(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": epoch.Unix(),
		"exp": epoch.Add(time.Hour).Unix(),
	})

	_, err := newService(&clock{t: epoch}, time.Hour).Validate(tok)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestValidate_MissingExpiryRejected(t *testing.T) {
	tok := signClaims(t, jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "a@x.com",
		"iat": epoch.Unix(),
	})

	_, err := newService(&clock{t: epoch}, time.Hour).Validate(tok)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestValidate_OtherAlgorithmRejected(t *testing.T) {
	tok := signClaims(t, jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "a@x.com",
		"iat": epoch.Unix(),
		"exp": epoch.Add(time.Hour).Unix(),
	})

	_, err := newService(&clock{t: epoch}, time.Hour).Validate(tok)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func signClaims(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testKey))
	require.NoError(t, err)
	return s
}
