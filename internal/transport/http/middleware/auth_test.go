package middleware_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ErlanBelekov/resume-api/internal/domain"
	"github.com/ErlanBelekov/resume-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthenticator struct {
	authenticate func(ctx context.Context, header string) (*domain.User, error)
}

func (f *fakeAuthenticator) Authenticate(ctx context.Context, header string) (*domain.User, error) {
	return f.authenticate(ctx, header)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newEngine protects GET /protected with Auth; the handler echoes the
// current user's id.
func newEngine(a *fakeAuthenticator) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(a, testLogger()), func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.String(http.StatusInternalServerError, "no user")
			return
		}
		c.String(http.StatusOK, "%d", user.ID)
	})
	return r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_NoToken_Returns401WithChallenge(t *testing.T) {
	a := &fakeAuthenticator{
		authenticate: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrAuthRequired
		},
	}

	w := do(newEngine(a), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want Bearer", got)
	}
}

func TestAuth_RejectedToken_Returns401(t *testing.T) {
	a := &fakeAuthenticator{
		authenticate: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, domain.ErrTokenInvalid)
		},
	}

	w := do(newEngine(a), "Bearer not.a.jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want Bearer", got)
	}
}

func TestAuth_InternalError_Returns500(t *testing.T) {
	a := &fakeAuthenticator{
		authenticate: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, errors.New("db down")
		},
	}

	w := do(newEngine(a), "Bearer x")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestAuth_ValidToken_PassesHeaderAndSetsUser(t *testing.T) {
	var gotHeader string
	a := &fakeAuthenticator{
		authenticate: func(_ context.Context, header string) (*domain.User, error) {
			gotHeader = header
			return &domain.User{ID: 7, Email: "a@x.com"}, nil
		},
	}

	w := do(newEngine(a), "Bearer good")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != "7" {
		t.Errorf("body = %q, want 7", w.Body.String())
	}
	if gotHeader != "Bearer good" {
		t.Errorf("authenticator got %q, want the raw header", gotHeader)
	}
}

func TestCurrentUser_WithoutAuth(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := middleware.CurrentUser(c); ok {
		t.Error("CurrentUser reported a user on an unauthenticated context")
	}
}
