package httptransport_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/ErlanBelekov/resume-api/internal/domain"
	httptransport "github.com/ErlanBelekov/resume-api/internal/transport/http"
	"github.com/ErlanBelekov/resume-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/resume-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type denyAll struct{}

func (denyAll) Authenticate(_ context.Context, _ string) (*domain.User, error) {
	return nil, domain.ErrAuthRequired
}

func newRouter(improve bool) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	authH := handler.NewAuthHandler(&usecase.AuthUsecase{}, logger)
	resumeH := handler.NewResumeHandler(&usecase.ResumeUsecase{}, logger)
	return httptransport.NewRouter(logger, httptransport.RouterOptions{ExperimentalImprove: improve}, denyAll{}, authH, resumeH)
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_Root(t *testing.T) {
	w := get(newRouter(false), "/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if w.Body.String() != `{"message":"Hello World"}` {
		t.Errorf("body = %s", w.Body)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID")
	}
}

func TestRouter_ResumeRoutesRequireAuth(t *testing.T) {
	r := newRouter(false)
	for _, path := range []string{"/resume", "/resume/1"} {
		w := get(r, path)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s: status = %d, want 401", path, w.Code)
		}
	}
}

func TestRouter_ImproveBehindFlag(t *testing.T) {
	if w := get(newRouter(false), "/resume/1/improve"); w.Code != http.StatusNotFound {
		t.Errorf("flag off: status = %d, want 404", w.Code)
	}
	if w := get(newRouter(true), "/resume/1/improve"); w.Code != http.StatusUnauthorized {
		t.Errorf("flag on: status = %d, want 401", w.Code)
	}
}
