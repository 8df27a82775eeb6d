package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/resume-api/internal/domain"
	"github.com/ErlanBelekov/resume-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/resume-api/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*domain.User, error)
}

type RouterOptions struct {
	AllowedOrigins []string
	HSTS           bool
	// ExperimentalImprove mounts GET /resume/:id/improve.
	ExperimentalImprove bool
}

func NewRouter(logger *slog.Logger, opts RouterOptions, auth Authenticator, authHandler *handler.AuthHandler, resumeHandler *handler.ResumeHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(opts.HSTS))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	// Request headers and bodies stay out of the access log: they carry
	// bearer tokens and passwords.
	r.Use(sloggin.NewWithConfig(logger, sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
	}))
	r.Use(middleware.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Hello World"})
	})

	// Public auth routes
	users := r.Group("/api/user")
	users.POST("/registration", authHandler.Register)
	users.POST("/login", authHandler.Login)

	// Protected resume routes
	resumes := r.Group("/resume", middleware.Auth(auth, logger))
	resumes.GET("", resumeHandler.List)
	resumes.POST("", resumeHandler.Create)
	resumes.GET("/:id", resumeHandler.Get)
	resumes.PUT("/:id", resumeHandler.Update)
	resumes.DELETE("/:id", resumeHandler.Delete)
	if opts.ExperimentalImprove {
		resumes.GET("/:id/improve", resumeHandler.Improve)
	}

	return r
}
