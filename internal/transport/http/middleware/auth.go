package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/resume-api/internal/domain"
	ctxlog "github.com/ErlanBelekov/resume-api/internal/log"
	"github.com/gin-gonic/gin"
)

const (
	currentUserKey = "currentUser"

	errAuthRequired = "Not authenticated"
	errUnauthorized = "Could not validate credentials"
	errInternal     = "Internal server error"
)

// authenticator is the subset of AuthUsecase the guard needs.
type authenticator interface {
	Authenticate(ctx context.Context, header string) (*domain.User, error)
}

// Auth resolves the bearer token in the Authorization header to a user and
// stores it for CurrentUser. Every failure is a 401 with a WWW-Authenticate
// challenge; the cause is logged, not returned.
func Auth(auth authenticator, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "auth_middleware")

	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user, err := auth.Authenticate(ctx, c.GetHeader("Authorization"))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrAuthRequired):
				unauthorized(c, errAuthRequired)
			case errors.Is(err, domain.ErrUnauthorized):
				logger.DebugContext(ctx, "bearer token rejected", "error", err)
				unauthorized(c, errUnauthorized)
			default:
				logger.ErrorContext(ctx, "authenticate", "error", err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternal})
			}
			return
		}

		c.Set(currentUserKey, user)
		c.Request = c.Request.WithContext(ctxlog.WithUserID(ctx, user.ID))
		c.Next()
	}
}

// CurrentUser returns the user set by Auth. ok is false on routes that are
// not behind Auth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

func unauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}
