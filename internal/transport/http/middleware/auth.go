package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"todo-backend/internal/auth"
	"todo-backend/internal/domain"
	"todo-backend/internal/repository"

	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// Keys under which the resolved identity is stored in the gin context.
const (
	UserIDKey = "userID"
	UserKey   = "user"
)

// Auth is the identity resolver for protected routes. It extracts the
// Bearer token, verifies it, and loads the subject user. Every failure
// mode — missing header, bad signature, expired token, unknown or
// deactivated user — aborts with the same 401 body, so callers cannot
// tell them apart.
func Auth(tokens *auth.TokenService, users repository.UserRepository, logger *slog.Logger) gin.HandlerFunc {
	log := logger.With("component", "auth_middleware")

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, domain.ErrUserNotFound) {
				log.ErrorContext(c.Request.Context(), "resolve user", "error", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}
		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(UserKey, user)
		c.Next()
	}
}
