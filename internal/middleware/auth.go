package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/auth"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
	"github.com/bishtdisha/helpdesk-sub000/internal/repository"
)

// Context keys set by RequireAuth.
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "user"
)

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
	users      repository.UserStore
}

func NewAuthMiddleware(jwtManager *auth.JWTManager, users repository.UserStore) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager, users: users}
}

// RequireAuth validates the bearer token, loads the caller's access
// snapshot, and stores both on the request context. Deactivated users are
// rejected here so no handler ever sees one.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			m.unauthorized(c, "missing authorization token")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.unauthorized(c, "invalid or expired token")
			return
		}

		user, err := m.users.GetSnapshot(c.Request.Context(), claims.UserID)
		if err != nil {
			m.unauthorized(c, "unknown user")
			return
		}
		if !user.IsActive {
			m.unauthorized(c, "account is deactivated")
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("auth_token"); err == nil {
		return cookie
	}
	return ""
}

func (m *AuthMiddleware) unauthorized(c *gin.Context, reason string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": access.ErrUnauthenticated(reason),
	})
}

// CurrentUserID returns the authenticated user's id from the request
// context, empty if RequireAuth did not run.
func CurrentUserID(c *gin.Context) string {
	return c.GetString(ContextUserIDKey)
}

// CurrentUser returns the authenticated user's snapshot from the request
// context, nil if RequireAuth did not run.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}
