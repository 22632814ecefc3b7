package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bishtdisha/helpdesk-sub000/internal/auth"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
	"github.com/bishtdisha/helpdesk-sub000/internal/repository"
)

type snapshotMap map[string]*models.User

func (s snapshotMap) GetSnapshot(_ context.Context, id string) (*models.User, error) {
	user, ok := s[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	manager := auth.NewJWTManager("test-secret", time.Hour)
	users := snapshotMap{
		"user-1":   {ID: "user-1", Login: "jdoe", Role: models.RoleUserEmployee, IsActive: true},
		"inactive": {ID: "inactive", Login: "gone", Role: models.RoleUserEmployee, IsActive: false},
	}

	router := gin.New()
	router.Use(RequestID())
	router.Use(NewAuthMiddleware(manager, users).RequireAuth())
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUserID(c)})
	})
	return router, manager
}

func TestRequireAuth(t *testing.T) {
	router, manager := newTestRouter(t)

	t.Run("valid token passes and sets identity", func(t *testing.T) {
		token, err := manager.GenerateToken("user-1", "jdoe")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("missing token is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user is rejected", func(t *testing.T) {
		token, err := manager.GenerateToken("ghost", "ghost")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deactivated user is rejected", func(t *testing.T) {
		token, err := manager.GenerateToken("inactive", "gone")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
