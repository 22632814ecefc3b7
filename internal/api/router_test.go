package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/auth"
	"github.com/bishtdisha/helpdesk-sub000/internal/middleware"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
	"github.com/bishtdisha/helpdesk-sub000/internal/repository"
	"github.com/bishtdisha/helpdesk-sub000/internal/service"
)

type fakeUsers map[string]*models.User

func (s fakeUsers) GetSnapshot(_ context.Context, id string) (*models.User, error) {
	user, ok := s[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

type fakeTickets struct {
	repository.TicketStore
	tickets map[string]*models.Ticket
}

func (s fakeTickets) GetByID(_ context.Context, id string) (*models.Ticket, error) {
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return ticket, nil
}

func (s fakeTickets) GetSubject(_ context.Context, id string) (*access.TicketSubject, error) {
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	subject := access.TicketSubjectOf(ticket)
	return &subject, nil
}

func (s fakeTickets) List(_ context.Context, filter access.Filter, req *models.TicketListRequest) (*models.TicketListResponse, error) {
	resp := &models.TicketListResponse{Tickets: []models.Ticket{}, Page: 1, PerPage: 25}
	for _, ticket := range s.tickets {
		subject := access.TicketSubjectOf(ticket)
		if filter.Matches(subject) {
			resp.Tickets = append(resp.Tickets, *ticket)
		}
	}
	resp.Total = len(resp.Tickets)
	return resp, nil
}

func newTestServer(t *testing.T) (*gin.Engine, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := fakeUsers{
		"emp-1": {ID: "emp-1", Login: "emp", Role: models.RoleUserEmployee, TeamID: "team-1", IsActive: true},
		"adm-1": {ID: "adm-1", Login: "adm", Role: models.RoleAdminManager, IsActive: true},
	}
	tickets := fakeTickets{tickets: map[string]*models.Ticket{
		"t-mine":  {ID: "t-mine", CreatorID: "emp-1", TeamID: "team-1", Status: models.StatusOpen},
		"t-other": {ID: "t-other", CreatorID: "someone", TeamID: "team-2", Status: models.StatusOpen},
	}}

	engine := access.NewEngine()
	jwtManager := auth.NewJWTManager("router-test-secret", time.Hour)
	ticketGuard := service.NewTicketAccessService(engine, tickets, users)
	knowledgeGuard := service.NewKnowledgeAccessService(engine, stubArticleStore{}, users)
	analyticsGuard := service.NewAnalyticsAccessService(engine, users)

	router := NewRouter(Handlers{
		Auth:      middleware.NewAuthMiddleware(jwtManager, users),
		Tickets:   NewTicketHandler(ticketGuard, tickets),
		Knowledge: NewKnowledgeHandler(knowledgeGuard, stubArticleStore{}),
		Analytics: NewAnalyticsHandler(analyticsGuard, nil),
	})
	return router, jwtManager
}

type stubArticleStore struct {
	repository.ArticleStore
}

func (stubArticleStore) GetSubject(_ context.Context, _ string) (*access.ArticleSubject, error) {
	return nil, repository.ErrNotFound
}

func get(t *testing.T, router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRouter(t *testing.T) {
	router, jwtManager := newTestServer(t)

	empToken, err := jwtManager.GenerateToken("emp-1", "emp")
	require.NoError(t, err)
	admToken, err := jwtManager.GenerateToken("adm-1", "adm")
	require.NoError(t, err)

	t.Run("healthz is open", func(t *testing.T) {
		w := get(t, router, "/healthz", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("metrics is open", func(t *testing.T) {
		w := get(t, router, "/metrics", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("api requires a token", func(t *testing.T) {
		w := get(t, router, "/api/v1/tickets", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("employee sees only their tickets in listings", func(t *testing.T) {
		w := get(t, router, "/api/v1/tickets", empToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "t-mine")
		assert.NotContains(t, w.Body.String(), "t-other")
	})

	t.Run("admin sees everything in listings", func(t *testing.T) {
		w := get(t, router, "/api/v1/tickets", admToken)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "t-mine")
		assert.Contains(t, w.Body.String(), "t-other")
	})

	t.Run("employee reads their own ticket", func(t *testing.T) {
		w := get(t, router, "/api/v1/tickets/t-mine", empToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("foreign ticket reads as not found", func(t *testing.T) {
		w := get(t, router, "/api/v1/tickets/t-other", empToken)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	})

	t.Run("status change denial carries the permission key", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/v1/tickets/t-mine/status",
			strings.NewReader(`{"status":"closed"}`))
		req.Header.Set("Authorization", "Bearer "+empToken)
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "tickets:close")
	})

	t.Run("analytics is closed to employees", func(t *testing.T) {
		w := get(t, router, "/api/v1/analytics/compare", empToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
