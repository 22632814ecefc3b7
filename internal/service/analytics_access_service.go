package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/metrics"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
	"github.com/bishtdisha/helpdesk-sub000/internal/repository"
)

// AnalyticsAccessService is the analytics guard. View scope is exactly the
// permission table scope; export is a separate capability an organization
// viewer might still lack.
type AnalyticsAccessService struct {
	engine *access.Engine
	users  repository.UserStore
}

// NewAnalyticsAccessService creates the analytics guard.
func NewAnalyticsAccessService(engine *access.Engine, users repository.UserStore) *AnalyticsAccessService {
	return &AnalyticsAccessService{engine: engine, users: users}
}

// AuthorizeView checks viewing analytics scoped to teamID. An empty teamID
// requests organization-wide analytics, which only organization-scoped
// viewers may see.
func (s *AnalyticsAccessService) AuthorizeView(ctx context.Context, userID, teamID string) error {
	user, err := s.user(ctx, userID)
	if err != nil {
		return err
	}
	subject := access.AnalyticsSubject{Team: teamID}
	allowed := s.engine.CanPerform(user, access.ResourceAnalytics, access.ActionView, subject)
	metrics.RecordDecision(string(access.ResourceAnalytics), allowed)
	if allowed {
		return nil
	}
	if teamID != "" && access.Lookup(user.Role, access.ResourceAnalytics, access.ActionView).Scope == access.ScopeTeam {
		return access.ErrTeamAccessDenied(access.ResourceAnalytics, access.ActionView, teamID)
	}
	return access.ErrInsufficientPermissions(access.ResourceAnalytics, access.ActionView, teamID)
}

// AuthorizeExport checks exporting analytics. It requires both view access
// to the requested scope and the export capability.
func (s *AnalyticsAccessService) AuthorizeExport(ctx context.Context, userID, teamID string) error {
	if err := s.AuthorizeView(ctx, userID, teamID); err != nil {
		return err
	}
	user, err := s.user(ctx, userID)
	if err != nil {
		return err
	}
	if !access.Lookup(user.Role, access.ResourceAnalytics, access.ActionView).Export {
		metrics.RecordDecision(string(access.ResourceAnalytics), false)
		return &access.Error{
			Code:               access.CodeInsufficientPermissions,
			StatusCode:         http.StatusForbidden,
			Reason:             "your role cannot export analytics",
			RequiredPermission: "analytics:export",
		}
	}
	return nil
}

// AuthorizeCompare checks access to cross-team comparative analysis, which
// is organization-only.
func (s *AnalyticsAccessService) AuthorizeCompare(ctx context.Context, userID string) error {
	user, err := s.user(ctx, userID)
	if err != nil {
		return err
	}
	allowed := s.engine.CanPerform(user, access.ResourceAnalytics, access.ActionCompare, access.AnalyticsSubject{})
	metrics.RecordDecision(string(access.ResourceAnalytics), allowed)
	if !allowed {
		return access.ErrInsufficientPermissions(access.ResourceAnalytics, access.ActionCompare, "")
	}
	return nil
}

// ViewFilter returns the team filter for analytics aggregation queries.
func (s *AnalyticsAccessService) ViewFilter(ctx context.Context, userID string) (access.Filter, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return access.DenyAll{}, err
	}
	return s.engine.BuildListFilter(user, access.ResourceAnalytics, access.ActionView), nil
}

func (s *AnalyticsAccessService) user(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, access.ErrUnauthenticated("missing user identity")
	}
	user, err := s.users.GetSnapshot(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, access.ErrUnauthenticated("unknown user")
		}
		return nil, fmt.Errorf("failed to load user snapshot: %w", err)
	}
	return user, nil
}
