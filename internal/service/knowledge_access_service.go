package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/metrics"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
	"github.com/bishtdisha/helpdesk-sub000/internal/repository"
)

// KnowledgeAccessService is the knowledge base guard: article visibility,
// creation-time access level validation, and list filtering.
type KnowledgeAccessService struct {
	engine   *access.Engine
	articles repository.ArticleStore
	users    repository.UserStore
}

// NewKnowledgeAccessService creates the knowledge base guard.
func NewKnowledgeAccessService(engine *access.Engine, articles repository.ArticleStore, users repository.UserStore) *KnowledgeAccessService {
	return &KnowledgeAccessService{engine: engine, articles: articles, users: users}
}

// CanReadArticle reports whether the user may read the article.
func (s *KnowledgeAccessService) CanReadArticle(ctx context.Context, userID, articleID string) (bool, error) {
	user, subject, err := s.load(ctx, userID, articleID)
	if err != nil {
		if _, ok := access.AsError(err); ok {
			return false, nil
		}
		return false, err
	}
	allowed := s.engine.CanPerform(user, access.ResourceKnowledge, access.ActionRead, *subject)
	metrics.RecordDecision(string(access.ResourceKnowledge), allowed)
	return allowed, nil
}

// Authorize checks one article action. An article the user cannot read at
// all surfaces as not-found: invisible articles do not disclose their
// existence.
func (s *KnowledgeAccessService) Authorize(ctx context.Context, userID, articleID string, action access.Action) error {
	user, subject, err := s.load(ctx, userID, articleID)
	if err != nil {
		return err
	}

	allowed := s.engine.CanPerform(user, access.ResourceKnowledge, action, *subject)
	metrics.RecordDecision(string(access.ResourceKnowledge), allowed)
	if allowed {
		return nil
	}

	if !s.engine.CanPerform(user, access.ResourceKnowledge, access.ActionRead, *subject) {
		return access.ErrNotFound(access.ResourceKnowledge, articleID)
	}
	entry := access.Lookup(user.Role, access.ResourceKnowledge, action)
	if entry.Scope == access.ScopeTeam && !access.HasStanding(user, subject.Team) {
		return access.ErrTeamAccessDenied(access.ResourceKnowledge, action, articleID)
	}
	return access.ErrInsufficientPermissions(access.ResourceKnowledge, action, articleID)
}

// ValidateAccessLevelAssignment validates that the user may create an
// article with the given access level in the given team. The reason string
// is caller-visible and propagates into the denial error.
func (s *KnowledgeAccessService) ValidateAccessLevelAssignment(user *models.User, level models.AccessLevel, teamID string) (bool, string) {
	if !level.Valid() {
		return false, fmt.Sprintf("unknown access level %q", level)
	}
	if user == nil || !user.IsActive {
		return false, "inactive or unknown user"
	}

	switch user.Role {
	case models.RoleAdminManager:
		return true, ""
	case models.RoleTeamLeader:
		if teamID == "" {
			return false, "articles created by team leaders must be assigned to a team"
		}
		if level == models.AccessRestricted {
			if !user.LeadsTeam(teamID) {
				return false, fmt.Sprintf("you do not lead team %s and cannot create restricted articles for it", teamID)
			}
			return true, ""
		}
		if !access.HasStanding(user, teamID) {
			return false, fmt.Sprintf("team %s is not one of your standing teams", teamID)
		}
		return true, ""
	}
	return false, "your role cannot create knowledge articles"
}

// AuthorizeCreate checks article creation, combining the permission table
// with the access level assignment rules.
func (s *KnowledgeAccessService) AuthorizeCreate(ctx context.Context, userID string, level models.AccessLevel, teamID string) error {
	user, err := s.user(ctx, userID)
	if err != nil {
		return err
	}
	if !s.engine.CanCreate(user, access.ResourceKnowledge, teamID) {
		metrics.RecordDecision(string(access.ResourceKnowledge), false)
		return access.ErrInsufficientPermissions(access.ResourceKnowledge, access.ActionCreate, "")
	}
	if ok, reason := s.ValidateAccessLevelAssignment(user, level, teamID); !ok {
		metrics.RecordDecision(string(access.ResourceKnowledge), false)
		return access.ErrRoleAssignmentDenied(reason)
	}
	metrics.RecordDecision(string(access.ResourceKnowledge), true)
	return nil
}

// ListFilter returns the authorization predicate for article listings.
func (s *KnowledgeAccessService) ListFilter(ctx context.Context, userID string) (access.Filter, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return access.DenyAll{}, err
	}
	return s.engine.BuildListFilter(user, access.ResourceKnowledge, access.ActionRead), nil
}

func (s *KnowledgeAccessService) user(ctx context.Context, userID string) (*models.User, error) {
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

func (s *KnowledgeAccessService) load(ctx context.Context, userID, articleID string) (*models.User, *access.ArticleSubject, error) {
	if articleID == "" {
		return nil, nil, access.ErrInvalidInput("article id must not be empty")
	}
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	subject, err := s.articles.GetSubject(ctx, articleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, access.ErrNotFound(access.ResourceKnowledge, articleID)
		}
		return nil, nil, fmt.Errorf("failed to load article subject: %w", err)
	}
	return user, subject, nil
}
