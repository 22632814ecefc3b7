package access

import "github.com/bishtdisha/helpdesk-sub000/internal/models"

// Engine is the access decision engine. It is stateless and side-effect-free
// per call: every decision is a pure function of the static permission table
// and the caller-supplied user and subject snapshots, so it needs no
// synchronization. Construct it once at startup and pass it to every guard;
// there is no package-level instance.
type Engine struct{}

// NewEngine returns a decision engine backed by the static permission table.
func NewEngine() *Engine {
	return &Engine{}
}

// CanPerform decides whether the user may perform action on the resource
// described by subject. It never panics on missing or malformed input; any
// such input resolves to the most restrictive answer, deny.
//
// A subject with no team under a team-scoped grant is always denied: a
// team grant is never implicitly organization-wide. Likewise a subject with
// no owner under an own-scoped grant is always denied.
func (e *Engine) CanPerform(user *models.User, resource ResourceType, action Action, subject Subject) bool {
	if !usable(user) {
		return false
	}

	entry := Lookup(user.Role, resource, action)

	var allowed bool
	switch entry.Scope {
	case ScopeOrganization:
		allowed = true
	case ScopeOwn:
		allowed = subject != nil && (ParticipantIs{UserID: user.ID}).Matches(subject)
	case ScopeTeam:
		allowed = subject != nil && HasStanding(user, subject.TeamID())
	default:
		return false
	}
	if !allowed {
		return false
	}

	// Article visibility narrows every grant on an existing article: an
	// unpublished or restricted article a user cannot see cannot be acted
	// on either, whatever the table says. Admins bypass visibility.
	if a, ok := articleOf(subject); ok {
		return e.articleVisible(user, a)
	}
	return true
}

// CanCreate decides whether the user may create a resource in the given
// team. Creation has no subject yet, so team scope is checked against the
// target team and own scope means creating something owned by oneself.
func (e *Engine) CanCreate(user *models.User, resource ResourceType, teamID string) bool {
	if !usable(user) {
		return false
	}
	switch Lookup(user.Role, resource, ActionCreate).Scope {
	case ScopeOrganization:
		return true
	case ScopeTeam:
		return HasStanding(user, teamID)
	case ScopeOwn:
		return true
	}
	return false
}

// BuildListFilter returns a predicate equivalent in selectivity to calling
// CanPerform on every row: for every subject s of the resource type,
// filter.Matches(s) == CanPerform(user, resource, action, s). Callers
// translate it to their storage query language instead of loading rows.
func (e *Engine) BuildListFilter(user *models.User, resource ResourceType, action Action) Filter {
	if !usable(user) {
		return DenyAll{}
	}

	var base Filter
	switch Lookup(user.Role, resource, action).Scope {
	case ScopeOrganization:
		base = AllowAll{}
	case ScopeOwn:
		base = ParticipantIs{UserID: user.ID}
	case ScopeTeam:
		base = TeamIn{TeamIDs: StandingTeams(user)}
	default:
		return DenyAll{}
	}

	if resource == ResourceKnowledge {
		return And{Filters: []Filter{base, e.visibilityFilter(user)}}
	}
	return base
}

// ValidateScopeAccess checks whether the user satisfies the given scope
// against an owner and team: own requires ownerID to be the user, team
// requires standing in teamID, organization always passes for a usable
// user. Unknown scope values fail closed.
func (e *Engine) ValidateScopeAccess(user *models.User, scope Scope, ownerID, teamID string) bool {
	if !usable(user) {
		return false
	}
	switch scope {
	case ScopeOrganization:
		return true
	case ScopeTeam:
		return HasStanding(user, teamID)
	case ScopeOwn:
		return ownerID != "" && ownerID == user.ID
	}
	return false
}

// AccessScope is a precomputed bundle of capability flags for one user,
// derived purely from the permission table and the scope resolver. It lets
// guards and the UI avoid repeated per-action lookups within a request. It
// is ephemeral and never persisted.
type AccessScope struct {
	OrganizationWide   bool     `json:"organization_wide"`
	TeamIDs            []string `json:"team_ids"`
	CanViewUsers       bool     `json:"can_view_users"`
	CanCreateUsers     bool     `json:"can_create_users"`
	CanDeleteUsers     bool     `json:"can_delete_users"`
	CanCreateTickets   bool     `json:"can_create_tickets"`
	CanDeleteTickets   bool     `json:"can_delete_tickets"`
	CanAssignTickets   bool     `json:"can_assign_tickets"`
	CanCreateArticles  bool     `json:"can_create_articles"`
	CanPublishArticles bool     `json:"can_publish_articles"`
	CanViewAnalytics   bool     `json:"can_view_analytics"`
	CanExportAnalytics bool     `json:"can_export_analytics"`
	CanManageTeams     bool     `json:"can_manage_teams"`
}

// GetAccessScope computes the capability bundle for a user. For a nil,
// deactivated, or malformed user it returns the all-false empty scope; it
// never panics.
func (e *Engine) GetAccessScope(user *models.User) AccessScope {
	scope := AccessScope{TeamIDs: []string{}}
	if !usable(user) {
		return scope
	}

	granted := func(resource ResourceType, action Action) bool {
		return Lookup(user.Role, resource, action).Scope != ScopeDenied
	}

	scope.OrganizationWide = Lookup(user.Role, ResourceTicket, ActionRead).Scope == ScopeOrganization
	scope.TeamIDs = StandingTeams(user)
	scope.CanViewUsers = granted(ResourceUser, ActionRead)
	scope.CanCreateUsers = granted(ResourceUser, ActionCreate)
	scope.CanDeleteUsers = granted(ResourceUser, ActionDelete)
	scope.CanCreateTickets = granted(ResourceTicket, ActionCreate)
	scope.CanDeleteTickets = granted(ResourceTicket, ActionDelete)
	scope.CanAssignTickets = granted(ResourceTicket, ActionAssign)
	scope.CanCreateArticles = granted(ResourceKnowledge, ActionCreate)
	scope.CanPublishArticles = granted(ResourceKnowledge, ActionPublish)
	scope.CanViewAnalytics = granted(ResourceAnalytics, ActionView)
	scope.CanExportAnalytics = Lookup(user.Role, ResourceAnalytics, ActionView).Export
	scope.CanManageTeams = granted(ResourceTeam, ActionManage)
	return scope
}

// articleVisible applies the knowledge base visibility rules: unpublished
// articles are admin-only; public articles are visible to all; internal
// articles to any authenticated active user; restricted articles to admins
// and users with standing in the article's team.
func (e *Engine) articleVisible(user *models.User, a ArticleSubject) bool {
	if user.Role == models.RoleAdminManager {
		return true
	}
	if !a.IsPublished {
		return false
	}
	switch a.AccessLevel {
	case models.AccessPublic, models.AccessInternal:
		return true
	case models.AccessRestricted:
		return a.Team != "" && HasStanding(user, a.Team)
	}
	return false
}

// visibilityFilter is the list-filter form of articleVisible.
func (e *Engine) visibilityFilter(user *models.User) Filter {
	if user.Role == models.RoleAdminManager {
		return AllowAll{}
	}
	return And{Filters: []Filter{
		PublishedOnly{},
		Or{Filters: []Filter{
			AccessLevelIn{Levels: []models.AccessLevel{models.AccessPublic, models.AccessInternal}},
			And{Filters: []Filter{
				AccessLevelIn{Levels: []models.AccessLevel{models.AccessRestricted}},
				TeamIn{TeamIDs: StandingTeams(user)},
			}},
		}},
	}}
}

// articleOf unwraps an article subject.
func articleOf(subject Subject) (ArticleSubject, bool) {
	a, ok := subject.(ArticleSubject)
	return a, ok
}

// usable reports whether the user snapshot can carry any permission at all.
// Deactivated users resolve to the empty permission scope regardless of
// role.
func usable(user *models.User) bool {
	return user != nil && user.ID != "" && user.IsActive && user.Role.Valid()
}
