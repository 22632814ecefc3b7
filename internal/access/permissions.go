// Package access implements the role-based access decision core: the static
// role-permission table, the team scope resolver, and the decision engine
// that guards and services consult before touching a resource.
package access

import "github.com/bishtdisha/helpdesk-sub000/internal/models"

// ResourceType identifies the kind of resource a permission applies to.
type ResourceType string

const (
	ResourceTicket    ResourceType = "tickets"
	ResourceKnowledge ResourceType = "knowledge"
	ResourceAnalytics ResourceType = "analytics"
	ResourceFollower  ResourceType = "followers"
	ResourceUser      ResourceType = "users"
	ResourceTeam      ResourceType = "teams"
)

// Action identifies an operation on a resource.
type Action string

const (
	ActionCreate  Action = "create"
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionAssign  Action = "assign"
	ActionClose   Action = "close"
	ActionComment Action = "comment"
	ActionAttach  Action = "attach"
	ActionPublish Action = "publish"
	ActionView    Action = "view"
	ActionCompare Action = "compare"
	ActionAdd     Action = "add"
	ActionRemove  Action = "remove"
	ActionManage  Action = "manage"
)

// Scope is the breadth of a permission grant.
type Scope string

const (
	// ScopeDenied withholds the action entirely.
	ScopeDenied Scope = "denied"
	// ScopeOwn limits the action to resources the user owns or participates in.
	ScopeOwn Scope = "own"
	// ScopeTeam limits the action to resources tied to a standing team.
	ScopeTeam Scope = "team"
	// ScopeOrganization grants the action unconditionally.
	ScopeOrganization Scope = "organization"
)

// PermissionEntry is one cell of the role-permission table. Export is an
// extra capability flag used by analytics view entries: a role may view
// within its scope yet still lack export.
type PermissionEntry struct {
	Scope  Scope
	Export bool
}

// ResourceActions enumerates every action defined per resource type. Tests
// walk this to prove the table is total.
var ResourceActions = map[ResourceType][]Action{
	ResourceTicket:    {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionAssign, ActionClose, ActionComment, ActionAttach},
	ResourceKnowledge: {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionPublish},
	ResourceAnalytics: {ActionView, ActionCompare},
	ResourceFollower:  {ActionAdd, ActionRemove},
	ResourceUser:      {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
	ResourceTeam:      {ActionManage},
}

// rolePermissions is the static capability matrix. It is configuration, not
// state: initialized once, read-only, and defined as pure data so the whole
// policy can be audited in one place. Combinations not listed here resolve
// to ScopeDenied.
var rolePermissions = map[models.Role]map[ResourceType]map[Action]PermissionEntry{
	models.RoleAdminManager: {
		ResourceTicket: {
			ActionCreate:  {Scope: ScopeOrganization},
			ActionRead:    {Scope: ScopeOrganization},
			ActionUpdate:  {Scope: ScopeOrganization},
			ActionDelete:  {Scope: ScopeOrganization},
			ActionAssign:  {Scope: ScopeOrganization},
			ActionClose:   {Scope: ScopeOrganization},
			ActionComment: {Scope: ScopeOrganization},
			ActionAttach:  {Scope: ScopeOrganization},
		},
		ResourceKnowledge: {
			ActionCreate:  {Scope: ScopeOrganization},
			ActionRead:    {Scope: ScopeOrganization},
			ActionUpdate:  {Scope: ScopeOrganization},
			ActionDelete:  {Scope: ScopeOrganization},
			ActionPublish: {Scope: ScopeOrganization},
		},
		ResourceAnalytics: {
			ActionView:    {Scope: ScopeOrganization, Export: true},
			ActionCompare: {Scope: ScopeOrganization},
		},
		ResourceFollower: {
			ActionAdd:    {Scope: ScopeOrganization},
			ActionRemove: {Scope: ScopeOrganization},
		},
		ResourceUser: {
			ActionCreate: {Scope: ScopeOrganization},
			ActionRead:   {Scope: ScopeOrganization},
			ActionUpdate: {Scope: ScopeOrganization},
			ActionDelete: {Scope: ScopeOrganization},
		},
		ResourceTeam: {
			ActionManage: {Scope: ScopeOrganization},
		},
	},
	models.RoleTeamLeader: {
		ResourceTicket: {
			ActionCreate:  {Scope: ScopeTeam},
			ActionRead:    {Scope: ScopeTeam},
			ActionUpdate:  {Scope: ScopeTeam},
			ActionAssign:  {Scope: ScopeTeam},
			ActionClose:   {Scope: ScopeTeam},
			ActionComment: {Scope: ScopeTeam},
			ActionAttach:  {Scope: ScopeTeam},
		},
		ResourceKnowledge: {
			// Creation of restricted articles additionally requires leading
			// the target team; the knowledge guard enforces that rule.
			ActionCreate: {Scope: ScopeTeam},
			ActionRead:   {Scope: ScopeOrganization},
			ActionUpdate: {Scope: ScopeTeam},
		},
		ResourceAnalytics: {
			ActionView: {Scope: ScopeTeam},
		},
		ResourceFollower: {
			ActionAdd:    {Scope: ScopeTeam},
			ActionRemove: {Scope: ScopeTeam},
		},
		ResourceUser: {
			ActionRead: {Scope: ScopeTeam},
		},
	},
	models.RoleUserEmployee: {
		ResourceTicket: {
			ActionCreate:  {Scope: ScopeOwn},
			ActionRead:    {Scope: ScopeOwn},
			ActionComment: {Scope: ScopeOwn},
			ActionAttach:  {Scope: ScopeOwn},
		},
		ResourceKnowledge: {
			// The article visibility rules (published flag, access level)
			// narrow this further inside the engine.
			ActionRead: {Scope: ScopeOrganization},
		},
		ResourceFollower: {
			ActionAdd:    {Scope: ScopeOwn},
			ActionRemove: {Scope: ScopeOwn},
		},
		ResourceUser: {
			ActionRead: {Scope: ScopeOwn},
		},
	},
}

// Lookup returns the permission entry for a (role, resource, action) triple.
// It is total: any combination not present in the table, including unknown
// roles, resolves to a denied entry. It never returns an undefined result.
func Lookup(role models.Role, resource ResourceType, action Action) PermissionEntry {
	byResource, ok := rolePermissions[role]
	if !ok {
		return PermissionEntry{Scope: ScopeDenied}
	}
	byAction, ok := byResource[resource]
	if !ok {
		return PermissionEntry{Scope: ScopeDenied}
	}
	entry, ok := byAction[action]
	if !ok {
		return PermissionEntry{Scope: ScopeDenied}
	}
	return entry
}
