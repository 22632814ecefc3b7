package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bishtdisha/helpdesk-sub000/internal/models"
)

func TestLookupIsTotal(t *testing.T) {
	roles := append([]models.Role{}, models.KnownRoles...)
	roles = append(roles, models.Role("customer"), models.Role(""))

	for _, role := range roles {
		for resource, actions := range ResourceActions {
			for _, action := range actions {
				entry := Lookup(role, resource, action)
				assert.NotEmpty(t, entry.Scope,
					"lookup(%s, %s, %s) must be defined", role, resource, action)
			}
		}
	}

	t.Run("unlisted combinations deny", func(t *testing.T) {
		assert.Equal(t, ScopeDenied, Lookup(models.RoleUserEmployee, ResourceTicket, ActionDelete).Scope)
		assert.Equal(t, ScopeDenied, Lookup(models.Role("no-such-role"), ResourceTicket, ActionRead).Scope)
		assert.Equal(t, ScopeDenied, Lookup(models.RoleAdminManager, ResourceType("widgets"), ActionRead).Scope)
		assert.Equal(t, ScopeDenied, Lookup(models.RoleAdminManager, ResourceTicket, Action("frobnicate")).Scope)
	})
}

func TestAdminManagerPolicy(t *testing.T) {
	role := models.RoleAdminManager

	t.Run("organization scope on tickets", func(t *testing.T) {
		for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete, ActionAssign} {
			assert.Equal(t, ScopeOrganization, Lookup(role, ResourceTicket, action).Scope, "tickets:%s", action)
		}
	})

	t.Run("organization scope on knowledge management", func(t *testing.T) {
		for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete, ActionPublish} {
			assert.Equal(t, ScopeOrganization, Lookup(role, ResourceKnowledge, action).Scope, "knowledge:%s", action)
		}
	})

	t.Run("organization analytics with export", func(t *testing.T) {
		entry := Lookup(role, ResourceAnalytics, ActionView)
		assert.Equal(t, ScopeOrganization, entry.Scope)
		assert.True(t, entry.Export)
	})
}

func TestTeamLeaderPolicy(t *testing.T) {
	role := models.RoleTeamLeader

	t.Run("team scope on tickets", func(t *testing.T) {
		for _, action := range []Action{ActionRead, ActionUpdate, ActionAssign} {
			assert.Equal(t, ScopeTeam, Lookup(role, ResourceTicket, action).Scope, "tickets:%s", action)
		}
	})

	t.Run("cannot delete tickets or users", func(t *testing.T) {
		assert.Equal(t, ScopeDenied, Lookup(role, ResourceTicket, ActionDelete).Scope)
		assert.Equal(t, ScopeDenied, Lookup(role, ResourceUser, ActionDelete).Scope)
		assert.Equal(t, ScopeDenied, Lookup(role, ResourceUser, ActionCreate).Scope)
	})

	t.Run("team analytics without export or comparison", func(t *testing.T) {
		entry := Lookup(role, ResourceAnalytics, ActionView)
		assert.Equal(t, ScopeTeam, entry.Scope)
		assert.False(t, entry.Export)
		assert.Equal(t, ScopeDenied, Lookup(role, ResourceAnalytics, ActionCompare).Scope)
	})

	t.Run("team scope for article creation", func(t *testing.T) {
		assert.Equal(t, ScopeTeam, Lookup(role, ResourceKnowledge, ActionCreate).Scope)
		assert.Equal(t, ScopeDenied, Lookup(role, ResourceKnowledge, ActionPublish).Scope)
	})
}

func TestUserEmployeePolicy(t *testing.T) {
	role := models.RoleUserEmployee

	t.Run("own scope on ticket participation", func(t *testing.T) {
		for _, action := range []Action{ActionRead, ActionComment, ActionAttach} {
			assert.Equal(t, ScopeOwn, Lookup(role, ResourceTicket, action).Scope, "tickets:%s", action)
		}
	})

	t.Run("no assignment deletion or article authoring", func(t *testing.T) {
		assert.Equal(t, ScopeDenied, Lookup(role, ResourceTicket, ActionAssign).Scope)
		assert.Equal(t, ScopeDenied, Lookup(role, ResourceTicket, ActionDelete).Scope)
		assert.Equal(t, ScopeDenied, Lookup(role, ResourceKnowledge, ActionCreate).Scope)
	})

	t.Run("no analytics access", func(t *testing.T) {
		assert.Equal(t, ScopeDenied, Lookup(role, ResourceAnalytics, ActionView).Scope)
		assert.Equal(t, ScopeDenied, Lookup(role, ResourceAnalytics, ActionCompare).Scope)
	})
}
