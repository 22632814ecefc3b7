package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bishtdisha/helpdesk-sub000/internal/models"
)

func TestStandingTeams(t *testing.T) {
	t.Run("home team plus led teams deduplicated", func(t *testing.T) {
		user := &models.User{
			ID:         "user-1",
			Role:       models.RoleTeamLeader,
			TeamID:     "team-1",
			LedTeamIDs: []string{"team-1", "team-2", "team-2"},
			IsActive:   true,
		}
		assert.ElementsMatch(t, []string{"team-1", "team-2"}, StandingTeams(user))
	})

	t.Run("no home team", func(t *testing.T) {
		user := &models.User{ID: "user-1", Role: models.RoleTeamLeader, LedTeamIDs: []string{"team-3"}, IsActive: true}
		assert.Equal(t, []string{"team-3"}, StandingTeams(user))
	})

	t.Run("nil user has empty standing", func(t *testing.T) {
		assert.Empty(t, StandingTeams(nil))
	})

	t.Run("deactivated user has empty standing", func(t *testing.T) {
		user := &models.User{ID: "user-1", Role: models.RoleTeamLeader, TeamID: "team-1", IsActive: false}
		assert.Empty(t, StandingTeams(user))
	})

	t.Run("empty led team ids ignored", func(t *testing.T) {
		user := &models.User{ID: "user-1", Role: models.RoleUserEmployee, LedTeamIDs: []string{""}, IsActive: true}
		assert.Empty(t, StandingTeams(user))
	})
}

func TestHasStanding(t *testing.T) {
	user := &models.User{
		ID:         "lead-1",
		Role:       models.RoleTeamLeader,
		TeamID:     "team-1",
		LedTeamIDs: []string{"team-2"},
		IsActive:   true,
	}

	assert.True(t, HasStanding(user, "team-1"))
	assert.True(t, HasStanding(user, "team-2"))
	assert.False(t, HasStanding(user, "team-3"))
	assert.False(t, HasStanding(user, ""), "empty team never matches")
	assert.False(t, HasStanding(nil, "team-1"))
}
