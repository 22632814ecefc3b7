package access

import "github.com/bishtdisha/helpdesk-sub000/internal/models"

// StandingTeams returns the set of team IDs the user has standing in: the
// home team plus every led team, deduplicated. It is the single source of
// truth for team-scoped authority; every team decision routes through it.
// A nil, malformed, or deactivated user has standing in no teams.
func StandingTeams(user *models.User) []string {
	if user == nil || !user.IsActive {
		return []string{}
	}

	seen := make(map[string]struct{}, len(user.LedTeamIDs)+1)
	teams := make([]string, 0, len(user.LedTeamIDs)+1)
	if user.TeamID != "" {
		seen[user.TeamID] = struct{}{}
		teams = append(teams, user.TeamID)
	}
	for _, id := range user.LedTeamIDs {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		teams = append(teams, id)
	}
	return teams
}

// HasStanding reports whether teamID is one of the user's standing teams.
// An empty teamID never matches.
func HasStanding(user *models.User, teamID string) bool {
	if teamID == "" {
		return false
	}
	for _, id := range StandingTeams(user) {
		if id == teamID {
			return true
		}
	}
	return false
}
