package models

import "time"

// Role identifies a user's role in the access matrix. Roles are stable
// identifiers, never display names; the display label lives in the UI layer.
type Role string

const (
	RoleAdminManager Role = "admin_manager"
	RoleTeamLeader   Role = "team_leader"
	RoleUserEmployee Role = "user_employee"
)

// KnownRoles lists every role the permission table covers.
var KnownRoles = []Role{RoleAdminManager, RoleTeamLeader, RoleUserEmployee}

// Valid reports whether the role is one of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdminManager, RoleTeamLeader, RoleUserEmployee:
		return true
	}
	return false
}

// User is the identity snapshot the access core consumes. It carries only
// what a decision needs: role, home team, led teams and the active flag.
type User struct {
	ID         string     `json:"id" db:"id"`
	Login      string     `json:"login" db:"login"`
	Email      string     `json:"email" db:"email"`
	FirstName  string     `json:"first_name" db:"first_name"`
	LastName   string     `json:"last_name" db:"last_name"`
	Role       Role       `json:"role" db:"role"`
	TeamID     string     `json:"team_id,omitempty" db:"team_id"`
	LedTeamIDs []string   `json:"led_team_ids,omitempty"`
	IsActive   bool       `json:"is_active" db:"is_active"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`
	LastLogin  *time.Time `json:"last_login,omitempty" db:"last_login"`
}

// LeadsTeam reports whether the user leads the given team.
func (u *User) LeadsTeam(teamID string) bool {
	if u == nil || teamID == "" {
		return false
	}
	for _, id := range u.LedTeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
