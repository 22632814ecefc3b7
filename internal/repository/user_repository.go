// Package repository provides sqlx-backed data access for the helpdesk
// entities. Repositories read and write rows; they never make access
// decisions.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/bishtdisha/helpdesk-sub000/internal/models"
)

// UserRepository loads user snapshots from postgres.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetSnapshot returns the identity snapshot for a user, including the teams
// they lead. The snapshot reflects a consistent read at call time; any
// concurrent role or team change is the caller's accepted race.
func (r *UserRepository) GetSnapshot(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, ErrNotFound
	}

	var user models.User
	query := r.db.Rebind(`
		SELECT id, login, email, first_name, last_name, role,
		       COALESCE(team_id, '') AS team_id, is_active,
		       created_at, updated_at, last_login
		FROM users
		WHERE id = ?
	`)
	if err := r.db.GetContext(ctx, &user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}

	ledQuery := r.db.Rebind(`
		SELECT team_id FROM team_leaders WHERE user_id = ? ORDER BY team_id
	`)
	if err := r.db.SelectContext(ctx, &user.LedTeamIDs, ledQuery, userID); err != nil {
		return nil, fmt.Errorf("failed to get led teams for user %s: %w", userID, err)
	}

	return &user, nil
}

// ListByTeam returns the active users of one team.
func (r *UserRepository) ListByTeam(ctx context.Context, teamID string) ([]models.User, error) {
	var users []models.User
	query := r.db.Rebind(`
		SELECT id, login, email, first_name, last_name, role,
		       COALESCE(team_id, '') AS team_id, is_active,
		       created_at, updated_at, last_login
		FROM users
		WHERE team_id = ? AND is_active = TRUE
		ORDER BY last_name, first_name
	`)
	if err := r.db.SelectContext(ctx, &users, query, teamID); err != nil {
		return nil, fmt.Errorf("failed to list users for team %s: %w", teamID, err)
	}
	return users, nil
}
