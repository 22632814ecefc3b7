package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
)

// AnalyticsRepository aggregates ticket data for reporting. Every query
// takes an access filter so aggregates never include rows the caller could
// not list.
type AnalyticsRepository struct {
	db *sqlx.DB
}

func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// StatusCounts returns ticket counts per status, optionally narrowed to one
// team, within the rows the filter admits.
func (r *AnalyticsRepository) StatusCounts(ctx context.Context, filter access.Filter, teamID string) ([]models.TicketStats, error) {
	var args []interface{}
	where := []string{filterSQL(filter, ticketColumns, &args)}
	if teamID != "" {
		where = append(where, "t.team_id = ?")
		args = append(args, teamID)
	}

	query := r.db.Rebind(fmt.Sprintf(`
		SELECT COALESCE(t.team_id, '') AS team_id, t.status, COUNT(*) AS count
		FROM tickets t
		WHERE %s
		GROUP BY t.team_id, t.status
		ORDER BY t.team_id, t.status`, strings.Join(where, " AND ")))

	var stats []models.TicketStats
	if err := r.db.SelectContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("failed to aggregate ticket stats: %w", err)
	}
	return stats, nil
}
