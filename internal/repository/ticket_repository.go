package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
)

// ticketColumns maps filter predicates onto the tickets table. Participant
// membership covers the assignee column and the followers join table.
var ticketColumns = filterColumns{
	owner: "t.creator_id",
	participant: "t.assignee_id = ? OR EXISTS (" +
		"SELECT 1 FROM ticket_followers tf WHERE tf.ticket_id = t.id AND tf.user_id = ?)",
	participantArgs: 2,
	team:            "t.team_id",
}

const ticketSelect = `
	SELECT t.id, t.number, t.title, t.description, t.status, t.priority,
	       t.creator_id, COALESCE(t.assignee_id, '') AS assignee_id,
	       COALESCE(t.team_id, '') AS team_id,
	       t.due_at, t.created_at, t.updated_at, t.closed_at
	FROM tickets t
`

// TicketRepository persists tickets in postgres.
type TicketRepository struct {
	db *sqlx.DB
}

// NewTicketRepository creates a ticket repository.
func NewTicketRepository(db *sqlx.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// GetByID returns a ticket with its follower list.
func (r *TicketRepository) GetByID(ctx context.Context, ticketID string) (*models.Ticket, error) {
	var ticket models.Ticket
	query := r.db.Rebind(ticketSelect + " WHERE t.id = ?")
	if err := r.db.GetContext(ctx, &ticket, query, ticketID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ticket %s: %w", ticketID, err)
	}

	followers, err := r.followerIDs(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	ticket.FollowerIDs = followers
	return &ticket, nil
}

// GetSubject loads only the access attributes of a ticket.
func (r *TicketRepository) GetSubject(ctx context.Context, ticketID string) (*access.TicketSubject, error) {
	var row struct {
		ID         string              `db:"id"`
		CreatorID  string              `db:"creator_id"`
		AssigneeID string              `db:"assignee_id"`
		TeamID     string              `db:"team_id"`
		Status     models.TicketStatus `db:"status"`
	}
	query := r.db.Rebind(`
		SELECT t.id, t.creator_id, COALESCE(t.assignee_id, '') AS assignee_id,
		       COALESCE(t.team_id, '') AS team_id, t.status
		FROM tickets t
		WHERE t.id = ?
	`)
	if err := r.db.GetContext(ctx, &row, query, ticketID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ticket subject %s: %w", ticketID, err)
	}

	followers, err := r.followerIDs(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	return &access.TicketSubject{
		ID:        row.ID,
		Creator:   row.CreatorID,
		Assignee:  row.AssigneeID,
		Team:      row.TeamID,
		Followers: followers,
		Status:    row.Status,
	}, nil
}

// List returns the page of tickets selected by the authorization filter and
// the request. The filter is rendered into the WHERE clause so unauthorized
// rows are never loaded.
func (r *TicketRepository) List(ctx context.Context, filter access.Filter, req *models.TicketListRequest) (*models.TicketListResponse, error) {
	if filter == nil {
		filter = access.DenyAll{}
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 25
	}

	var args []interface{}
	where := []string{filterSQL(filter, ticketColumns, &args)}
	if req.Status != "" {
		where = append(where, "t.status = ?")
		args = append(args, req.Status)
	}
	if req.TeamID != "" {
		where = append(where, "t.team_id = ?")
		args = append(args, req.TeamID)
	}
	whereClause := " WHERE " + strings.Join(where, " AND ")

	var total int
	countQuery := r.db.Rebind("SELECT COUNT(*) FROM tickets t" + whereClause)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}

	listArgs := append(args, perPage, (page-1)*perPage)
	listQuery := r.db.Rebind(ticketSelect + whereClause + " ORDER BY t.created_at DESC LIMIT ? OFFSET ?")
	tickets := []models.Ticket{}
	if err := r.db.SelectContext(ctx, &tickets, listQuery, listArgs...); err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return &models.TicketListResponse{
		Tickets: tickets,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// Create inserts a ticket, assigning an id and number when absent.
func (r *TicketRepository) Create(ctx context.Context, ticket *models.Ticket) error {
	if ticket.ID == "" {
		ticket.ID = uuid.NewString()
	}
	if ticket.Number == "" {
		ticket.Number = fmt.Sprintf("HD-%d", time.Now().UnixNano()%1_000_000_000)
	}
	if ticket.Status == "" {
		ticket.Status = models.StatusOpen
	}
	now := time.Now().UTC()
	ticket.CreatedAt = now
	ticket.UpdatedAt = now

	query := r.db.Rebind(`
		INSERT INTO tickets (id, number, title, description, status, priority,
		                     creator_id, assignee_id, team_id, due_at,
		                     created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, NULLIF(?, ''), NULLIF(?, ''), ?, ?, ?)
	`)
	_, err := r.db.ExecContext(ctx, query,
		ticket.ID, ticket.Number, ticket.Title, ticket.Description,
		ticket.Status, ticket.Priority, ticket.CreatorID, ticket.AssigneeID,
		ticket.TeamID, ticket.DueAt, ticket.CreatedAt, ticket.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// UpdateStatus changes the workflow status, stamping closed_at on close.
func (r *TicketRepository) UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus) error {
	query := r.db.Rebind(`
		UPDATE tickets
		SET status = ?, updated_at = ?,
		    closed_at = CASE WHEN ? = 'closed' THEN ? ELSE closed_at END
		WHERE id = ?
	`)
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, query, status, now, status, now, ticketID)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	return requireRow(result)
}

// SetAssignee assigns or clears the ticket's assignee.
func (r *TicketRepository) SetAssignee(ctx context.Context, ticketID, assigneeID string) error {
	query := r.db.Rebind(`
		UPDATE tickets SET assignee_id = NULLIF(?, ''), updated_at = ? WHERE id = ?
	`)
	result, err := r.db.ExecContext(ctx, query, assigneeID, time.Now().UTC(), ticketID)
	if err != nil {
		return fmt.Errorf("failed to assign ticket: %w", err)
	}
	return requireRow(result)
}

// AddFollower adds a user to the ticket's follower list, idempotently.
func (r *TicketRepository) AddFollower(ctx context.Context, ticketID, userID string) error {
	query := r.db.Rebind(`
		INSERT INTO ticket_followers (ticket_id, user_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (ticket_id, user_id) DO NOTHING
	`)
	if _, err := r.db.ExecContext(ctx, query, ticketID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to add follower: %w", err)
	}
	return nil
}

// RemoveFollower removes a user from the ticket's follower list.
func (r *TicketRepository) RemoveFollower(ctx context.Context, ticketID, userID string) error {
	query := r.db.Rebind(`
		DELETE FROM ticket_followers WHERE ticket_id = ? AND user_id = ?
	`)
	if _, err := r.db.ExecContext(ctx, query, ticketID, userID); err != nil {
		return fmt.Errorf("failed to remove follower: %w", err)
	}
	return nil
}

func (r *TicketRepository) followerIDs(ctx context.Context, ticketID string) ([]string, error) {
	followers := []string{}
	query := r.db.Rebind(`
		SELECT user_id FROM ticket_followers WHERE ticket_id = ? ORDER BY user_id
	`)
	if err := r.db.SelectContext(ctx, &followers, query, ticketID); err != nil {
		return nil, fmt.Errorf("failed to get followers for ticket %s: %w", ticketID, err)
	}
	return followers, nil
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
