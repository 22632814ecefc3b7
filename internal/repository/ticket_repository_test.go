package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestTicketGetSubject(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT t.id, t.creator_id")).
		WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "creator_id", "assignee_id", "team_id", "status"}).
			AddRow("t-1", "u-1", "u-2", "team-1", "open"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id FROM ticket_followers")).
		WithArgs("t-1").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow("u-3"))

	subject, err := repo.GetSubject(context.Background(), "t-1")
	require.NoError(t, err)
	assert.Equal(t, "t-1", subject.ID)
	assert.Equal(t, "u-1", subject.Creator)
	assert.Equal(t, "u-2", subject.Assignee)
	assert.Equal(t, "team-1", subject.Team)
	assert.Equal(t, []string{"u-3"}, subject.Followers)
	assert.Equal(t, models.StatusOpen, subject.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketGetSubjectNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT t.id, t.creator_id")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetSubject(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketListAppliesFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)
	now := time.Now()

	// Participant filter binds the user id for creator, assignee and the
	// follower join.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tickets t")).
		WithArgs("u-1", "u-1", "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT t.id, t.number")).
		WithArgs("u-1", "u-1", "u-1", 25, 0).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "number", "title", "description", "status", "priority",
			"creator_id", "assignee_id", "team_id", "due_at", "created_at",
			"updated_at", "closed_at",
		}).AddRow("t-1", "HD-1", "title", "desc", "open", "medium",
			"u-1", "", "team-1", nil, now, now, nil))

	resp, err := repo.List(context.Background(), access.ParticipantIs{UserID: "u-1"}, &models.TicketListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Tickets, 1)
	assert.Equal(t, "t-1", resp.Tickets[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketListNilFilterDeniesAll(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tickets t WHERE FALSE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE FALSE ORDER BY t.created_at")).
		WithArgs(25, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, err := repo.List(context.Background(), nil, &models.TicketListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Tickets)
}

func TestTicketUpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	t.Run("existing ticket", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE tickets")).
			WithArgs("closed", sqlmock.AnyArg(), "closed", sqlmock.AnyArg(), "t-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.UpdateStatus(context.Background(), "t-1", models.StatusClosed))
	})

	t.Run("missing ticket", func(t *testing.T) {
		mock.ExpectExec(regexp.QuoteMeta("UPDATE tickets")).
			WithArgs("closed", sqlmock.AnyArg(), "closed", sqlmock.AnyArg(), "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), "missing", models.StatusClosed)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTicketCreateAssignsIDAndNumber(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ticket := &models.Ticket{Title: "printer down", Description: "it burns", CreatorID: "u-1", TeamID: "team-1"}
	require.NoError(t, repo.Create(context.Background(), ticket))
	assert.NotEmpty(t, ticket.ID)
	assert.NotEmpty(t, ticket.Number)
	assert.Equal(t, models.StatusOpen, ticket.Status)
}

func TestFollowerWrites(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO ticket_followers")).
		WithArgs("t-1", "u-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.AddFollower(context.Background(), "t-1", "u-1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM ticket_followers")).
		WithArgs("t-1", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.RemoveFollower(context.Background(), "t-1", "u-1"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
