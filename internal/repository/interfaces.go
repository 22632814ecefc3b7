package repository

import (
	"context"
	"errors"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
)

// ErrNotFound is returned when a requested row does not exist. Callers map
// it to their own not-found reporting; repositories never decide access.
var ErrNotFound = errors.New("not found")

// UserStore loads user identity snapshots for access decisions.
type UserStore interface {
	// GetSnapshot returns the user's identity snapshot including led team
	// IDs. Returns ErrNotFound for unknown users.
	GetSnapshot(ctx context.Context, userID string) (*models.User, error)
}

// TicketStore defines the ticket data operations the guards and services
// need.
type TicketStore interface {
	GetByID(ctx context.Context, ticketID string) (*models.Ticket, error)
	// GetSubject loads only the access attributes of a ticket, which is all
	// a permission check needs.
	GetSubject(ctx context.Context, ticketID string) (*access.TicketSubject, error)
	// List returns tickets matching both the caller's pagination request and
	// the authorization filter. Rows the filter rejects are excluded by the
	// query itself, never fetched.
	List(ctx context.Context, filter access.Filter, req *models.TicketListRequest) (*models.TicketListResponse, error)
	Create(ctx context.Context, ticket *models.Ticket) error
	UpdateStatus(ctx context.Context, ticketID string, status models.TicketStatus) error
	SetAssignee(ctx context.Context, ticketID, assigneeID string) error
	AddFollower(ctx context.Context, ticketID, userID string) error
	RemoveFollower(ctx context.Context, ticketID, userID string) error
}

// ArticleStore defines the knowledge base data operations.
type ArticleStore interface {
	GetByID(ctx context.Context, articleID string) (*models.KnowledgeArticle, error)
	GetSubject(ctx context.Context, articleID string) (*access.ArticleSubject, error)
	List(ctx context.Context, filter access.Filter, req *models.ArticleListRequest) (*models.ArticleListResponse, error)
	Create(ctx context.Context, article *models.KnowledgeArticle) error
	SetPublished(ctx context.Context, articleID string, published bool) error
}
