package models

import "time"

// TicketStatus represents where a ticket sits in its workflow.
type TicketStatus string

const (
	StatusOpen               TicketStatus = "open"
	StatusInProgress         TicketStatus = "in_progress"
	StatusWaitingForCustomer TicketStatus = "waiting_for_customer"
	StatusResolved           TicketStatus = "resolved"
	StatusClosed             TicketStatus = "closed"
)

// TicketPriority represents the urgency of a ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// statusTransitions is the full workflow graph. Closed is terminal: no
// outgoing edges. Resolved tickets may be reopened back to in_progress.
var statusTransitions = map[TicketStatus][]TicketStatus{
	StatusOpen:               {StatusInProgress},
	StatusInProgress:         {StatusWaitingForCustomer, StatusResolved},
	StatusWaitingForCustomer: {StatusInProgress},
	StatusResolved:           {StatusClosed, StatusInProgress},
	StatusClosed:             {},
}

// ValidateStatusTransition reports whether from -> to is a legal workflow
// edge. Unknown statuses never validate.
func ValidateStatusTransition(from, to TicketStatus) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatusTransitions returns the legal next statuses for a ticket in the
// given status. The result is a copy; callers may mutate it. Unknown or
// terminal statuses yield an empty slice.
func ValidStatusTransitions(from TicketStatus) []TicketStatus {
	next := statusTransitions[from]
	out := make([]TicketStatus, len(next))
	copy(out, next)
	return out
}

// Ticket represents a support ticket.
type Ticket struct {
	ID          string         `json:"id" db:"id"`
	Number      string         `json:"number" db:"number"`
	Title       string         `json:"title" db:"title"`
	Description string         `json:"description" db:"description"`
	Status      TicketStatus   `json:"status" db:"status"`
	Priority    TicketPriority `json:"priority" db:"priority"`
	CreatorID   string         `json:"creator_id" db:"creator_id"`
	AssigneeID  string         `json:"assignee_id,omitempty" db:"assignee_id"`
	TeamID      string         `json:"team_id,omitempty" db:"team_id"`
	FollowerIDs []string       `json:"follower_ids,omitempty"`
	DueAt       *time.Time     `json:"due_at,omitempty" db:"due_at"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`
	ClosedAt    *time.Time     `json:"closed_at,omitempty" db:"closed_at"`
}

// IsClosed reports whether the ticket is in its terminal status.
func (t *Ticket) IsClosed() bool {
	return t.Status == StatusClosed
}

// IsParticipant reports whether the user created, is assigned to, or
// follows this ticket.
func (t *Ticket) IsParticipant(userID string) bool {
	if userID == "" {
		return false
	}
	if t.CreatorID == userID || t.AssigneeID == userID {
		return true
	}
	for _, id := range t.FollowerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// TicketComment is a message on a ticket.
type TicketComment struct {
	ID        string    `json:"id" db:"id"`
	TicketID  string    `json:"ticket_id" db:"ticket_id"`
	AuthorID  string    `json:"author_id" db:"author_id"`
	Body      string    `json:"body" db:"body"`
	Internal  bool      `json:"internal" db:"internal"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TicketCreateRequest is the payload for creating a ticket.
type TicketCreateRequest struct {
	Title       string         `json:"title" binding:"required,min=1,max=255"`
	Description string         `json:"description" binding:"required"`
	Priority    TicketPriority `json:"priority,omitempty"`
	TeamID      string         `json:"team_id,omitempty"`
}

// TicketStatusRequest is the payload for a status change.
type TicketStatusRequest struct {
	Status TicketStatus `json:"status" binding:"required"`
}

// TicketAssignRequest is the payload for assigning a ticket.
type TicketAssignRequest struct {
	AssigneeID string `json:"assignee_id" binding:"required"`
}

// TicketListRequest holds pagination for ticket listings. Authorization
// filtering is attached by the caller, not expressed here.
type TicketListRequest struct {
	Page    int    `json:"page,omitempty" form:"page"`
	PerPage int    `json:"per_page,omitempty" form:"per_page"`
	Status  string `json:"status,omitempty" form:"status"`
	TeamID  string `json:"team_id,omitempty" form:"team_id"`
}

// TicketListResponse is a paginated ticket listing.
type TicketListResponse struct {
	Tickets []Ticket `json:"tickets"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	PerPage int      `json:"per_page"`
}
