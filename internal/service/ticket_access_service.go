// Package service provides the resource-specific access guards and business
// services built on top of the access decision engine.
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/metrics"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
	"github.com/bishtdisha/helpdesk-sub000/internal/repository"
)

// TicketAccessService is the ticket guard: it feeds ticket attributes into
// the decision engine and adds the ticket-specific rules (status workflow
// legality, same-team assignment, follower self-removal).
//
// The guard reads the ticket snapshot and decides; it does not hold a lock
// across the caller's subsequent write. A ticket's team can change between
// this read and that write. That race is accepted: the snapshot reflects a
// consistent read at decision time.
type TicketAccessService struct {
	engine  *access.Engine
	tickets repository.TicketStore
	users   repository.UserStore
}

// NewTicketAccessService creates the ticket guard.
func NewTicketAccessService(engine *access.Engine, tickets repository.TicketStore, users repository.UserStore) *TicketAccessService {
	return &TicketAccessService{engine: engine, tickets: tickets, users: users}
}

// CanAccessTicket reports whether the user may read the ticket. It returns
// an error only for infrastructure failures; an unknown ticket or user is a
// plain false.
func (s *TicketAccessService) CanAccessTicket(ctx context.Context, userID, ticketID string) (bool, error) {
	user, subject, err := s.load(ctx, userID, ticketID)
	if err != nil {
		if _, ok := access.AsError(err); ok {
			return false, nil
		}
		return false, err
	}
	allowed := s.engine.CanPerform(user, access.ResourceTicket, access.ActionRead, *subject)
	metrics.RecordDecision(string(access.ResourceTicket), allowed)
	return allowed, nil
}

// Authorize checks one ticket action for a user and returns a typed access
// error on denial, nil on success. Denials for tickets the user has no
// relationship to at all surface as not-found, so cross-team ticket
// existence is not disclosed; denials for visible tickets surface as 403.
func (s *TicketAccessService) Authorize(ctx context.Context, userID, ticketID string, action access.Action) error {
	user, subject, err := s.load(ctx, userID, ticketID)
	if err != nil {
		return err
	}
	return s.authorize(user, *subject, action)
}

// AuthorizeCreate checks ticket creation into the given team.
func (s *TicketAccessService) AuthorizeCreate(ctx context.Context, userID, teamID string) error {
	user, err := s.user(ctx, userID)
	if err != nil {
		return err
	}
	allowed := s.engine.CanCreate(user, access.ResourceTicket, teamID)
	metrics.RecordDecision(string(access.ResourceTicket), allowed)
	if !allowed {
		if teamID != "" && !access.HasStanding(user, teamID) {
			return access.ErrTeamAccessDenied(access.ResourceTicket, access.ActionCreate, "")
		}
		return access.ErrInsufficientPermissions(access.ResourceTicket, access.ActionCreate, "")
	}
	return nil
}

// AuthorizeStatusChange checks both the permission to change status and the
// workflow legality of the transition. Illegal transitions report the legal
// next statuses so callers can surface them.
func (s *TicketAccessService) AuthorizeStatusChange(ctx context.Context, userID, ticketID string, to models.TicketStatus) error {
	user, subject, err := s.load(ctx, userID, ticketID)
	if err != nil {
		return err
	}

	action := access.ActionUpdate
	if to == models.StatusClosed {
		action = access.ActionClose
	}
	if err := s.authorize(user, *subject, action); err != nil {
		return err
	}

	if !models.ValidateStatusTransition(subject.Status, to) {
		return access.ErrInvalidInput(fmt.Sprintf(
			"cannot transition ticket from %s to %s; allowed next statuses: %v",
			subject.Status, to, models.ValidStatusTransitions(subject.Status)))
	}
	return nil
}

// AuthorizeAssign checks assignment of the ticket to assigneeID. Team-scoped
// assigners may only assign within the ticket's team: the assignee must have
// standing in it.
func (s *TicketAccessService) AuthorizeAssign(ctx context.Context, userID, ticketID, assigneeID string) error {
	if assigneeID == "" {
		return access.ErrInvalidInput("assignee id must not be empty")
	}

	user, subject, err := s.load(ctx, userID, ticketID)
	if err != nil {
		return err
	}
	if err := s.authorize(user, *subject, access.ActionAssign); err != nil {
		return err
	}

	assignee, err := s.users.GetSnapshot(ctx, assigneeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return access.ErrNotFound(access.ResourceUser, assigneeID)
		}
		return fmt.Errorf("failed to load assignee: %w", err)
	}

	if access.Lookup(user.Role, access.ResourceTicket, access.ActionAssign).Scope == access.ScopeTeam {
		if !access.HasStanding(assignee, subject.Team) {
			return access.ErrRoleAssignmentDenied(fmt.Sprintf(
				"assignee %s has no standing in the ticket's team", assigneeID))
		}
	}
	return nil
}

// AuthorizeAddFollower checks adding targetUserID as a follower.
func (s *TicketAccessService) AuthorizeAddFollower(ctx context.Context, userID, ticketID, targetUserID string) error {
	if targetUserID == "" {
		return access.ErrInvalidInput("follower id must not be empty")
	}
	user, subject, err := s.load(ctx, userID, ticketID)
	if err != nil {
		return err
	}
	follower := access.FollowerSubject{Ticket: *subject, TargetUser: targetUserID}
	allowed := s.engine.CanPerform(user, access.ResourceFollower, access.ActionAdd, follower)
	metrics.RecordDecision(string(access.ResourceFollower), allowed)
	if !allowed {
		return s.denial(user, *subject, access.ResourceFollower, access.ActionAdd)
	}
	return nil
}

// AuthorizeRemoveFollower checks removal of targetUserID from the follower
// list. Employees may remove only themself, whatever the generic scope
// check would allow.
func (s *TicketAccessService) AuthorizeRemoveFollower(ctx context.Context, userID, ticketID, targetUserID string) error {
	if targetUserID == "" {
		return access.ErrInvalidInput("follower id must not be empty")
	}
	user, subject, err := s.load(ctx, userID, ticketID)
	if err != nil {
		return err
	}

	if user.Role == models.RoleUserEmployee && targetUserID != user.ID {
		metrics.RecordDecision(string(access.ResourceFollower), false)
		return &access.Error{
			Code:               access.CodeInsufficientPermissions,
			StatusCode:         http.StatusForbidden,
			Reason:             "you may only remove yourself as a follower",
			RequiredPermission: access.PermissionKey(access.ResourceFollower, access.ActionRemove),
			ResourceID:         ticketID,
		}
	}

	follower := access.FollowerSubject{Ticket: *subject, TargetUser: targetUserID}
	allowed := s.engine.CanPerform(user, access.ResourceFollower, access.ActionRemove, follower)
	metrics.RecordDecision(string(access.ResourceFollower), allowed)
	if !allowed {
		return s.denial(user, *subject, access.ResourceFollower, access.ActionRemove)
	}
	return nil
}

// ListFilter returns the authorization predicate for ticket listings,
// equivalent to checking CanPerform(read) on every row.
func (s *TicketAccessService) ListFilter(ctx context.Context, userID string) (access.Filter, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return access.DenyAll{}, err
	}
	return s.engine.BuildListFilter(user, access.ResourceTicket, access.ActionRead), nil
}

func (s *TicketAccessService) authorize(user *models.User, subject access.TicketSubject, action access.Action) error {
	allowed := s.engine.CanPerform(user, access.ResourceTicket, action, subject)
	metrics.RecordDecision(string(access.ResourceTicket), allowed)
	if allowed {
		return nil
	}
	return s.denial(user, subject, access.ResourceTicket, action)
}

// denial picks the typed error for a deny the engine already produced. A
// user who cannot even read the ticket gets not-found; a user who can read
// it but lacks this action gets a 403, team-flavored when the block is the
// ticket's team.
func (s *TicketAccessService) denial(user *models.User, subject access.TicketSubject, resource access.ResourceType, action access.Action) error {
	if !s.engine.CanPerform(user, access.ResourceTicket, access.ActionRead, subject) {
		return access.ErrNotFound(access.ResourceTicket, subject.ID)
	}
	entry := access.Lookup(user.Role, resource, action)
	if entry.Scope == access.ScopeTeam && !access.HasStanding(user, subject.Team) {
		return access.ErrTeamAccessDenied(resource, action, subject.ID)
	}
	return access.ErrInsufficientPermissions(resource, action, subject.ID)
}

func (s *TicketAccessService) user(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, access.ErrUnauthenticated("missing user identity")
	}
	user, err := s.users.GetSnapshot(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, access.ErrUnauthenticated("unknown user")
		}
		return nil, fmt.Errorf("failed to load user snapshot: %w", err)
	}
	return user, nil
}

func (s *TicketAccessService) load(ctx context.Context, userID, ticketID string) (*models.User, *access.TicketSubject, error) {
	if ticketID == "" {
		return nil, nil, access.ErrInvalidInput("ticket id must not be empty")
	}
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	subject, err := s.tickets.GetSubject(ctx, ticketID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, access.ErrNotFound(access.ResourceTicket, ticketID)
		}
		return nil, nil, fmt.Errorf("failed to load ticket subject: %w", err)
	}
	return user, subject, nil
}
