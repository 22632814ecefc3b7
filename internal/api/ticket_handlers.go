package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
	"github.com/bishtdisha/helpdesk-sub000/internal/middleware"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
	"github.com/bishtdisha/helpdesk-sub000/internal/repository"
	"github.com/bishtdisha/helpdesk-sub000/internal/service"
)

// TicketHandler serves the ticket endpoints.
type TicketHandler struct {
	guard   *service.TicketAccessService
	tickets repository.TicketStore
}

func NewTicketHandler(guard *service.TicketAccessService, tickets repository.TicketStore) *TicketHandler {
	return &TicketHandler{guard: guard, tickets: tickets}
}

// List returns the tickets the caller may see, paginated. The guard's
// filter is compiled into the query, so denied rows are never fetched.
func (h *TicketHandler) List(c *gin.Context) {
	var req models.TicketListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, access.ErrInvalidInput(err.Error()))
		return
	}

	filter, err := h.guard.ListFilter(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.tickets.List(c.Request.Context(), filter, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one ticket.
func (h *TicketHandler) Get(c *gin.Context) {
	ticketID := c.Param("id")
	if err := h.guard.Authorize(c.Request.Context(), middleware.CurrentUserID(c), ticketID, access.ActionRead); err != nil {
		respondError(c, err)
		return
	}

	ticket, err := h.tickets.GetByID(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

// Create opens a new ticket. A request without a team lands in the
// creator's own team.
func (h *TicketHandler) Create(c *gin.Context) {
	var req models.TicketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, access.ErrInvalidInput(err.Error()))
		return
	}

	user := middleware.CurrentUser(c)
	teamID := req.TeamID
	if teamID == "" {
		teamID = user.TeamID
	}

	if err := h.guard.AuthorizeCreate(c.Request.Context(), user.ID, teamID); err != nil {
		respondError(c, err)
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	ticket := &models.Ticket{
		Title:       req.Title,
		Description: req.Description,
		Status:      models.StatusOpen,
		Priority:    priority,
		CreatorID:   user.ID,
		TeamID:      teamID,
	}
	if err := h.tickets.Create(c.Request.Context(), ticket); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

// UpdateStatus moves a ticket through its workflow.
func (h *TicketHandler) UpdateStatus(c *gin.Context) {
	ticketID := c.Param("id")
	var req models.TicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, access.ErrInvalidInput(err.Error()))
		return
	}

	ctx := c.Request.Context()
	if err := h.guard.AuthorizeStatusChange(ctx, middleware.CurrentUserID(c), ticketID, req.Status); err != nil {
		respondError(c, err)
		return
	}
	if err := h.tickets.UpdateStatus(ctx, ticketID, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": ticketID, "status": req.Status})
}

// Assign sets the ticket's assignee.
func (h *TicketHandler) Assign(c *gin.Context) {
	ticketID := c.Param("id")
	var req models.TicketAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, access.ErrInvalidInput(err.Error()))
		return
	}

	ctx := c.Request.Context()
	if err := h.guard.AuthorizeAssign(ctx, middleware.CurrentUserID(c), ticketID, req.AssigneeID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.tickets.SetAssignee(ctx, ticketID, req.AssigneeID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": ticketID, "assignee_id": req.AssigneeID})
}

// AddFollower subscribes a user to the ticket.
func (h *TicketHandler) AddFollower(c *gin.Context) {
	ticketID := c.Param("id")
	targetID := c.Param("user_id")

	ctx := c.Request.Context()
	if err := h.guard.AuthorizeAddFollower(ctx, middleware.CurrentUserID(c), ticketID, targetID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.tickets.AddFollower(ctx, ticketID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": ticketID, "follower_id": targetID})
}

// RemoveFollower unsubscribes a user from the ticket.
func (h *TicketHandler) RemoveFollower(c *gin.Context) {
	ticketID := c.Param("id")
	targetID := c.Param("user_id")

	ctx := c.Request.Context()
	if err := h.guard.AuthorizeRemoveFollower(ctx, middleware.CurrentUserID(c), ticketID, targetID); err != nil {
		respondError(c, err)
		return
	}
	if err := h.tickets.RemoveFollower(ctx, ticketID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
