package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []TicketStatus{
	StatusOpen, StatusInProgress, StatusWaitingForCustomer, StatusResolved, StatusClosed,
}

func TestValidateStatusTransition(t *testing.T) {
	legal := map[TicketStatus][]TicketStatus{
		StatusOpen:               {StatusInProgress},
		StatusInProgress:         {StatusWaitingForCustomer, StatusResolved},
		StatusWaitingForCustomer: {StatusInProgress},
		StatusResolved:           {StatusClosed, StatusInProgress},
	}

	t.Run("only listed edges are legal", func(t *testing.T) {
		for _, from := range allStatuses {
			for _, to := range allStatuses {
				want := false
				for _, next := range legal[from] {
					if next == to {
						want = true
					}
				}
				assert.Equal(t, want, ValidateStatusTransition(from, to), "%s -> %s", from, to)
			}
		}
	})

	t.Run("closed is terminal", func(t *testing.T) {
		for _, to := range allStatuses {
			assert.False(t, ValidateStatusTransition(StatusClosed, to), "closed -> %s", to)
		}
		assert.Empty(t, ValidStatusTransitions(StatusClosed))
	})

	t.Run("unknown statuses never validate", func(t *testing.T) {
		assert.False(t, ValidateStatusTransition(TicketStatus("archived"), StatusOpen))
		assert.False(t, ValidateStatusTransition(StatusOpen, TicketStatus("archived")))
		assert.Empty(t, ValidStatusTransitions(TicketStatus("archived")))
	})

	t.Run("valid transitions lists match the graph", func(t *testing.T) {
		assert.ElementsMatch(t, []TicketStatus{StatusInProgress}, ValidStatusTransitions(StatusOpen))
		assert.ElementsMatch(t, []TicketStatus{StatusWaitingForCustomer, StatusResolved}, ValidStatusTransitions(StatusInProgress))
		assert.ElementsMatch(t, []TicketStatus{StatusClosed, StatusInProgress}, ValidStatusTransitions(StatusResolved))
	})
}

func TestTicketParticipation(t *testing.T) {
	ticket := &Ticket{
		ID:          "t-1",
		CreatorID:   "creator",
		AssigneeID:  "assignee",
		FollowerIDs: []string{"follower-1", "follower-2"},
	}

	assert.True(t, ticket.IsParticipant("creator"))
	assert.True(t, ticket.IsParticipant("assignee"))
	assert.True(t, ticket.IsParticipant("follower-2"))
	assert.False(t, ticket.IsParticipant("stranger"))
	assert.False(t, ticket.IsParticipant(""))
}
