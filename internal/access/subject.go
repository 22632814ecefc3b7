package access

import "github.com/bishtdisha/helpdesk-sub000/internal/models"

// Subject is the access-relevant view of a resource: exactly the attributes
// a decision needs, nothing else. Each resource type has its own variant so
// the engine never works on loosely-typed shapes.
type Subject interface {
	// ResourceType reports which kind of resource this subject describes.
	ResourceType() ResourceType
	// OwnerID is the creator/owner of the resource, empty if none.
	OwnerID() string
	// TeamID is the team the resource is tied to, empty if none.
	TeamID() string
	// ParticipantIDs lists every user with a direct relationship to the
	// resource (owner, assignee, followers). May be empty.
	ParticipantIDs() []string
}

// TicketSubject carries the access attributes of a ticket.
type TicketSubject struct {
	ID        string
	Creator   string
	Assignee  string
	Team      string
	Followers []string
	Status    models.TicketStatus
}

func (s TicketSubject) ResourceType() ResourceType { return ResourceTicket }
func (s TicketSubject) OwnerID() string            { return s.Creator }
func (s TicketSubject) TeamID() string             { return s.Team }

func (s TicketSubject) ParticipantIDs() []string {
	ids := make([]string, 0, len(s.Followers)+2)
	if s.Creator != "" {
		ids = append(ids, s.Creator)
	}
	if s.Assignee != "" {
		ids = append(ids, s.Assignee)
	}
	ids = append(ids, s.Followers...)
	return ids
}

// TicketSubjectOf extracts the access attributes from a ticket.
func TicketSubjectOf(t *models.Ticket) TicketSubject {
	return TicketSubject{
		ID:        t.ID,
		Creator:   t.CreatorID,
		Assignee:  t.AssigneeID,
		Team:      t.TeamID,
		Followers: t.FollowerIDs,
		Status:    t.Status,
	}
}

// ArticleSubject carries the access attributes of a knowledge article.
type ArticleSubject struct {
	ID          string
	Author      string
	Team        string
	AccessLevel models.AccessLevel
	IsPublished bool
}

func (s ArticleSubject) ResourceType() ResourceType { return ResourceKnowledge }
func (s ArticleSubject) OwnerID() string            { return s.Author }
func (s ArticleSubject) TeamID() string             { return s.Team }
func (s ArticleSubject) ParticipantIDs() []string   { return nil }

// ArticleSubjectOf extracts the access attributes from an article.
func ArticleSubjectOf(a *models.KnowledgeArticle) ArticleSubject {
	return ArticleSubject{
		ID:          a.ID,
		Author:      a.AuthorID,
		Team:        a.TeamID,
		AccessLevel: a.AccessLevel,
		IsPublished: a.IsPublished,
	}
}

// AnalyticsSubject identifies the scope of an analytics query. An empty
// Team means organization-wide analytics.
type AnalyticsSubject struct {
	Team string
}

func (s AnalyticsSubject) ResourceType() ResourceType { return ResourceAnalytics }
func (s AnalyticsSubject) OwnerID() string            { return "" }
func (s AnalyticsSubject) TeamID() string             { return s.Team }
func (s AnalyticsSubject) ParticipantIDs() []string   { return nil }

// FollowerSubject is the subject of a follower add/remove: the ticket whose
// follower list is being changed plus the user being added or removed.
type FollowerSubject struct {
	Ticket     TicketSubject
	TargetUser string
}

func (s FollowerSubject) ResourceType() ResourceType { return ResourceFollower }
func (s FollowerSubject) OwnerID() string            { return s.Ticket.OwnerID() }
func (s FollowerSubject) TeamID() string             { return s.Ticket.TeamID() }
func (s FollowerSubject) ParticipantIDs() []string   { return s.Ticket.ParticipantIDs() }

// UserSubject carries the access attributes of a user record.
type UserSubject struct {
	ID   string
	Team string
}

func (s UserSubject) ResourceType() ResourceType { return ResourceUser }
func (s UserSubject) OwnerID() string            { return s.ID }
func (s UserSubject) TeamID() string             { return s.Team }
func (s UserSubject) ParticipantIDs() []string   { return nil }
