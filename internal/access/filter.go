package access

import "github.com/bishtdisha/helpdesk-sub000/internal/models"

// Filter is a declarative, storage-agnostic predicate over subjects. It is
// built from equality and set-membership tests combined with And/Or, so a
// repository can translate it to its own query language. For any filter the
// engine produces, Matches(subject) equals the corresponding CanPerform
// call on that subject; callers may therefore attach the translated filter
// to bulk queries instead of loading and checking each row.
type Filter interface {
	Matches(subject Subject) bool
}

// AllowAll matches every subject.
type AllowAll struct{}

func (AllowAll) Matches(Subject) bool { return true }

// DenyAll matches no subject.
type DenyAll struct{}

func (DenyAll) Matches(Subject) bool { return false }

// ParticipantIs matches subjects whose owner or participant set contains the
// user. For resources without participants this degrades to an owner test.
type ParticipantIs struct {
	UserID string
}

func (f ParticipantIs) Matches(s Subject) bool {
	if f.UserID == "" {
		return false
	}
	if s.OwnerID() != "" && s.OwnerID() == f.UserID {
		return true
	}
	for _, id := range s.ParticipantIDs() {
		if id == f.UserID {
			return true
		}
	}
	return false
}

// TeamIn matches subjects whose team is one of the given teams. A subject
// with no team never matches: a team-scoped grant is never implicitly
// organization-wide.
type TeamIn struct {
	TeamIDs []string
}

func (f TeamIn) Matches(s Subject) bool {
	team := s.TeamID()
	if team == "" {
		return false
	}
	for _, id := range f.TeamIDs {
		if id == team {
			return true
		}
	}
	return false
}

// AccessLevelIn matches article subjects whose access level is in the set.
// Non-article subjects never match.
type AccessLevelIn struct {
	Levels []models.AccessLevel
}

func (f AccessLevelIn) Matches(s Subject) bool {
	a, ok := s.(ArticleSubject)
	if !ok {
		return false
	}
	for _, l := range f.Levels {
		if l == a.AccessLevel {
			return true
		}
	}
	return false
}

// PublishedOnly matches article subjects that are published. Non-article
// subjects never match.
type PublishedOnly struct{}

func (PublishedOnly) Matches(s Subject) bool {
	a, ok := s.(ArticleSubject)
	return ok && a.IsPublished
}

// And matches when every inner filter matches. An empty And matches
// everything.
type And struct {
	Filters []Filter
}

func (f And) Matches(s Subject) bool {
	for _, inner := range f.Filters {
		if !inner.Matches(s) {
			return false
		}
	}
	return true
}

// Or matches when any inner filter matches. An empty Or matches nothing.
type Or struct {
	Filters []Filter
}

func (f Or) Matches(s Subject) bool {
	for _, inner := range f.Filters {
		if inner.Matches(s) {
			return true
		}
	}
	return false
}
