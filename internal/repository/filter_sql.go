package repository

import (
	"fmt"
	"strings"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
)

// filterColumns maps the abstract tests in an access filter onto the
// columns of one table. Each store supplies its own mapping.
type filterColumns struct {
	// owner is the owner/creator column, e.g. "t.creator_id".
	owner string
	// participant renders the participant-membership test for one bind
	// placeholder, e.g. an EXISTS over a followers table. Empty means the
	// resource has no participants beyond the owner.
	participant string
	// participantArgs is how many placeholders participant consumes.
	participantArgs int
	// team is the team column, e.g. "t.team_id".
	team string
	// accessLevel and published are article-only columns; empty means the
	// predicate can never match this table.
	accessLevel string
	published   string
}

// filterSQL renders an access filter into a WHERE fragment with '?'
// placeholders, appending bind values to args. The fragment is always a
// valid boolean expression; Rebind it before use against postgres.
//
// The translation is total over the filter grammar: predicates that cannot
// apply to the table (e.g. access levels on tickets) render as FALSE, which
// matches their in-memory Matches behavior on foreign subject types.
func filterSQL(f access.Filter, cols filterColumns, args *[]interface{}) string {
	switch v := f.(type) {
	case access.AllowAll:
		return "TRUE"
	case access.DenyAll:
		return "FALSE"
	case access.ParticipantIs:
		if v.UserID == "" {
			return "FALSE"
		}
		clauses := []string{fmt.Sprintf("%s = ?", cols.owner)}
		*args = append(*args, v.UserID)
		if cols.participant != "" {
			clauses = append(clauses, cols.participant)
			for i := 0; i < cols.participantArgs; i++ {
				*args = append(*args, v.UserID)
			}
		}
		return "(" + strings.Join(clauses, " OR ") + ")"
	case access.TeamIn:
		if len(v.TeamIDs) == 0 || cols.team == "" {
			return "FALSE"
		}
		placeholders := make([]string, len(v.TeamIDs))
		for i, id := range v.TeamIDs {
			placeholders[i] = "?"
			*args = append(*args, id)
		}
		return fmt.Sprintf("%s IN (%s)", cols.team, strings.Join(placeholders, ", "))
	case access.AccessLevelIn:
		if len(v.Levels) == 0 || cols.accessLevel == "" {
			return "FALSE"
		}
		placeholders := make([]string, len(v.Levels))
		for i, level := range v.Levels {
			placeholders[i] = "?"
			*args = append(*args, string(level))
		}
		return fmt.Sprintf("%s IN (%s)", cols.accessLevel, strings.Join(placeholders, ", "))
	case access.PublishedOnly:
		if cols.published == "" {
			return "FALSE"
		}
		return fmt.Sprintf("%s = TRUE", cols.published)
	case access.And:
		if len(v.Filters) == 0 {
			return "TRUE"
		}
		parts := make([]string, len(v.Filters))
		for i, inner := range v.Filters {
			parts[i] = filterSQL(inner, cols, args)
		}
		return "(" + strings.Join(parts, " AND ") + ")"
	case access.Or:
		if len(v.Filters) == 0 {
			return "FALSE"
		}
		parts := make([]string, len(v.Filters))
		for i, inner := range v.Filters {
			parts[i] = filterSQL(inner, cols, args)
		}
		return "(" + strings.Join(parts, " OR ") + ")"
	}
	return "FALSE"
}
