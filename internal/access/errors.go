package access

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an access failure. The set is closed; every code maps
// to exactly one HTTP-equivalent status.
type ErrorCode string

const (
	CodeInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"
	CodeInvalidScope            ErrorCode = "INVALID_SCOPE"
	CodeTeamAccessDenied        ErrorCode = "TEAM_ACCESS_DENIED"
	CodeRoleAssignmentDenied    ErrorCode = "ROLE_ASSIGNMENT_DENIED"
	CodeNotFound                ErrorCode = "NOT_FOUND"
	CodeInvalidInput            ErrorCode = "INVALID_INPUT"
	CodeUnauthenticated         ErrorCode = "UNAUTHENTICATED"
)

// Error is a typed access failure carrying everything a caller needs to map
// the denial to an HTTP response. The decision engine itself never returns
// these: only guards and callers construct them, after the engine has
// already produced a definitive deny.
type Error struct {
	Code               ErrorCode `json:"code"`
	StatusCode         int       `json:"-"`
	Reason             string    `json:"reason"`
	RequiredPermission string    `json:"required_permission,omitempty"`
	ResourceID         string    `json:"resource_id,omitempty"`
}

func (e *Error) Error() string {
	if e.RequiredPermission != "" {
		return fmt.Sprintf("%s: %s (requires %s)", e.Code, e.Reason, e.RequiredPermission)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

// AsError unwraps err into an access Error if it is one.
func AsError(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// PermissionKey renders the "resource:action" string reported in denials,
// e.g. "tickets:assign".
func PermissionKey(resource ResourceType, action Action) string {
	return fmt.Sprintf("%s:%s", resource, action)
}

// ErrInsufficientPermissions reports a denial for a resource the user knows
// exists but lacks rights to act on.
func ErrInsufficientPermissions(resource ResourceType, action Action, resourceID string) *Error {
	return &Error{
		Code:               CodeInsufficientPermissions,
		StatusCode:         http.StatusForbidden,
		Reason:             fmt.Sprintf("you do not have permission to %s this %s", action, singular(resource)),
		RequiredPermission: PermissionKey(resource, action),
		ResourceID:         resourceID,
	}
}

// ErrTeamAccessDenied reports a denial caused by the resource belonging to a
// team outside the user's standing teams.
func ErrTeamAccessDenied(resource ResourceType, action Action, resourceID string) *Error {
	return &Error{
		Code:               CodeTeamAccessDenied,
		StatusCode:         http.StatusForbidden,
		Reason:             fmt.Sprintf("this %s belongs to a team you have no standing in", singular(resource)),
		RequiredPermission: PermissionKey(resource, action),
		ResourceID:         resourceID,
	}
}

// ErrInvalidScope reports an unknown or unusable scope value.
func ErrInvalidScope(scope Scope) *Error {
	return &Error{
		Code:       CodeInvalidScope,
		StatusCode: http.StatusForbidden,
		Reason:     fmt.Sprintf("invalid permission scope %q", scope),
	}
}

// ErrRoleAssignmentDenied reports a creation-time denial with the specific
// reason, e.g. a leader assigning a restricted article to a team they do not
// lead.
func ErrRoleAssignmentDenied(reason string) *Error {
	return &Error{
		Code:       CodeRoleAssignmentDenied,
		StatusCode: http.StatusForbidden,
		Reason:     reason,
	}
}

// ErrNotFound reports a missing resource. It is also used for resources the
// user has no relationship to at all, so cross-team existence is not
// disclosed.
func ErrNotFound(resource ResourceType, resourceID string) *Error {
	return &Error{
		Code:       CodeNotFound,
		StatusCode: http.StatusNotFound,
		Reason:     fmt.Sprintf("%s not found", singular(resource)),
		ResourceID: resourceID,
	}
}

// ErrInvalidInput reports malformed caller input such as an empty id.
func ErrInvalidInput(reason string) *Error {
	return &Error{
		Code:       CodeInvalidInput,
		StatusCode: http.StatusBadRequest,
		Reason:     reason,
	}
}

// ErrUnauthenticated reports a missing or expired session.
func ErrUnauthenticated(reason string) *Error {
	return &Error{
		Code:       CodeUnauthenticated,
		StatusCode: http.StatusUnauthorized,
		Reason:     reason,
	}
}

func singular(resource ResourceType) string {
	switch resource {
	case ResourceTicket:
		return "ticket"
	case ResourceKnowledge:
		return "article"
	case ResourceAnalytics:
		return "analytics report"
	case ResourceFollower:
		return "follower"
	case ResourceUser:
		return "user"
	case ResourceTeam:
		return "team"
	}
	return string(resource)
}
