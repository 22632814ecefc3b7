package models

// TicketStats is one aggregation bucket of the ticket analytics queries.
type TicketStats struct {
	TeamID string `json:"team_id,omitempty" db:"team_id"`
	Status string `json:"status" db:"status"`
	Count  int    `json:"count" db:"count"`
}

// AnalyticsReport is the response of an analytics view or export request.
type AnalyticsReport struct {
	TeamID string        `json:"team_id,omitempty"`
	Stats  []TicketStats `json:"stats"`
}

// AnalyticsCompareResponse holds per-team aggregates side by side for
// cross-team analysis.
type AnalyticsCompareResponse struct {
	Teams []AnalyticsReport `json:"teams"`
}
