package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bishtdisha/helpdesk-sub000/internal/middleware"
	"github.com/bishtdisha/helpdesk-sub000/internal/models"
	"github.com/bishtdisha/helpdesk-sub000/internal/repository"
	"github.com/bishtdisha/helpdesk-sub000/internal/service"
)

// AnalyticsHandler serves the reporting endpoints. The guard decides which
// team scopes the caller may query; the repository aggregates within the
// same filter the caller's listings use.
type AnalyticsHandler struct {
	guard     *service.AnalyticsAccessService
	analytics *repository.AnalyticsRepository
}

func NewAnalyticsHandler(guard *service.AnalyticsAccessService, analytics *repository.AnalyticsRepository) *AnalyticsHandler {
	return &AnalyticsHandler{guard: guard, analytics: analytics}
}

// Overview returns ticket counts per status for the requested team, or the
// whole organization when no team is given.
func (h *AnalyticsHandler) Overview(c *gin.Context) {
	teamID := c.Query("team_id")
	userID := middleware.CurrentUserID(c)
	ctx := c.Request.Context()

	if err := h.guard.AuthorizeView(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	filter, err := h.guard.ViewFilter(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.analytics.StatusCounts(ctx, filter, teamID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AnalyticsReport{TeamID: teamID, Stats: stats})
}

// Export returns the same aggregates as Overview but requires the export
// capability; the payload is meant for download rather than display.
func (h *AnalyticsHandler) Export(c *gin.Context) {
	teamID := c.Query("team_id")
	userID := middleware.CurrentUserID(c)
	ctx := c.Request.Context()

	if err := h.guard.AuthorizeExport(ctx, userID, teamID); err != nil {
		respondError(c, err)
		return
	}

	filter, err := h.guard.ViewFilter(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.analytics.StatusCounts(ctx, filter, teamID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="analytics.json"`)
	c.JSON(http.StatusOK, models.AnalyticsReport{TeamID: teamID, Stats: stats})
}

// Compare returns per-team aggregates side by side. Cross-team comparison
// is restricted to organization-wide viewers.
func (h *AnalyticsHandler) Compare(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	ctx := c.Request.Context()

	if err := h.guard.AuthorizeCompare(ctx, userID); err != nil {
		respondError(c, err)
		return
	}

	filter, err := h.guard.ViewFilter(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.analytics.StatusCounts(ctx, filter, "")
	if err != nil {
		respondError(c, err)
		return
	}

	byTeam := map[string]*models.AnalyticsReport{}
	var order []string
	for _, s := range stats {
		report, ok := byTeam[s.TeamID]
		if !ok {
			report = &models.AnalyticsReport{TeamID: s.TeamID}
			byTeam[s.TeamID] = report
			order = append(order, s.TeamID)
		}
		report.Stats = append(report.Stats, s)
	}

	resp := models.AnalyticsCompareResponse{Teams: make([]models.AnalyticsReport, 0, len(order))}
	for _, teamID := range order {
		resp.Teams = append(resp.Teams, *byTeam[teamID])
	}
	c.JSON(http.StatusOK, resp)
}
