package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bishtdisha/helpdesk-sub000/internal/middleware"
)

// Handlers bundles the HTTP handlers the router mounts.
type Handlers struct {
	Auth      *middleware.AuthMiddleware
	Tickets   *TicketHandler
	Knowledge *KnowledgeHandler
	Analytics *AnalyticsHandler
}

// NewRouter builds the gin engine with all routes mounted. Everything under
// /api/v1 requires authentication.
func NewRouter(h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(h.Auth.RequireAuth())

	tickets := v1.Group("/tickets")
	{
		tickets.GET("", h.Tickets.List)
		tickets.POST("", h.Tickets.Create)
		tickets.GET("/:id", h.Tickets.Get)
		tickets.PUT("/:id/status", h.Tickets.UpdateStatus)
		tickets.PUT("/:id/assignee", h.Tickets.Assign)
		tickets.PUT("/:id/followers/:user_id", h.Tickets.AddFollower)
		tickets.DELETE("/:id/followers/:user_id", h.Tickets.RemoveFollower)
	}

	knowledge := v1.Group("/knowledge")
	{
		knowledge.GET("", h.Knowledge.List)
		knowledge.POST("", h.Knowledge.Create)
		knowledge.GET("/:id", h.Knowledge.Get)
		knowledge.POST("/:id/publish", h.Knowledge.Publish)
	}

	analytics := v1.Group("/analytics")
	{
		analytics.GET("/overview", h.Analytics.Overview)
		analytics.GET("/export", h.Analytics.Export)
		analytics.GET("/compare", h.Analytics.Compare)
	}

	return router
}
