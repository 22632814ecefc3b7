// Package api exposes the HTTP surface. Handlers delegate every access
// decision to the guards in internal/service and only translate results to
// JSON.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bishtdisha/helpdesk-sub000/internal/access"
)

// respondError maps an error to the wire. Typed access errors carry their
// own status and JSON shape; anything else is an opaque 500 so internal
// details never leak.
func respondError(c *gin.Context, err error) {
	if ae, ok := access.AsError(err); ok {
		c.JSON(ae.StatusCode, gin.H{"error": ae})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{
		"code":   "INTERNAL",
		"reason": "internal server error",
	}})
}
