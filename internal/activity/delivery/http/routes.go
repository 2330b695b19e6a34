package http

import (
	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/internal/middleware"
)

// RegisterRoutes maps the activity endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	activities := rg.Group("/activities", mw.RateLimit())
	{
		activities.GET("/search", h.Search)
		activities.GET("/search/status", h.SearchStatus)
		activities.POST("/search/seed", h.SeedIndex)
		activities.POST("/resolve", h.Resolve)
	}
}
