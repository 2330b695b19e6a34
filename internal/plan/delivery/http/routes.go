package http

import (
	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/internal/middleware"
)

// RegisterRoutes maps the program and planned activity endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	programs := rg.Group("/programs", mw.RateLimit())
	{
		programs.GET("/:id", h.Detail)
		programs.POST("/:id/plan", h.Plan)
	}

	planned := rg.Group("/planned", mw.RateLimit())
	{
		planned.GET("", h.ListPlanned)
	}
}
