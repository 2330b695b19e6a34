package http

import (
	"github.com/gin-gonic/gin"

	"github.com/asyncopatedsoul/health-protocol/internal/middleware"
)

// RegisterRoutes maps the note endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	notes := rg.Group("/notes", mw.RateLimit())
	{
		notes.POST("", h.Create)
		notes.POST("/parse", h.Parse)
		notes.POST("/import", h.ImportForUser)
		notes.POST("/import/batch", h.ImportBatch)
		notes.POST("/:id/import", h.Import)
	}
}
