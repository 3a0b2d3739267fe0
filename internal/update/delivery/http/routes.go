package http

import (
	"github.com/gin-gonic/gin"

	"internship-journey-agent/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Interpret and Apply are rate limited; sheet info is cheap and is not.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	updates := rg.Group("/updates")
	{
		updates.POST("/interpret", mw.RateLimit(), h.Interpret)
		updates.POST("/:id/apply", mw.RateLimit(), h.Apply)
	}

	rg.GET("/sheet", h.SheetInfo)
}
