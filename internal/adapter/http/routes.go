package http

import (
	"github.com/labstack/echo/v4"
)

// LegacyScrapePath is the route kept for existing mobile clients.
const LegacyScrapePath = "/api/flica-login"

// RegisterRoutes registers all schedule API routes.
func RegisterRoutes(e *echo.Echo, h *ScheduleHandler) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with middleware applied to the scrape endpoints only.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *ScheduleHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	api := e.Group("/api/v1", middleware...)
	api.POST("/schedule", h.Scrape)

	e.POST(LegacyScrapePath, h.Scrape, middleware...)
}
