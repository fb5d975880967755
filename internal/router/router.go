// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/studyspace/study-space-api/internal/handler"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance: the health check and the public catalogue.
func RegisterRoutes(e *echo.Echo, sp *handler.SpaceHandler, ut *handler.UtilityHandler) {
	// Liveness probe for load balancers and monitoring.
	e.GET("/health", handler.Health)

	// Guests can browse spaces and utilities before registering.
	e.GET("/spaces", sp.List)
	e.GET("/spaces/:id", sp.Get)
	e.GET("/utilities", ut.List)
}
