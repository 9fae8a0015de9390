package router

import (
	"github.com/deppfellow/printgallery/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints outside the GraphQL surface.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)
	r.GET("/schema.graphql", h.Playground.ServeSchema())
}
