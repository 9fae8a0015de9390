package router

import (
	"github.com/deppfellow/printgallery/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerGraphQLRoutes serves the endpoint at "/graphql" and at "/".
//
// GET with a query parameter executes the document; GET without one
// opens the playground.
func registerGraphQLRoutes(r *echo.Echo, h *handler.Handlers) {
	execute := h.GraphQL.Serve()

	get := func(c echo.Context) error {
		if c.QueryParam("query") == "" {
			return h.Playground.ServePlayground(c)
		}
		return execute(c)
	}

	for _, path := range []string{"/", handler.GraphQLPath} {
		r.POST(path, execute)
		r.GET(path, get)
	}
}
