package handler

import (
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/deppfellow/printgallery/internal/graph"
	"github.com/deppfellow/printgallery/internal/server"
	"github.com/labstack/echo/v4"
)

// PlaygroundHandler serves the interactive GraphQL explorer and the SDL.
type PlaygroundHandler struct {
	Handler
	playground http.HandlerFunc
}

// NewPlaygroundHandler points the explorer at endpoint.
func NewPlaygroundHandler(s *server.Server, endpoint string) *PlaygroundHandler {
	return &PlaygroundHandler{
		Handler:    NewHandler(s),
		playground: playground.Handler("Print Gallery", endpoint),
	}
}

// ServePlayground renders the explorer. Cache-Control is "no-cache" so
// schema changes show up without a hard reload.
func (h *PlaygroundHandler) ServePlayground(c echo.Context) error {
	if !h.server.Config.Server.GraphQL.Playground {
		return echo.ErrNotFound
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	h.playground.ServeHTTP(c.Response(), c.Request())
	return nil
}

// SchemaRequest carries no input; the SDL download takes no parameters.
type SchemaRequest struct{}

func (r *SchemaRequest) Validate() error { return nil }

func (h *PlaygroundHandler) schemaFile(c echo.Context, _ *SchemaRequest) ([]byte, error) {
	return []byte(graph.SDL), nil
}

// ServeSchema downloads the embedded SDL.
func (h *PlaygroundHandler) ServeSchema() echo.HandlerFunc {
	return HandleFile(h.Handler, h.schemaFile, http.StatusOK,
		func() *SchemaRequest { return &SchemaRequest{} },
		"schema.graphql", "application/graphql; charset=utf-8")
}
