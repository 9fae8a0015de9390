package handler

import (
	"fmt"

	"github.com/deppfellow/printgallery/internal/graph"
	"github.com/deppfellow/printgallery/internal/server"
	"github.com/deppfellow/printgallery/internal/service"
)

// GraphQLPath is the canonical endpoint; "/" is served as an alias.
const GraphQLPath = "/graphql"

// Handlers groups all HTTP handlers so router setup receives one value.
type Handlers struct {
	Health     *HealthHandler
	GraphQL    *GraphQLHandler
	Playground *PlaygroundHandler
}

// NewHandlers builds the executable schema over services and the
// handlers around it.
func NewHandlers(s *server.Server, services *service.Services) (*Handlers, error) {
	schema, err := graph.NewSchema(services, s.Config.Server.GraphQL, s.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	return &Handlers{
		Health:     NewHealthHandler(s),
		GraphQL:    NewGraphQLHandler(s, schema),
		Playground: NewPlaygroundHandler(s, GraphQLPath),
	}, nil
}
