// Package graph declares the GraphQL schema and its resolvers.
//
// The SDL in schema.graphql is embedded and bound to Resolver with
// graph-gophers/graphql-go; resolver methods are matched to fields by name
// (underscores ignored), so topic_id resolves through TopicID.
package graph

import (
	"context"
	_ "embed"
	"fmt"
	"runtime/debug"

	"github.com/deppfellow/printgallery/internal/config"
	"github.com/deppfellow/printgallery/internal/logger"
	"github.com/deppfellow/printgallery/internal/service"
	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog"
)

//go:embed schema.graphql
var SDL string

// NewSchema parses the SDL and binds it to the services.
func NewSchema(services *service.Services, cfg config.GraphQLConfig, log *zerolog.Logger) (*graphql.Schema, error) {
	schema, err := graphql.ParseSchema(SDL, NewResolver(services),
		graphql.MaxDepth(cfg.MaxDepth),
		graphql.MaxParallelism(cfg.MaxParallelism),
		graphql.Logger(&panicLogger{log: log}),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing graphql schema: %w", err)
	}
	return schema, nil
}

// panicLogger reports resolver panics. graphql-go recovers them and turns
// them into an error on the affected field.
type panicLogger struct {
	log *zerolog.Logger
}

func (p *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	logger.FromContext(ctx, p.log).Error().
		Interface("panic", value).
		Str("stack", string(debug.Stack())).
		Msg("graphql resolver panicked")
}
