package handler

import (
	"encoding/json"
	"net/http"

	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/deppfellow/printgallery/internal/middleware"
	"github.com/deppfellow/printgallery/internal/server"
	"github.com/deppfellow/printgallery/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// GraphQLRequest is the standard GraphQL-over-HTTP payload.
//
// POST sends it as a JSON body. GET sends it as query parameters, with
// variables as a JSON-encoded string.
type GraphQLRequest struct {
	Query         string                 `json:"query" query:"query" validate:"required"`
	OperationName string                 `json:"operationName" query:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
	RawVariables  string                 `json:"-" query:"variables"`
}

func newGraphQLRequest() *GraphQLRequest {
	return &GraphQLRequest{}
}

var requestValidator = validator.New()

// Validate checks the tags and decodes RawVariables into Variables.
func (r *GraphQLRequest) Validate() error {
	if err := requestValidator.Struct(r); err != nil {
		return err
	}

	if r.RawVariables != "" && r.Variables == nil {
		if err := json.Unmarshal([]byte(r.RawVariables), &r.Variables); err != nil {
			return validation.CustomValidationErrors{{
				Field:   "variables",
				Message: "must be a JSON object",
			}}
		}
	}

	return nil
}

// GraphQLHandler executes documents against the schema.
type GraphQLHandler struct {
	Handler
	schema *graphql.Schema
}

func NewGraphQLHandler(s *server.Server, schema *graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{
		Handler: NewHandler(s),
		schema:  schema,
	}
}

// isMutation reports whether the operation selected by operationName is a
// mutation. Documents that fail to parse report false and are left to the
// executor, which owns syntax errors.
func isMutation(query, operationName string) bool {
	doc, err := parser.ParseQuery(&ast.Source{Input: query})
	if err != nil {
		return false
	}

	op := doc.Operations.ForName(operationName)
	return op != nil && op.Operation == ast.Mutation
}

// Execute runs one document. Resolver failures are reported in the
// response's errors array; the HTTP status stays 200. Mutations are
// refused over GET with a 405.
func (h *GraphQLHandler) Execute(c echo.Context, req *GraphQLRequest) (*graphql.Response, error) {
	ctx := c.Request().Context()

	if c.Request().Method == http.MethodGet && isMutation(req.Query, req.OperationName) {
		c.Response().Header().Set(echo.HeaderAllow, http.MethodPost)
		return nil, errs.NewMethodNotAllowedError("Can only perform a mutation operation from a POST request")
	}

	resp := h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)

	codes := make([]string, 0, len(resp.Errors))
	for _, qErr := range resp.Errors {
		if code, ok := qErr.Extensions["code"].(string); ok {
			codes = append(codes, code)
		}
	}

	if len(resp.Errors) > 0 {
		middleware.GetLogger(c).Warn().
			Str("operation_name", req.OperationName).
			Int("error_count", len(resp.Errors)).
			Strs("error_codes", codes).
			Msg("graphql document returned errors")
	}

	h.recordEvent("GraphQLOperation", map[string]interface{}{
		"operation_name": req.OperationName,
		"http_method":    c.Request().Method,
		"error_count":    len(resp.Errors),
	})

	return resp, nil
}

// Serve returns the echo handler for POST, and for GET with a query.
func (h *GraphQLHandler) Serve() echo.HandlerFunc {
	return Handle(h.Handler, h.Execute, http.StatusOK, newGraphQLRequest)
}
