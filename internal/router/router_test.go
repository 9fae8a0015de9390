package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/printgallery/internal/config"
	"github.com/deppfellow/printgallery/internal/errs"
	"github.com/deppfellow/printgallery/internal/handler"
	"github.com/deppfellow/printgallery/internal/middleware"
	"github.com/deppfellow/printgallery/internal/repository"
	"github.com/deppfellow/printgallery/internal/server"
	"github.com/deppfellow/printgallery/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *echo.Echo {
	t.Helper()

	log := zerolog.Nop()
	s := &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				CORSAllowedOrigins: []string{"*"},
				GraphQL:            config.GraphQLConfig{MaxDepth: 12, MaxParallelism: 10, Playground: true},
			},
			Database:      config.DatabaseConfig{Driver: config.DriverMemory},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &log,
	}

	services, err := service.NewService(s, repository.NewRepositories(s))
	require.NoError(t, err)

	h, err := handler.NewHandlers(s, services)
	require.NoError(t, err)

	return NewRouter(s, h)
}

type gqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func postGraphQL(t *testing.T, r *echo.Echo, path, body string) (*httptest.ResponseRecorder, gqlResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var resp gqlResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestGraphQL_PostRoundTrip(t *testing.T) {
	r := newTestRouter(t)

	rec, resp := postGraphQL(t, r, "/graphql", `{
		"query": "mutation Add($slug: String!) { addCategory(slug: $slug, description: \"Nature\") { slug } }",
		"operationName": "Add",
		"variables": {"slug": "nature"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, resp.Errors)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	_, resp = postGraphQL(t, r, "/", `{"query": "{ categories { slug } }"}`)
	assert.JSONEq(t, `[{"slug":"nature"}]`, string(resp.Data["categories"]))
}

func TestGraphQL_ErrorsStayInEnvelope(t *testing.T) {
	r := newTestRouter(t)

	postGraphQL(t, r, "/graphql", `{"query": "mutation { addCategory(slug: \"x\", description: \"a\") { slug } }"}`)
	rec, resp := postGraphQL(t, r, "/graphql", `{"query": "mutation { addCategory(slug: \"x\", description: \"b\") { slug } }"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "CONSTRAINT_VIOLATION", resp.Errors[0].Extensions["code"])
	assert.Equal(t, "CATEGORY_ALREADY_EXISTS", resp.Errors[0].Extensions["detail_code"])
}

func TestGraphQL_GetWithVariables(t *testing.T) {
	r := newTestRouter(t)
	postGraphQL(t, r, "/graphql", `{"query": "mutation { addUser(username: \"alice\", fullname: \"Alice\", email_address: \"a@x\", location: \"L\") { user_id } }"}`)

	q := url.Values{}
	q.Set("query", "query One($u: String!) { user(username: $u) { fullname } }")
	q.Set("variables", `{"u":"alice"}`)

	req := httptest.NewRequest(http.MethodGet, "/graphql?"+q.Encode(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"user":{"fullname":"Alice"}}}`, rec.Body.String())
}

func TestGraphQL_GetRejectsMutation(t *testing.T) {
	r := newTestRouter(t)
	postGraphQL(t, r, "/graphql", `{"query": "mutation { addCategory(slug: \"keep\", description: \"Keep\") { slug } }"}`)

	q := url.Values{}
	q.Set("query", `mutation { deleteCategory(slug: "keep") { slug } }`)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?"+q.Encode(), nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get(echo.HeaderAllow))

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "METHOD_NOT_ALLOWED", body.Code)
	assert.Equal(t, "Can only perform a mutation operation from a POST request", body.Message)

	_, resp := postGraphQL(t, r, "/", `{"query": "{ categories { slug } }"}`)
	assert.JSONEq(t, `[{"slug":"keep"}]`, string(resp.Data["categories"]))
}

func TestGraphQL_GetBadVariables(t *testing.T) {
	r := newTestRouter(t)

	q := url.Values{}
	q.Set("query", "{ users { username } }")
	q.Set("variables", "not json")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?"+q.Encode(), nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []errs.FieldError{{Field: "variables", Error: "must be a JSON object"}}, body.Errors)
}

func TestGraphQL_RequestErrors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"missing query", `{"variables": {}}`, http.StatusBadRequest},
		{"malformed json", `{"query": `, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := postGraphQL(t, r, "/graphql", tt.body)
			assert.Equal(t, tt.status, rec.Code)

			var body errs.HTTPError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "BAD_REQUEST", body.Code)
		})
	}
}

func TestPlaygroundAndSchema(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Print Gallery")
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/schema.graphql", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "type Categories")
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "schema.graphql")
}

func TestStatus(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.Equal(t, map[string]interface{}{"status": "healthy", "driver": "memory"},
		body["checks"].(map[string]interface{})["database"])
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Route not found", body.Message)
}
