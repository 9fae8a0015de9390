package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deppfellow/printgallery/internal/config"
	"github.com/deppfellow/printgallery/internal/server"
	"github.com/deppfellow/printgallery/internal/validation"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Database:      config.DatabaseConfig{Driver: config.DriverMemory},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &log,
	}
}

func TestGraphQLRequest_Validate(t *testing.T) {
	t.Run("requires query", func(t *testing.T) {
		err := (&GraphQLRequest{}).Validate()
		var vErrs validator.ValidationErrors
		require.ErrorAs(t, err, &vErrs)
		assert.Equal(t, "Query", vErrs[0].Field())
	})

	t.Run("decodes raw variables", func(t *testing.T) {
		req := &GraphQLRequest{Query: "{ users { username } }", RawVariables: `{"id": 3}`}
		require.NoError(t, req.Validate())
		assert.Equal(t, map[string]interface{}{"id": float64(3)}, req.Variables)
	})

	t.Run("body variables win", func(t *testing.T) {
		req := &GraphQLRequest{
			Query:        "{ users { username } }",
			Variables:    map[string]interface{}{"a": "b"},
			RawVariables: "ignored",
		}
		require.NoError(t, req.Validate())
		assert.Equal(t, "b", req.Variables["a"])
	})

	t.Run("rejects non object variables", func(t *testing.T) {
		err := (&GraphQLRequest{Query: "{ users { username } }", RawVariables: "[1,2]"}).Validate()
		var custom validation.CustomValidationErrors
		require.ErrorAs(t, err, &custom)
		assert.Equal(t, "variables", custom[0].Field)
	})
}

func TestIsMutation(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		operationName string
		want          bool
	}{
		{"shorthand query", "{ users { username } }", "", false},
		{"named query", "query Q { users { username } }", "", false},
		{"anonymous mutation", `mutation { deleteUser(username: "a") { username } }`, "", true},
		{"selected mutation", "query Q { users { username } } mutation M { deleteImage(image_id: \"1\") { image_id } }", "M", true},
		{"selected query", "query Q { users { username } } mutation M { deleteImage(image_id: \"1\") { image_id } }", "Q", false},
		{"ambiguous without name", "query Q { users { username } } mutation M { deleteImage(image_id: \"1\") { image_id } }", "", false},
		{"unparsable", "mutation {", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isMutation(tt.query, tt.operationName))
		})
	}
}

func checkHealth(t *testing.T, s *server.Server) (int, map[string]interface{}) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	require.NoError(t, NewHealthHandler(s).CheckHealth(c))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestCheckHealth_ChecksDisabled(t *testing.T) {
	s := newTestServer()
	s.Config.Observability.HealthChecks.Enabled = false

	status, body := checkHealth(t, s)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["checks"])
}

func TestCheckHealth_RedisDown(t *testing.T) {
	s := newTestServer()
	s.Config.Observability.HealthChecks.Timeout = time.Second
	s.Redis = redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = s.Redis.Close() })

	status, body := checkHealth(t, s)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "unhealthy", body["status"])

	checks := body["checks"].(map[string]interface{})
	assert.Equal(t, "unhealthy", checks["redis"].(map[string]interface{})["status"])
	assert.Equal(t, "healthy", checks["database"].(map[string]interface{})["status"])
}
