package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/deppfellow/printgallery/internal/middleware"
	"github.com/deppfellow/printgallery/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth reports liveness plus one entry per configured dependency.
//
// It returns 200 when every check passes and 503 otherwise. With health
// checks disabled only liveness is reported. The memory driver has no
// database to ping and reports itself as such.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	cfg := h.server.Config
	checks := make(map[string]interface{})
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": cfg.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	healthCfg := cfg.Observability.HealthChecks

	if healthCfg.Enabled {
		ctx := c.Request().Context()

		if healthCfg.Has("database") {
			if h.server.DB != nil {
				isHealthy = h.runCheck(ctx, &logger, checks, "database", healthCfg.Timeout, h.server.DB.Ping) && isHealthy
			} else {
				checks["database"] = map[string]interface{}{
					"status": "healthy",
					"driver": cfg.Database.Driver,
				}
			}
		}

		if healthCfg.Has("redis") && h.server.Redis != nil {
			isHealthy = h.runCheck(ctx, &logger, checks, "redis", healthCfg.Timeout, func(ctx context.Context) error {
				return h.server.Redis.Ping(ctx).Err()
			}) && isHealthy
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordEvent("HealthCheckError", map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	return c.JSON(http.StatusOK, response)
}

// runCheck pings one dependency under timeout and records the outcome in
// checks. It reports whether the dependency is healthy.
func (h *HealthHandler) runCheck(
	ctx context.Context,
	logger *zerolog.Logger,
	checks map[string]interface{},
	name string,
	timeout time.Duration,
	ping func(context.Context) error,
) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	checkStart := time.Now()
	err := ping(ctx)
	elapsed := time.Since(checkStart)

	if err != nil {
		checks[name] = map[string]interface{}{
			"status":        "unhealthy",
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}

		logger.Error().
			Err(err).
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("dependency health check failed")

		h.recordEvent("HealthCheckError", map[string]interface{}{
			"check_type":       name,
			"operation":        "health_check",
			"error_type":       name + "_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})
		return false
	}

	checks[name] = map[string]interface{}{
		"status":        "healthy",
		"response_time": elapsed.String(),
	}
	return true
}
