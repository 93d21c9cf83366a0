package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthTimeout = 2 * time.Second

// Check pings one backing service for the health endpoint.
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

type Handler struct {
	version string
	checks  []Check
}

func NewHandler(version string, checks ...Check) *Handler {
	return &Handler{version: version, checks: checks}
}

// Health answers 200 when every dependency responds and 503 otherwise.
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
	defer cancel()

	status, code := "ok", http.StatusOK
	deps := make(map[string]string, len(h.checks))
	for _, chk := range h.checks {
		if err := chk.Ping(ctx); err != nil {
			deps[chk.Name] = "down"
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		deps[chk.Name] = "up"
	}

	body := map[string]any{
		"status":  status,
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
		"version": h.version,
	}
	if len(deps) > 0 {
		body["checks"] = deps
	}
	return c.JSON(code, body)
}
