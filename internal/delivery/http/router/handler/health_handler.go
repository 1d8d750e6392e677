package handler

import (
	"net/http"
	"time"

	"expensegst/config"
	"expensegst/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthHandler serves liveness and API index endpoints.
type HealthHandler struct {
	env string
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{env: cfg.Env.Env}
}

// Health reports that the service is up.
func (h *HealthHandler) Health(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.env,
	}, "Expense GST Backend API is running")
}

// Index lists the API surface.
func (h *HealthHandler) Index(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"endpoints": map[string]string{
			"auth": "/api/auth",
		},
	}, "Expense GST API v1.0")
}
