package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"expensegst/config"
	deliverycontext "expensegst/internal/delivery/context"
	"expensegst/internal/delivery/http/response"
	domainerrors "expensegst/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware is the error normalization layer: the single place that maps
// typed failures to the response envelope and an HTTP status.
type ErrorMiddleware struct {
	logger      *slog.Logger
	development bool
}

// NewErrorMiddleware creates a new error handling middleware.
// Development mode is injected once here; it controls whether stack traces
// leave the process.
func NewErrorMiddleware(logger *slog.Logger, cfg *config.Config) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:      logger,
		development: cfg.IsDevelopment(),
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Validation failures carry per-field detail.
	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		_ = response.BadRequest(c, validationErr.Message(), validationErr.Fields())

		return
	}

	// Typed business failures: the kind decides the status, the message is
	// part of the contract.
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		_ = response.Error(c, appErr.HTTPCode(), appErr.Message(), nil, "")

		return
	}

	// Echo's own errors (404 route not found, 405, body too large, ...).
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = response.Error(c, httpErr.Code, fmt.Sprintf("%v", httpErr.Message), nil, "")

		return
	}

	// Everything else is an unclassified internal failure. Log the full cause
	// chain; the client sees a generic message, plus the stack in development.
	m.logger.Error("Unhandled error",
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
		slog.String("error", fmt.Sprintf("%+v", err)),
	)

	stack := ""
	if m.development {
		stack = fmt.Sprintf("%+v", err)
	}

	_ = response.Error(c, http.StatusInternalServerError, "Internal server error", nil, stack)
}
