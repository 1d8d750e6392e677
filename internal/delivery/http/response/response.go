// Package response defines the uniform envelope every API operation returns.
package response

import (
	"net/http"

	domainerrors "expensegst/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform API response wrapper.
// Status is "success" or "error". Errors carries per-field validation
// failures; Stack is only populated in development mode.
type Envelope struct {
	Status  string                    `json:"status"`
	Message string                    `json:"message,omitempty"`
	Data    any                       `json:"data,omitempty"`
	Errors  []domainerrors.FieldError `json:"errors,omitempty"`
	Stack   string                    `json:"stack,omitempty"`
}

// Success writes a success envelope with the given status code.
func Success(c echo.Context, statusCode int, data any, message string) error {
	return c.JSON(statusCode, Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// Created writes a 201 success envelope.
func Created(c echo.Context, data any, message string) error {
	if message == "" {
		message = "Resource created successfully"
	}

	return Success(c, http.StatusCreated, data, message)
}

// Error writes an error envelope with the given status code.
func Error(c echo.Context, statusCode int, message string, fieldErrors []domainerrors.FieldError, stack string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Envelope{
		Status:  "error",
		Message: message,
		Errors:  fieldErrors,
		Stack:   stack,
	})
}

// BadRequest writes a 400 error envelope, optionally with field-level detail.
func BadRequest(c echo.Context, message string, fieldErrors []domainerrors.FieldError) error {
	return Error(c, http.StatusBadRequest, message, fieldErrors, "")
}

// Unauthorized writes a 401 error envelope.
func Unauthorized(c echo.Context, message string) error {
	return Error(c, http.StatusUnauthorized, message, nil, "")
}

// NotFound writes a 404 error envelope.
func NotFound(c echo.Context, message string) error {
	return Error(c, http.StatusNotFound, message, nil, "")
}

// Conflict writes a 409 error envelope.
func Conflict(c echo.Context, message string) error {
	return Error(c, http.StatusConflict, message, nil, "")
}

// InternalError writes a 500 error envelope. The stack is surfaced only when
// the caller decides the environment permits it.
func InternalError(c echo.Context, message string, stack string) error {
	if message == "" {
		message = "Internal server error"
	}

	return Error(c, http.StatusInternalServerError, message, nil, stack)
}
