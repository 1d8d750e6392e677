// Package errors defines the application's typed error taxonomy.
// Every business failure the credential service can produce is one of these
// values; the HTTP layer maps the kind to a status code, never the message.
package errors

import (
	"net/http"

	"expensegst/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types. The message strings are part of the API contract:
// clients and tests may assert on the exact text.
var (
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"USER_ALREADY_EXISTS",
		"User with this email already exists",
		"",
	)

	// ErrInvalidCredentials carries the same message for an unknown email and
	// a wrong password so the response never reveals which one failed.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	// ErrExternalAccount rejects password login for accounts provisioned
	// through an external identity provider. The distinct message reflects the
	// provisioning type, not password correctness.
	ErrExternalAccount = NewBaseError(
		http.StatusUnauthorized,
		"EXTERNAL_ACCOUNT",
		"Please sign in with Google",
		"",
	)

	ErrUserNotFound = NewBaseError(
		http.StatusNotFound,
		"USER_NOT_FOUND",
		"User not found",
		"",
	)

	// ErrInvalidToken is returned uniformly for a bad signature, malformed
	// structure, and expiry so the error alone cannot distinguish them.
	ErrInvalidToken = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_TOKEN",
		"Invalid or expired token",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Validation failed",
		"",
	)

	ErrInternal = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// FieldError describes a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is an AppError carrying per-field failures from request
// body validation. It always maps to 400.
type ValidationError struct {
	fields []FieldError
}

// NewValidationError creates a validation error with field-level detail.
func NewValidationError(fields []FieldError) *ValidationError {
	return &ValidationError{fields: fields}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message()
}

// HTTPCode returns the HTTP status code
func (e *ValidationError) HTTPCode() int {
	return http.StatusBadRequest
}

// ErrorCode returns the business error code
func (e *ValidationError) ErrorCode() string {
	return "VALIDATION_FAILED"
}

// Message returns the user-friendly error message
func (e *ValidationError) Message() string {
	return "Validation failed"
}

// Details returns detailed error information
func (e *ValidationError) Details() string {
	return ""
}

// Fields returns the per-field failures.
func (e *ValidationError) Fields() []FieldError {
	return e.fields
}

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "Database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
