// Package validator adapts go-playground/validator as echo's request validator.
package validator

import (
	"strings"

	domainerrors "expensegst/internal/domain/errors"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type echoValidator struct {
	validate *playground.Validate
}

// New creates the echo.Validator used by the HTTP server.
func New() echo.Validator {
	return &echoValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate checks the bound request struct and converts tag failures into the
// domain's ValidationError so the error handler can render per-field detail.
func (v *echoValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var invalid *playground.InvalidValidationError
	if errors.As(err, &invalid) {
		return errors.Wrap(err, "validation target is not a struct")
	}

	var tagErrs playground.ValidationErrors
	if !errors.As(err, &tagErrs) {
		return errors.Wrap(err, "unexpected validation failure")
	}

	fields := make([]domainerrors.FieldError, 0, len(tagErrs))
	for _, fe := range tagErrs {
		fields = append(fields, domainerrors.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}

	return domainerrors.NewValidationError(fields)
}

func fieldMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "failed on the '" + fe.Tag() + "' rule"
	}
}
