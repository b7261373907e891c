package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/black-swan-sentinel/models"
)

// ValidationError reports every field of a request that broke a rule.
// It matches [ErrInvalidRequest] with errors.Is.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrInvalidRequest.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRequest
}

// RequestValidator validates request models by their `validate` tags.
// Field names in errors are taken from the json tags so they match what the
// caller sent.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a RequestValidator. The underlying validator
// caches struct metadata and is safe for concurrent use.
func NewRequestValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	return &RequestValidator{validate: v}
}

// Validate implements [Validator]. When fields are given only those struct
// fields (Go names) are checked.
func (r *RequestValidator) Validate(ctx context.Context, value any, fields ...string) error {
	if value == nil {
		return fmt.Errorf("%w: nil", ErrUnsupportedType)
	}

	var err error
	if len(fields) > 0 {
		err = r.validate.StructPartialCtx(ctx, value, fields...)
	} else {
		err = r.validate.StructCtx(ctx, value)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, value)
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	out := &ValidationError{Fields: make([]models.FieldError, 0, len(validationErrors))}
	for _, fe := range validationErrors {
		out.Fields = append(out.Fields, models.FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}

	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		return fmt.Sprintf("ensure this value has at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("ensure this value has at most %s characters", fe.Param())
	case "oneof":
		return "value must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}

	return fmt.Sprintf("failed on the %q rule", fe.Tag())
}
