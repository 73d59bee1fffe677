package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/reglet-dev/metamodelgen/internal/application/errors"
)

// RequestValidator checks request DTOs against their `validate` struct tags.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator creates a new request validator.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

// ValidateRequest validates req and reports every failed field as one ValidationError.
func (v *RequestValidator) ValidateRequest(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewValidationError("request", "invalid request", err.Error())
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		details = append(details, describeFieldError(fieldErr))
	}

	return apperrors.NewValidationError(requestName(req), "invalid request", details...)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Namespace())
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value())
	}
}

func requestName(req any) string {
	t := reflect.TypeOf(req)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return "request"
	}
	return t.Name()
}
