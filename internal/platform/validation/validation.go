// Package validation configures gin's request validator and renders field errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// FieldError describes one rejected request field.
type FieldError struct {
	FieldName string `json:"fieldName"`
	Message   string `json:"message"`
}

// now is replaced in tests.
var now = time.Now

// Register installs the json tag name function, the Date type mapping and the
// "notblank" and "past" validations on v.
func Register(v *validator.Validate) error {
	v.RegisterTagNameFunc(jsonName)
	v.RegisterCustomTypeFunc(dateValue, openapi_types.Date{})

	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return fmt.Errorf("register notblank: %w", err)
	}
	if err := v.RegisterValidation("past", past); err != nil {
		return fmt.Errorf("register past: %w", err)
	}
	return nil
}

// RegisterGin applies Register to the validator behind gin's binding.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator is not go-playground/validator")
	}
	return Register(v)
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func dateValue(v reflect.Value) any {
	if d, ok := v.Interface().(openapi_types.Date); ok {
		return d.Time
	}
	return nil
}

// past accepts calendar dates strictly before today (UTC).
func past(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	y, m, d := now().UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return t.Before(today)
}

// Fields converts validator errors into per-field messages keyed by json name.
func Fields(errs validator.ValidationErrors) []FieldError {
	out := make([]FieldError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, FieldError{FieldName: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "notblank":
		return "must not be blank"
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must have at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "past":
		return "must be a date in the past"
	}
	return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
}
