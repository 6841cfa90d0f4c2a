package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pkazala/work20/internal/domain"
)

// validate is shared by all services; validator caches struct metadata and is
// safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names, which are also the form field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateStruct runs the struct's validate tags and converts the first
// failure into a domain.ErrValidation with a readable message.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fe := fieldErrs[0]
	field := fe.Field()
	// Dive errors look like "industries[2]"; keep the whole name so the
	// caller knows which entry failed.
	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
	case "url":
		return fmt.Errorf("%w: %s must be an absolute URL", domain.ErrValidation, field)
	case "min":
		return fmt.Errorf("%w: %s needs at least %s entry", domain.ErrValidation, field, fe.Param())
	default:
		return fmt.Errorf("%w: %s is invalid (%s)", domain.ErrValidation, field, fe.Tag())
	}
}
