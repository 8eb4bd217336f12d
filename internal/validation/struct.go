package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	apperrors "bankcards/internal/errors"

	"github.com/go-playground/validator/v10"
)

var validate = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct checks `validate` struct tags and returns a validation DomainError.
func Struct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.ErrValidation.WithMessage("invalid request: %v", err)
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, exists := fields[fe.Field()]; !exists {
			fields[fe.Field()] = message(fe)
		}
	}
	return apperrors.Validation(fields)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s characters long", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must not be more than %s characters long", fe.Param())
	case "numeric":
		return "must contain only digits"
	case "uuid":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "nefield":
		return "must differ from " + fe.Param()
	default:
		return "is invalid"
	}
}

// Struct merges struct tag failures of s into v.
func (v *Validator) Struct(s interface{}) {
	err := Struct(s)
	if err == nil {
		return
	}
	if de, ok := apperrors.As(err); ok && len(de.Fields) > 0 {
		for field, msg := range de.Fields {
			v.AddError(field, msg)
		}
		return
	}
	v.AddError("body", err.Error())
}
