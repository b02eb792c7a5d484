// Package validation binds `validate` struct tags to the domain error taxonomy.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})
	return v
}

// Struct checks v and reports the most relevant failure: a missing field wins
// over a mismatched confirmation, which wins over a length violation.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return commonerrors.ErrInvalidPayload.WithCause(err)
	}

	for _, tag := range []string{"required", "eqfield", "min", "max"} {
		for _, fe := range fieldErrs {
			if fe.Tag() == tag {
				return toDomainError(fe)
			}
		}
	}

	return commonerrors.ErrInvalidPayload.WithMessage(fmt.Sprintf("%s is invalid", fieldName(fieldErrs[0])))
}

func toDomainError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return commonerrors.ErrFieldMissing
	case "eqfield":
		return commonerrors.ErrPasswordMismatch
	case "min":
		return commonerrors.ErrFieldLength.WithMessage(
			fmt.Sprintf("%s must be at least %s characters", fieldName(fe), fe.Param()),
		)
	case "max":
		return commonerrors.ErrFieldLength.WithMessage(
			fmt.Sprintf("%s must be at most %s characters", fieldName(fe), fe.Param()),
		)
	}
	return commonerrors.ErrInvalidPayload
}

func fieldName(fe validator.FieldError) string {
	return strings.ReplaceAll(fe.Field(), "_", " ")
}
