// Package validate wraps go-playground/validator and converts its failures
// into domain.ValidationError values naming the offending form field.
package validate

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// Report the form label instead of the Go field name.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(fld.Name)
			}
			return name
		})
		instance = v
	})
	return instance
}

// Struct validates s against its `validate` tags. The first failing field
// is returned as a *domain.ValidationError.
func Struct(s any) error {
	err := get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fromFieldError(verrs[0])
	}
	return &domain.ValidationError{Reason: err.Error()}
}

func fromFieldError(fe validator.FieldError) error {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(field, "is required")
	case "email":
		return domain.NewValidationError(field, "must be a valid email address")
	case "min":
		return domain.NewValidationError(field, "must be at least "+fe.Param()+" characters")
	case "datetime":
		return domain.NewValidationError(field, "must use YYYY-MM-DD format")
	case "gte":
		return domain.NewValidationError(field, "must be at least "+fe.Param())
	default:
		return domain.NewValidationError(field, "is invalid")
	}
}
