// Package validation wraps go-playground/validator with the tags and error
// formatting shared by request, profile and config structs.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"synastry-service/ephemeris"
	"synastry-service/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("housesystem", func(fl validator.FieldLevel) bool {
		_, err := models.ParseHouseSystem(fl.Field().String())
		return err == nil
	})
	return v
}

// Struct validates s against its `validate` tags. Failures wrap
// ephemeris.ErrInvalidInput so callers can map them with errors.Is.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return fmt.Errorf("%w: %s", ephemeris.ErrInvalidInput, strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "datetime":
		return fmt.Sprintf("%s must match layout %s", field, e.Param())
	case "required_without":
		return fmt.Sprintf("%s is required when %s is not set", field, e.Param())
	case "timezone":
		return fmt.Sprintf("%s must be an IANA time zone", field)
	case "housesystem":
		return fmt.Sprintf("%s must be placidus or equal", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
