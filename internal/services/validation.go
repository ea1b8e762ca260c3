package services

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"billing/internal/apperrors"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// newValidator builds the validator shared by the services, with the custom
// `phone` tag for 10-digit numbers.
func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// checkStruct validates s and converts validator violations into an
// apperrors.ValidationError that lists every failed field, not just the
// first one.
func checkStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return err
	}

	fields := make(map[string]string, len(violations))
	for _, violation := range violations {
		fields[violation.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", violation.Field(), violation.Tag())
	}
	return &apperrors.ValidationError{Fields: fields}
}
