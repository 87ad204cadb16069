package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate checks request structs against the same binding tags gin uses on
// the HTTP path, so callers outside HTTP get identical rules.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

// validateStruct runs the binding rules on req and reports the first failing
// field as a *ValidationError named after its JSON key.
func validateStruct(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalid("body", "%v", err)
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return invalid(fe.Field(), "%s is required", fe.Field())
	case "email":
		return invalid(fe.Field(), "a valid email address is required")
	case "min":
		return invalid(fe.Field(), "%s must be at least %s characters", fe.Field(), fe.Param())
	}
	return invalid(fe.Field(), "%s failed the %s check", fe.Field(), fe.Tag())
}
