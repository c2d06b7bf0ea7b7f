package middleware

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's validator to report field names from
// json/form tags instead of Go struct field names.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// ValidationMessage turns a binding error into a readable message. Only the
// first field error is reported; clients fix one thing at a time anyway.
func ValidationMessage(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return err.Error()
	}
	e := validationErrors[0]
	switch e.Tag() {
	case "required":
		return "Field '" + e.Field() + "' is required"
	case "email":
		return "Field '" + e.Field() + "' must be a valid email address"
	case "oneof":
		return "Field '" + e.Field() + "' must be one of: " + e.Param()
	case "min":
		return "Field '" + e.Field() + "' must be at least " + e.Param()
	case "max":
		return "Field '" + e.Field() + "' must be at most " + e.Param()
	case "uuid":
		return "Field '" + e.Field() + "' must be a valid UUID"
	default:
		return "Field '" + e.Field() + "' is invalid"
	}
}
