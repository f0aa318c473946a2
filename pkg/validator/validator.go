package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field string
	Tag   string
	Param string
}

var validate = validator.New()

func init() {
	// Report fields under their json name so errors match the GraphQL
	// argument names callers actually sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func ValidateStruct(data interface{}) []*FieldError {
	var errs []*FieldError
	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			errs = append(errs, &FieldError{
				Field: err.Field(),
				Tag:   err.Tag(),
				Param: err.Param(),
			})
		}
	}
	return errs
}

// Fields lists the offending field names of a validation result.
func Fields(errs []*FieldError) []string {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	return fields
}
