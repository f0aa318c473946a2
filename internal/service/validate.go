package service

import (
	"fmt"

	"go-commerce-gql/internal/apperr"
	"go-commerce-gql/pkg/validator"
)

// validateStruct runs tag validation and turns the first failure into a
// user-facing validation error carrying every offending field name.
func validateStruct(data interface{}) error {
	errs := validator.ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	return apperr.NewValidation(fieldMessage(errs[0]), validator.Fields(errs)...)
}

func fieldMessage(fe *validator.FieldError) string {
	switch fe.Tag {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field, fe.Param)
	case "email":
		return "please enter a valid email"
	case "gte":
		return fmt.Sprintf("%s must be %s or greater", fe.Field, fe.Param)
	default:
		return fmt.Sprintf("%s is invalid", fe.Field)
	}
}
