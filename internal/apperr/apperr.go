package apperr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Every error that reaches a GraphQL caller has exactly one of these two
// codes. Anything that is not a user-correctable error collapses to the
// internal code with a generic message; detail stays in the logs.
const (
	CodeBadUserInput = "BAD_USER_INPUT"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
)

// ValidationError is a user-correctable input error: duplicate email or
// SKU, a missing referenced account, a malformed field.
type ValidationError struct {
	Message     string
	InvalidArgs []string
}

func NewValidation(message string, invalidArgs ...string) *ValidationError {
	return &ValidationError{Message: message, InvalidArgs: invalidArgs}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Extensions() map[string]interface{} {
	args := e.InvalidArgs
	if args == nil {
		args = []string{}
	}
	return map[string]interface{}{
		"code":        CodeBadUserInput,
		"invalidArgs": args,
	}
}

// NotFoundError reports a direct lookup miss by id.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFound(entity, id string) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func (e *NotFoundError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": CodeBadUserInput,
	}
}

type internalError struct{}

func (internalError) Error() string {
	return "an internal error has occurred"
}

func (internalError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": CodeInternal,
	}
}

// Internal is the generic error returned to callers in place of any
// unexpected failure.
func Internal() error {
	return internalError{}
}

// IsUserError reports whether err already carries a user-facing shape and
// may cross the resolver boundary as-is.
func IsUserError(err error) bool {
	var ve *ValidationError
	var nf *NotFoundError
	return errors.As(err, &ve) || errors.As(err, &nf)
}
