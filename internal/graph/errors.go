package graph

import (
	"context"

	"go-commerce-gql/internal/apperr"

	"go.uber.org/zap"
)

// boundary is the last stop before an error reaches a caller. Errors
// that already carry a user-facing shape pass through untouched; anything
// else is logged in full and replaced with the generic internal error.
func (r *Resolver) boundary(operation string, err error) error {
	if apperr.IsUserError(err) {
		return err
	}
	r.log.Error("unexpected resolver error",
		zap.String("operation", operation),
		zap.Error(err))
	return apperr.Internal()
}

// PanicLogger routes resolver panics into the structured log instead of
// the graphql library's default stdlib logger.
type PanicLogger struct {
	Log *zap.Logger
}

func (l PanicLogger) LogPanic(_ context.Context, value interface{}) {
	l.Log.Error("graphql resolver panic", zap.Any("panic", value))
}
