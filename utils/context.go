package utils

import (
	"context"

	"github.com/google/uuid"
)

type rqIDKey struct{}

// WithRequestID tags ctx with a fresh request id unless it already carries one.
func WithRequestID(ctx context.Context) context.Context {
	if RequestIDFromCtx(ctx) != "" {
		return ctx
	}
	return context.WithValue(ctx, rqIDKey{}, uuid.NewString())
}

func RequestIDFromCtx(ctx context.Context) string {
	rqID, ok := ctx.Value(rqIDKey{}).(string)
	if !ok {
		return ""
	}
	return rqID
}
