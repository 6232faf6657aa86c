package service

import (
	"context"

	"postauth/internal/models"
)

type callerKey struct{}

func WithCaller(ctx context.Context, caller *models.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the authenticated caller, or nil for anonymous requests.
func CallerFromContext(ctx context.Context) *models.Caller {
	caller, _ := ctx.Value(callerKey{}).(*models.Caller)
	return caller
}
