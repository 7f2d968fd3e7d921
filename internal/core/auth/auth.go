// Package auth carries the authenticated principal through a request context.
package auth

import (
	"context"

	"github.com/rafaelleal24/inventory/internal/core/domain"
	"github.com/rafaelleal24/inventory/internal/core/serviceerrors"
)

type principalKey struct{}

func WithPrincipal(ctx context.Context, principal *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

func PrincipalFrom(ctx context.Context) (*domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(*domain.Principal)
	return principal, ok && principal != nil
}

// Require fails unless an authenticated principal is attached to ctx.
func Require(ctx context.Context) (*domain.Principal, error) {
	principal, ok := PrincipalFrom(ctx)
	if !ok {
		return nil, serviceerrors.NewUnauthorizedError("authentication required")
	}
	return principal, nil
}
