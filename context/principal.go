package context

import (
	"context"

	"github.com/orderly-app/orderly"
	"github.com/orderly-app/orderly/kit/platform/errors"
)

type contextKey string

const (
	principalCtxKey = contextKey("orderly/principal/v1")
)

// SetPrincipal sets the authenticated principal on context.
func SetPrincipal(ctx context.Context, u *orderly.User) context.Context {
	return context.WithValue(ctx, principalCtxKey, u)
}

// GetPrincipal retrieves the authenticated principal from context.
func GetPrincipal(ctx context.Context) (*orderly.User, error) {
	u, ok := ctx.Value(principalCtxKey).(*orderly.User)
	if !ok {
		return nil, &errors.Error{
			Msg:  "principal not found on context",
			Code: errors.EUnauthorized,
		}
	}

	return u, nil
}

// HasPrincipal reports whether an authenticated principal is attached to ctx.
func HasPrincipal(ctx context.Context) bool {
	_, ok := ctx.Value(principalCtxKey).(*orderly.User)
	return ok
}
