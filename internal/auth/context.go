// ABOUTME: Request-scoped principal carried through the interceptor chain
// ABOUTME: Provides WithPrincipal/PrincipalFromContext for propagating identity via context

package auth

import (
	"context"
)

// Principal is the identity resolved from a validated token.
// It lives for a single request and is never persisted.
type Principal struct {
	ID string
}

// principalContextKey is the key type for storing a Principal in context.Context.
type principalContextKey struct{}

// WithPrincipal returns a new context with the Principal attached.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext retrieves the Principal from the context, returning nil if not present.
func PrincipalFromContext(ctx context.Context) *Principal {
	val := ctx.Value(principalContextKey{})
	if val == nil {
		return nil
	}
	p, ok := val.(*Principal)
	if !ok {
		return nil
	}
	return p
}

// MustPrincipalFromContext retrieves the Principal from the context, panicking if not present.
func MustPrincipalFromContext(ctx context.Context) *Principal {
	p := PrincipalFromContext(ctx)
	if p == nil {
		panic("auth: Principal not found in context")
	}
	return p
}
