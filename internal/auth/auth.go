// Package auth verifies administrator identity tokens and carries the
// resulting user through request contexts. Signing in is handled elsewhere;
// this package only checks tokens it is given.
package auth

import (
	"context"

	"github.com/pkazala/work20/internal/domain"
)

// Verifier checks a bearer token and returns the user it identifies.
// Implementations return an error wrapping domain.ErrUnauthorized for any
// token that is malformed, expired or signed by someone else.
type Verifier interface {
	Verify(ctx context.Context, token string) (domain.User, error)
}

type ctxKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFrom returns the user stored by WithUser, or nil for anonymous requests.
func UserFrom(ctx context.Context) *domain.User {
	u, ok := ctx.Value(ctxKey{}).(domain.User)
	if !ok {
		return nil
	}
	return &u
}
