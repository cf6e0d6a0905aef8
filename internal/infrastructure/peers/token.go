package peers

import "context"

type tokenKey struct{}

// WithToken returns a context carrying the caller's bearer token.
// The auth middleware binds it per request; clients that authenticate
// against peers read it back with Token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// Token returns the bearer token bound to the context, or "" if none.
func Token(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey{}).(string); ok {
		return token
	}
	return ""
}
