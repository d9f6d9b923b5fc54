package gateway

import "context"

type tokenKey struct{}

// WithToken stores the staff bearer token on the context. The auth middleware
// sets it once per request; every gateway call reads it back.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the bearer token carried by ctx, if any.
func TokenFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(tokenKey{}).(string); ok {
		return v
	}
	return ""
}
