package ctxutil

import "context"

type roleKey struct{}

// WithRole stores the caller's role as received from the gateway in front
// of this service. The value is opaque here; no identity is verified.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

func GetRole(ctx context.Context) string {
	if r, ok := ctx.Value(roleKey{}).(string); ok {
		return r
	}
	return ""
}
