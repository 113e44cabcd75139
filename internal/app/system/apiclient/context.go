// internal/app/system/apiclient/context.go
package apiclient

import "context"

type ctxKey int

const (
	tokenKey ctxKey = iota
	serviceKey
)

// WithToken returns a context whose API calls carry the user's bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFrom returns the bearer token stored by WithToken.
func TokenFrom(ctx context.Context) string {
	s, _ := ctx.Value(tokenKey).(string)
	return s
}

// AsService marks ctx for background work: calls without a user token use
// the client-credentials service token instead of going out anonymous.
func AsService(ctx context.Context) context.Context {
	return context.WithValue(ctx, serviceKey, true)
}

func usesService(ctx context.Context) bool {
	b, _ := ctx.Value(serviceKey).(bool)
	return b
}
