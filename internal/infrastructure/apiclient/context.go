package apiclient

import "context"

type ctxKey int

const (
	bearerKey ctxKey = iota
	tenantKey
)

// WithCredentials attaches the caller's bearer token and tenant to ctx
func WithCredentials(ctx context.Context, token, tenant string) context.Context {
	if token != "" {
		ctx = context.WithValue(ctx, bearerKey, token)
	}
	if tenant != "" {
		ctx = context.WithValue(ctx, tenantKey, tenant)
	}
	return ctx
}

// BearerFromContext returns the token set by WithCredentials
func BearerFromContext(ctx context.Context) string {
	v, _ := ctx.Value(bearerKey).(string)
	return v
}

// TenantFromContext returns the tenant set by WithCredentials
func TenantFromContext(ctx context.Context) string {
	v, _ := ctx.Value(tenantKey).(string)
	return v
}
