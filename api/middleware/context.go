package middleware

import "context"

type contextKey string

const (
	ctxAdminUser contextKey = "admin_user"
	ctxStoreID   contextKey = "store_id"
)

// AdminUserFromContext returns the authenticated operator username, if any.
func AdminUserFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxAdminUser).(string); ok {
		return v
	}
	return ""
}

// StoreIDFromContext returns the store identifier bound by the router.
func StoreIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxStoreID).(string); ok {
		return v
	}
	return ""
}

// WithAdminUser injects the operator username into the context.
func WithAdminUser(ctx context.Context, username string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxAdminUser, username)
}

// WithStoreID injects the store identifier into the context for downstream handlers.
func WithStoreID(ctx context.Context, storeID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxStoreID, storeID)
}
