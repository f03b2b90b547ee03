// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services read them, tests
// inject them, and none of the consumers pull in net/http to do so.
package requestcontext

import (
	"context"

	"github.com/google/uuid"
)

type (
	adminIDKey    struct{}
	adminNameKey  struct{}
	adminEmailKey struct{}
	requestIDKey  struct{}
	userAgentKey  struct{}
)

// AdminID retrieves the authenticated administrator's ID from the context.
// Returns uuid.Nil if not set.
func AdminID(ctx context.Context) uuid.UUID {
	if v, ok := ctx.Value(adminIDKey{}).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// WithAdminID injects an administrator ID into the context.
func WithAdminID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, adminIDKey{}, id)
}

// AdminName retrieves the administrator's display name, empty when absent.
func AdminName(ctx context.Context) string {
	if v, ok := ctx.Value(adminNameKey{}).(string); ok {
		return v
	}
	return ""
}

// WithAdminName injects the administrator's display name.
func WithAdminName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, adminNameKey{}, name)
}

// AdminEmail retrieves the administrator's email, empty when absent.
func AdminEmail(ctx context.Context) string {
	if v, ok := ctx.Value(adminEmailKey{}).(string); ok {
		return v
	}
	return ""
}

// WithAdminEmail injects the administrator's email.
func WithAdminEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, adminEmailKey{}, email)
}

// RequestID retrieves the correlation ID assigned by middleware.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithRequestID injects a correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// UserAgent retrieves the raw User-Agent header captured by middleware.
func UserAgent(ctx context.Context) string {
	if v, ok := ctx.Value(userAgentKey{}).(string); ok {
		return v
	}
	return ""
}

// WithUserAgent injects a raw User-Agent string.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, ua)
}
