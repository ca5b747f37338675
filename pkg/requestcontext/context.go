// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values. Middleware sets them, services read them, and
// services never have to import net/http to do so.
package requestcontext

import "context"

type requestIDKey struct{}
type adminSubjectKey struct{}

// Exported context keys for tests that need context.WithValue directly.
var (
	ContextKeyRequestID    = requestIDKey{}
	ContextKeyAdminSubject = adminSubjectKey{}
)

// RequestID retrieves the request ID from the context, or "" if unset.
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return id
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, id)
}

// AdminSubject retrieves the authenticated operator from the context.
func AdminSubject(ctx context.Context) string {
	if sub, ok := ctx.Value(ContextKeyAdminSubject).(string); ok {
		return sub
	}
	return ""
}

// WithAdminSubject injects an operator subject into the context.
func WithAdminSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ContextKeyAdminSubject, subject)
}
