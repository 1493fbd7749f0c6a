package middlewares

import (
	"context"
	"net/http"
)

// Middleware wraps an HTTP handler with additional behaviour.
type Middleware interface {
	Handle(next http.Handler) http.Handler
}

type contextKey string

const subjectContextKey contextKey = "subject"

// ContextWithSubject returns a context carrying the authenticated subject.
func ContextWithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectContextKey, subject)
}

// SubjectFromContext returns the authenticated subject stored in the
// context, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectContextKey).(string)
	return subject, ok
}
