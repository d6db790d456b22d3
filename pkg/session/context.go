package session

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/testimony/pkg/guard"
)

type sessionContextKey struct{}

// WithSession stores session in ctx.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// FromContext returns the session stored by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok && session != nil
}

// IDFromContext returns the stable session ID.
func IDFromContext(ctx context.Context) (string, bool) {
	session, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	return session.ID, true
}

// Subject returns the request's session as a guard subject, or guard.Anonymous.
// It matches guard.SubjectFunc.
func Subject(r *http.Request) guard.Subject {
	if session, ok := FromContext(r.Context()); ok {
		return session
	}
	return guard.Anonymous
}
