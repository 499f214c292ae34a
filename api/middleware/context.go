package middleware

import (
	"context"

	"github.com/hareeshraj15-dotcom/petpal-connect-ac08ac26/pkg/auth"
)

type contextKey string

const ctxSession contextKey = "session"

// WithSession injects the authenticated session into the context.
func WithSession(ctx context.Context, sess auth.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}

// SessionFromContext returns the request session, or auth.Anonymous when
// no credentials were presented.
func SessionFromContext(ctx context.Context) auth.Session {
	if ctx == nil {
		return auth.Anonymous
	}
	if sess, ok := ctx.Value(ctxSession).(auth.Session); ok {
		return sess
	}
	return auth.Anonymous
}
