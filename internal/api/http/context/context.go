// Package context carries the authenticated session email through request
// contexts.
package context

import (
	"context"
)

type contextKey string

const emailKey contextKey = "email"

// Manager implements model.ContextManager over plain context values.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetEmailToContext returns a child context carrying the email.
func (m *Manager) SetEmailToContext(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// GetEmailFromContext retrieves the email set by the authentication
// middleware, reporting whether one was present.
func (m *Manager) GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
