package model

import "context"

// ContextManager passes the authenticated session email through request
// contexts.
type ContextManager interface {
	SetEmailToContext(ctx context.Context, email string) context.Context
	GetEmailFromContext(ctx context.Context) (string, bool)
}
