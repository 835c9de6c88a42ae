package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkarpova/slidedeck-server/internal/logger"
	"github.com/mkarpova/slidedeck-server/internal/model"
)

// IdentityResolver resolves a bearer Authorization header to a session email.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, authorization string) (string, error)
}

// Authenticate validates bearer tokens and injects the session email into
// the request context.
type Authenticate struct {
	resolver       IdentityResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(resolver IdentityResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{resolver: resolver, contextManager: contextManager, logger: logger}
}

// Wrap guards a handler: requests without a resolvable identity get a 403
// and never reach it.
func (m *Authenticate) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, err := m.resolver.ResolveIdentity(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			m.logger.Debug("authenticate: request rejected", "path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": errorMessage(err)})
			return
		}

		ctx := m.contextManager.SetEmailToContext(r.Context(), email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func errorMessage(err error) string {
	var accessErr *model.AccessError
	if errors.As(err, &accessErr) {
		return accessErr.Message
	}
	return "Invalid Token"
}
