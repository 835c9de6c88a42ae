package handler

import (
	"context"
	"net/http"

	"github.com/mkarpova/slidedeck-server/internal/logger"
	"github.com/mkarpova/slidedeck-server/internal/model"
)

// SessionService defines the session accessors the auth endpoints compose.
type SessionService interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, password, name string) (string, error)
	Logout(ctx context.Context, email string)
}

// Saver schedules a write-back of the session cache.
type Saver interface {
	Schedule()
}

// Auth handles registration, login and logout endpoints.
type Auth struct {
	sessions       SessionService
	saver          Saver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(sessions SessionService, saver Saver, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		sessions:       sessions,
		saver:          saver,
		contextManager: contextManager,
		logger:         logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login authenticates cached credentials and returns a bearer token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	h.saver.Schedule()
}

// Register creates a new session and returns a bearer token.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.sessions.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	h.saver.Schedule()
}

// Logout deactivates the authenticated session.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	email, ok := h.contextManager.GetEmailFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, model.NewErrInvalidToken())
		return
	}

	h.sessions.Logout(r.Context(), email)

	writeJSON(w, http.StatusOK, nil)
	h.saver.Schedule()
}
