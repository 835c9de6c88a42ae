package service

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/mkarpova/slidedeck-server/internal/logger"
	"github.com/mkarpova/slidedeck-server/internal/model"
)

// Session owns the process-wide session cache: one fully populated user
// record per email, authoritative for all reads and writes while the process
// is alive. Every accessor runs under a single mutex so session mutations
// never interleave; the write-back syncer serializes separately and only
// touches the cache through short critical sections on the same mutex.
type Session struct {
	mu       sync.Mutex
	sessions map[string]*model.User

	users  model.UserStore
	tokens model.TokenManager
	logger *logger.Logger
}

func NewSession(users model.UserStore, tokens model.TokenManager, logger *logger.Logger) *Session {
	return &Session{
		sessions: make(map[string]*model.User),
		users:    users,
		tokens:   tokens,
		logger:   logger,
	}
}

// Initialize loads every user with an active session from the store, fully
// populated, and seeds the cache with them. On failure the cache starts
// empty; the caller decides whether to establish a fresh store.
func (s *Session) Initialize(ctx context.Context) error {
	users, err := s.users.FindActiveSessions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active sessions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.sessions[u.Email] = u
	}

	s.logger.Info("Session service: cache initialized", "sessions", len(s.sessions))
	return nil
}

// Login verifies the credentials against the cached record, marks the
// session active and returns a signed token embedding the email.
func (s *Session) Login(ctx context.Context, email, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.sessions[email]
	if !ok || user.Password != password {
		s.logger.Info("Session service: login rejected", "email", email)
		return "", model.NewErrInvalidCredentials()
	}

	user.SessionActive = true

	token, err := s.tokens.Generate(email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("Session service: login completed", "email", email)
	return token, nil
}

// Logout marks the cached session inactive. The record stays cached; only
// the active flag gates authorization.
func (s *Session) Logout(ctx context.Context, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.sessions[email]; ok {
		user.SessionActive = false
	}

	s.logger.Info("Session service: logout completed", "email", email)
}

// Register creates a fresh record with an empty store, caches it keyed by
// email and returns a signed token.
func (s *Session) Register(ctx context.Context, email, password, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[email]; ok {
		s.logger.Info("Session service: email already registered", "email", email)
		return "", model.NewErrEmailTaken()
	}

	s.sessions[email] = &model.User{
		Email:         email,
		Name:          name,
		Password:      password,
		SessionActive: true,
		Store:         []*model.Deck{},
	}

	token, err := s.tokens.Generate(email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("Session service: registration completed", "email", email)
	return token, nil
}

// GetStore returns a deep copy of the cached store so callers never alias
// records the syncer or other accessors may touch.
func (s *Session) GetStore(ctx context.Context, email string) ([]*model.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.sessions[email]
	if !ok {
		return nil, model.NewErrInvalidToken()
	}

	return model.CloneStore(user.Store), nil
}

// SetStore replaces the cached store wholesale with a deep copy of the
// supplied sequence.
func (s *Session) SetStore(ctx context.Context, email string, store []*model.Deck) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.sessions[email]
	if !ok {
		return model.NewErrInvalidToken()
	}

	user.Store = model.CloneStore(store)
	s.sessions[email] = user

	s.logger.Debug("Session service: store replaced", "email", email, "decks", len(user.Store))
	return nil
}

// ResolveIdentity strips the bearer prefix, validates the token and confirms
// the embedded email still has a cached session.
func (s *Session) ResolveIdentity(ctx context.Context, authorization string) (string, error) {
	tokenString := strings.TrimPrefix(authorization, "Bearer ")
	if tokenString == "" {
		return "", model.NewErrInvalidToken()
	}

	email, err := s.tokens.Parse(tokenString)
	if err != nil {
		s.logger.Debug("Session service: token rejected", "error", err.Error())
		return "", model.NewErrInvalidToken()
	}

	s.mu.Lock()
	_, ok := s.sessions[email]
	s.mu.Unlock()
	if !ok {
		return "", model.NewErrInvalidToken()
	}

	return email, nil
}

// emails returns the cached emails in stable order. Callers must hold mu.
func (s *Session) emails() []string {
	return slices.Sorted(maps.Keys(s.sessions))
}
