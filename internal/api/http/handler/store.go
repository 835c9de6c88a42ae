package handler

import (
	"context"
	"net/http"

	"github.com/mkarpova/slidedeck-server/internal/logger"
	"github.com/mkarpova/slidedeck-server/internal/model"
)

// StoreService defines the deck-store accessors.
type StoreService interface {
	GetStore(ctx context.Context, email string) ([]*model.Deck, error)
	SetStore(ctx context.Context, email string, store []*model.Deck) error
}

// Store handles reading and replacing the authenticated user's deck store.
type Store struct {
	stores         StoreService
	saver          Saver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewStore creates a new Store handler.
func NewStore(stores StoreService, saver Saver, contextManager model.ContextManager, logger *logger.Logger) *Store {
	return &Store{
		stores:         stores,
		saver:          saver,
		contextManager: contextManager,
		logger:         logger,
	}
}

type storePayload struct {
	Store []*model.Deck `json:"store"`
}

// Get returns the authenticated user's store.
func (h *Store) Get(w http.ResponseWriter, r *http.Request) {
	email, ok := h.contextManager.GetEmailFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, model.NewErrInvalidToken())
		return
	}

	store, err := h.stores.GetStore(r.Context(), email)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if store == nil {
		store = []*model.Deck{}
	}

	writeJSON(w, http.StatusOK, storePayload{Store: store})
}

// Put replaces the authenticated user's store wholesale.
func (h *Store) Put(w http.ResponseWriter, r *http.Request) {
	email, ok := h.contextManager.GetEmailFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, model.NewErrInvalidToken())
		return
	}

	var req storePayload
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.stores.SetStore(r.Context(), email, req.Store); err != nil {
		writeError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, nil)
	h.saver.Schedule()
}
