package model

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore defines persistence operations for user documents. Users are
// stored with deck references only; FindActiveSessions resolves the
// references and returns fully populated records.
type UserStore interface {
	FindActiveSessions(ctx context.Context) ([]*User, error)
	Create(ctx context.Context, user *User) (primitive.ObjectID, error)
	BulkReplace(ctx context.Context, users []*User) error
}

// DeckStore defines persistence operations for deck documents. Decks are
// stored with element references in place of embedded elements.
type DeckStore interface {
	Create(ctx context.Context, deck *Deck) (primitive.ObjectID, error)
	BulkReplace(ctx context.Context, decks []*Deck) error
}

// ElementStore defines persistence operations for element documents.
type ElementStore interface {
	Create(ctx context.Context, element *Element) (primitive.ObjectID, error)
	BulkReplace(ctx context.Context, elements []*Element) error
}
