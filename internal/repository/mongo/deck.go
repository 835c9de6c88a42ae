package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mkarpova/slidedeck-server/internal/model"
)

var _ model.DeckStore = (*DeckRepository)(nil)

type DeckRepository struct {
	db *Connection
}

func NewDeckRepository(db *Connection) *DeckRepository {
	return &DeckRepository{
		db: db,
	}
}

func (r *DeckRepository) Create(ctx context.Context, deck *model.Deck) (primitive.ObjectID, error) {
	doc, err := newDeckDoc(deck)
	if err != nil {
		return primitive.NilObjectID, err
	}

	res, err := r.db.Collection(collDecks).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create deck: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (r *DeckRepository) BulkReplace(ctx context.Context, decks []*model.Deck) error {
	if len(decks) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(decks))
	for _, d := range decks {
		if d.ID.IsZero() {
			return fmt.Errorf("deck %q has no id", d.ClientID)
		}
		doc, err := newDeckDoc(d)
		if err != nil {
			return err
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": d.ID}).
			SetReplacement(doc))
	}

	if _, err := r.db.Collection(collDecks).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to bulk replace decks: %w", err)
	}
	return nil
}
