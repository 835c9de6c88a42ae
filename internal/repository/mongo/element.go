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

var _ model.ElementStore = (*ElementRepository)(nil)

type ElementRepository struct {
	db *Connection
}

func NewElementRepository(db *Connection) *ElementRepository {
	return &ElementRepository{
		db: db,
	}
}

func (r *ElementRepository) Create(ctx context.Context, element *model.Element) (primitive.ObjectID, error) {
	res, err := r.db.Collection(collElements).InsertOne(ctx, newElementDoc(element))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create element: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (r *ElementRepository) BulkReplace(ctx context.Context, elements []*model.Element) error {
	if len(elements) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(elements))
	for _, e := range elements {
		if e.ID.IsZero() {
			return fmt.Errorf("element %q has no id", e.ClientID)
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": e.ID}).
			SetReplacement(newElementDoc(e)))
	}

	if _, err := r.db.Collection(collElements).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to bulk replace elements: %w", err)
	}
	return nil
}
