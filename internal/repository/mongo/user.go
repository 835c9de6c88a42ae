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

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// FindActiveSessions loads every user with an active session and resolves
// deck and element references into fully populated records. Population is
// inherently cross-collection, so this repository reads all three.
func (r *UserRepository) FindActiveSessions(ctx context.Context) ([]*model.User, error) {
	cursor, err := r.db.Collection(collUsers).Find(ctx, bson.M{"sessionActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to find active users: %w", err)
	}
	var users []userDoc
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode active users: %w", err)
	}

	deckIDs := make([]primitive.ObjectID, 0)
	for _, u := range users {
		deckIDs = append(deckIDs, u.Store...)
	}
	decks, err := r.findDecks(ctx, deckIDs)
	if err != nil {
		return nil, err
	}

	elementIDs := make([]primitive.ObjectID, 0)
	for _, d := range decks {
		for _, p := range d.Pages {
			elementIDs = append(elementIDs, p.Elements...)
		}
	}
	elements, err := r.findElements(ctx, elementIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*model.User, 0, len(users))
	for _, u := range users {
		out = append(out, assembleUser(u, decks, elements))
	}
	return out, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) (primitive.ObjectID, error) {
	doc, err := newUserDoc(user)
	if err != nil {
		return primitive.NilObjectID, err
	}

	res, err := r.db.Collection(collUsers).InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create user: %w", err)
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id, nil
}

func (r *UserRepository) BulkReplace(ctx context.Context, users []*model.User) error {
	if len(users) == 0 {
		return nil
	}

	models := make([]mongo.WriteModel, 0, len(users))
	for _, u := range users {
		if u.ID.IsZero() {
			return fmt.Errorf("user %q has no id", u.Email)
		}
		doc, err := newUserDoc(u)
		if err != nil {
			return err
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": u.ID}).
			SetReplacement(doc))
	}

	if _, err := r.db.Collection(collUsers).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to bulk replace users: %w", err)
	}
	return nil
}

func (r *UserRepository) findDecks(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]deckDoc, error) {
	out := make(map[primitive.ObjectID]deckDoc, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := r.db.Collection(collDecks).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find decks: %w", err)
	}
	var docs []deckDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode decks: %w", err)
	}
	for _, d := range docs {
		out[d.ID] = d
	}
	return out, nil
}

func (r *UserRepository) findElements(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]elementDoc, error) {
	out := make(map[primitive.ObjectID]elementDoc, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := r.db.Collection(collElements).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find elements: %w", err)
	}
	var docs []elementDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode elements: %w", err)
	}
	for _, e := range docs {
		out[e.ID] = e
	}
	return out, nil
}

// assembleUser rebuilds the in-memory record from flattened documents.
// Dangling references are skipped rather than failing the whole load.
func assembleUser(doc userDoc, decks map[primitive.ObjectID]deckDoc, elements map[primitive.ObjectID]elementDoc) *model.User {
	user := &model.User{
		ID:            doc.ID,
		Email:         doc.Email,
		Name:          doc.Name,
		Password:      doc.Password,
		SessionActive: doc.SessionActive,
		Store:         make([]*model.Deck, 0, len(doc.Store)),
	}
	for _, deckID := range doc.Store {
		d, ok := decks[deckID]
		if !ok {
			continue
		}
		deck := &model.Deck{
			ID:          d.ID,
			ClientID:    d.ClientID,
			Title:       d.Title,
			Description: d.Description,
			Thumbnail:   d.Thumbnail,
			CreatedAt:   d.CreatedAt,
			LastUpdate:  d.LastUpdate,
			Pages:       make([]*model.Page, 0, len(d.Pages)),
		}
		for _, p := range d.Pages {
			page := &model.Page{
				ClientID:   p.ClientID,
				Elements:   make([]*model.Element, 0, len(p.Elements)),
				FontFamily: p.FontFamily,
				BgColor:    p.BgColor,
			}
			for _, elementID := range p.Elements {
				e, ok := elements[elementID]
				if !ok {
					continue
				}
				page.Elements = append(page.Elements, e.toModel())
			}
			deck.Pages = append(deck.Pages, page)
		}
		user.Store = append(user.Store, deck)
	}
	return user
}
