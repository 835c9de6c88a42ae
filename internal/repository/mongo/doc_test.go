package mongo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mkarpova/slidedeck-server/internal/model"
)

func TestNewUserDoc_FlattensStoreToIDs(t *testing.T) {
	deckID := primitive.NewObjectID()
	u := &model.User{
		Email:         "a@x.com",
		Name:          "Alice",
		Password:      "pw",
		SessionActive: true,
		Store:         []*model.Deck{{ID: deckID, ClientID: "d1"}},
	}

	doc, err := newUserDoc(u)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{deckID}, doc.Store)
	assert.Equal(t, "a@x.com", doc.Email)
	assert.True(t, doc.SessionActive)
}

func TestNewUserDoc_RejectsUnsavedDeck(t *testing.T) {
	u := &model.User{
		Email: "a@x.com",
		Store: []*model.Deck{{ClientID: "d1"}},
	}

	_, err := newUserDoc(u)
	require.Error(t, err)
}

func TestNewDeckDoc_FlattensElementsToIDs(t *testing.T) {
	elementID := primitive.NewObjectID()
	d := &model.Deck{
		ID:       primitive.NewObjectID(),
		ClientID: "d1",
		Title:    "Quarterly review",
		Pages: []*model.Page{{
			ClientID:   "p1",
			FontFamily: "serif",
			Elements:   []*model.Element{{ID: elementID, ClientID: "e1", Type: "text"}},
		}},
	}

	doc, err := newDeckDoc(d)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, []primitive.ObjectID{elementID}, doc.Pages[0].Elements)
	assert.Equal(t, "serif", doc.Pages[0].FontFamily)
}

func TestNewDeckDoc_RejectsUnsavedElement(t *testing.T) {
	d := &model.Deck{
		ID:       primitive.NewObjectID(),
		ClientID: "d1",
		Pages: []*model.Page{{
			ClientID: "p1",
			Elements: []*model.Element{{ClientID: "e1"}},
		}},
	}

	_, err := newDeckDoc(d)
	require.Error(t, err)
}

func TestElementDoc_Roundtrip(t *testing.T) {
	autoPlay := true
	e := &model.Element{
		ID:        primitive.NewObjectID(),
		ClientID:  "e1",
		Width:     640,
		Height:    480,
		Type:      "video",
		PositionX: 10,
		PositionY: 20,
		URL:       "https://example.com/v.mp4",
		AutoPlay:  &autoPlay,
	}

	assert.Equal(t, e, newElementDoc(e).toModel())
}
