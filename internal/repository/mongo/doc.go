// Package mongo persists users, decks and elements as three collections.
// Parent documents reference children by id: a stored user holds deck ids,
// a stored deck holds element ids per page. The in-memory model embeds the
// children instead, so the repositories flatten on write and populate on
// read.
package mongo

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mkarpova/slidedeck-server/internal/model"
)

type userDoc struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty"`
	Email         string               `bson:"email"`
	Name          string               `bson:"name"`
	Password      string               `bson:"password"`
	SessionActive bool                 `bson:"sessionActive"`
	Store         []primitive.ObjectID `bson:"store"`
}

type deckDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ClientID    string             `bson:"id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Thumbnail   string             `bson:"thumbnail"`
	CreatedAt   string             `bson:"created_at"`
	LastUpdate  string             `bson:"last_update"`
	Pages       []pageDoc          `bson:"pages"`
}

type pageDoc struct {
	ClientID   string               `bson:"id"`
	Elements   []primitive.ObjectID `bson:"elements"`
	FontFamily string               `bson:"fontFamily"`
	BgColor    string               `bson:"bgColor"`
}

type elementDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ClientID    string             `bson:"id"`
	Width       float64            `bson:"width"`
	Height      float64            `bson:"height"`
	Type        string             `bson:"type"`
	PositionX   float64            `bson:"position_X"`
	PositionY   float64            `bson:"position_Y"`
	Text        string             `bson:"text,omitempty"`
	FontSize    string             `bson:"font_size,omitempty"`
	Color       string             `bson:"color,omitempty"`
	Image       string             `bson:"image,omitempty"`
	Description string             `bson:"description,omitempty"`
	Code        string             `bson:"code,omitempty"`
	URL         string             `bson:"url,omitempty"`
	AutoPlay    *bool              `bson:"autoPlay,omitempty"`
}

// newUserDoc flattens a populated user to its persisted shape. Every deck in
// the store must already carry a database id.
func newUserDoc(u *model.User) (userDoc, error) {
	doc := userDoc{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Password:      u.Password,
		SessionActive: u.SessionActive,
		Store:         make([]primitive.ObjectID, 0, len(u.Store)),
	}
	for _, d := range u.Store {
		if d.ID.IsZero() {
			return userDoc{}, fmt.Errorf("deck %q of user %q has no id", d.ClientID, u.Email)
		}
		doc.Store = append(doc.Store, d.ID)
	}
	return doc, nil
}

// newDeckDoc flattens a populated deck to its persisted shape. Every element
// on every page must already carry a database id.
func newDeckDoc(d *model.Deck) (deckDoc, error) {
	doc := deckDoc{
		ID:          d.ID,
		ClientID:    d.ClientID,
		Title:       d.Title,
		Description: d.Description,
		Thumbnail:   d.Thumbnail,
		CreatedAt:   d.CreatedAt,
		LastUpdate:  d.LastUpdate,
		Pages:       make([]pageDoc, 0, len(d.Pages)),
	}
	for _, p := range d.Pages {
		page := pageDoc{
			ClientID:   p.ClientID,
			Elements:   make([]primitive.ObjectID, 0, len(p.Elements)),
			FontFamily: p.FontFamily,
			BgColor:    p.BgColor,
		}
		for _, e := range p.Elements {
			if e.ID.IsZero() {
				return deckDoc{}, fmt.Errorf("element %q of deck %q has no id", e.ClientID, d.ClientID)
			}
			page.Elements = append(page.Elements, e.ID)
		}
		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

func newElementDoc(e *model.Element) elementDoc {
	return elementDoc{
		ID:          e.ID,
		ClientID:    e.ClientID,
		Width:       e.Width,
		Height:      e.Height,
		Type:        e.Type,
		PositionX:   e.PositionX,
		PositionY:   e.PositionY,
		Text:        e.Text,
		FontSize:    e.FontSize,
		Color:       e.Color,
		Image:       e.Image,
		Description: e.Description,
		Code:        e.Code,
		URL:         e.URL,
		AutoPlay:    e.AutoPlay,
	}
}

func (d elementDoc) toModel() *model.Element {
	return &model.Element{
		ID:          d.ID,
		ClientID:    d.ClientID,
		Width:       d.Width,
		Height:      d.Height,
		Type:        d.Type,
		PositionX:   d.PositionX,
		PositionY:   d.PositionY,
		Text:        d.Text,
		FontSize:    d.FontSize,
		Color:       d.Color,
		Image:       d.Image,
		Description: d.Description,
		Code:        d.Code,
		URL:         d.URL,
		AutoPlay:    d.AutoPlay,
	}
}
