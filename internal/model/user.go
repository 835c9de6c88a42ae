package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a cached session: the registered user together with their
// fully populated slide-deck store. The zero ID marks a record that has never
// been persisted; the synchronizer assigns one on first flush.
type User struct {
	ID            primitive.ObjectID `json:"_id,omitempty"`
	Email         string             `json:"email"`
	Name          string             `json:"name"`
	Password      string             `json:"-"`
	SessionActive bool               `json:"sessionActive"`
	Store         []*Deck            `json:"store"`
}

// Deck is a slide deck. ClientID is the identifier assigned by the editor
// frontend and is unrelated to the database id.
type Deck struct {
	ID          primitive.ObjectID `json:"_id,omitempty"`
	ClientID    string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Thumbnail   string             `json:"thumbnail"`
	CreatedAt   string             `json:"created_at"`
	LastUpdate  string             `json:"last_update"`
	Pages       []*Page            `json:"pages"`
}

// Page is a single slide within a deck. Pages are embedded in their deck and
// have no database id of their own.
type Page struct {
	ClientID   string     `json:"id"`
	Elements   []*Element `json:"elements"`
	FontFamily string     `json:"fontFamily"`
	BgColor    string     `json:"bgColor"`
}

// Element is a positioned item on a page. Only the fields matching its Type
// are populated; the rest stay empty and are omitted on the wire.
type Element struct {
	ID          primitive.ObjectID `json:"_id,omitempty"`
	ClientID    string             `json:"id"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Type        string             `json:"type"`
	PositionX   float64            `json:"position_X"`
	PositionY   float64            `json:"position_Y"`
	Text        string             `json:"text,omitempty"`
	FontSize    string             `json:"font_size,omitempty"`
	Color       string             `json:"color,omitempty"`
	Image       string             `json:"image,omitempty"`
	Description string             `json:"description,omitempty"`
	Code        string             `json:"code,omitempty"`
	URL         string             `json:"url,omitempty"`
	AutoPlay    *bool              `json:"autoPlay,omitempty"`
}

// Clone returns a deep copy of the user, including the whole store tree.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	out.Store = CloneStore(u.Store)
	return &out
}

// CloneStore deep-copies a sequence of decks.
func CloneStore(store []*Deck) []*Deck {
	if store == nil {
		return nil
	}
	out := make([]*Deck, len(store))
	for i, d := range store {
		out[i] = d.Clone()
	}
	return out
}

// Clone returns a deep copy of the deck and its pages.
func (d *Deck) Clone() *Deck {
	if d == nil {
		return nil
	}
	out := *d
	if d.Pages != nil {
		out.Pages = make([]*Page, len(d.Pages))
		for i, p := range d.Pages {
			out.Pages[i] = p.Clone()
		}
	}
	return &out
}

// Clone returns a deep copy of the page and its elements.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	out := *p
	if p.Elements != nil {
		out.Elements = make([]*Element, len(p.Elements))
		for i, e := range p.Elements {
			out.Elements[i] = e.Clone()
		}
	}
	return &out
}

// Clone returns a copy of the element.
func (e *Element) Clone() *Element {
	if e == nil {
		return nil
	}
	out := *e
	if e.AutoPlay != nil {
		v := *e.AutoPlay
		out.AutoPlay = &v
	}
	return &out
}
