// Package history contains the domain model for per-user generation history.
package history

import (
	"errors"
	"strings"
	"time"
)

// Item links a past ingredient query to the recipe it produced. One item is
// created per generation event for an authenticated user; guests keep an
// equivalent record client-side only.
type Item struct {
	ID        string    `json:"_id,omitempty"`
	UserID    string    `json:"userId"`
	Link      string    `json:"link"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

var (
	ErrMissingLink = errors.New("history item link is required")
	ErrMissingText = errors.New("history item text is required")
	ErrNotFound    = errors.New("history item not found")
)

// NewItem creates a history item for a user. Link must reference an existing
// recipe's detail path at creation time.
func NewItem(userID, link, text string) (*Item, error) {
	if strings.TrimSpace(link) == "" {
		return nil, ErrMissingLink
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrMissingText
	}
	return &Item{
		UserID:    userID,
		Link:      link,
		Text:      text,
		CreatedAt: time.Now(),
	}, nil
}

// Update contains the mutable fields of a history item.
type Update struct {
	Link *string `json:"link,omitempty"`
	Text *string `json:"text,omitempty"`
}

// Apply folds the non-nil fields of u into the item.
func (i *Item) Apply(u Update) {
	if u.Link != nil {
		i.Link = *u.Link
	}
	if u.Text != nil {
		i.Text = *u.Text
	}
}
