package tui

import (
	"time"

	"github.com/google/uuid"

	"github.com/mealforge/mealforge/internal/domain/history"
)

// GuestHistory holds a guest's generation history for the lifetime of
// the session. Items use the same shape as server history items but
// carry guest-prefixed ids and never reach the server.
type GuestHistory struct {
	items []history.Item
}

func NewGuestHistory() *GuestHistory {
	return &GuestHistory{}
}

// Add records a generation, newest first, and returns the stored item.
func (g *GuestHistory) Add(link, text string) history.Item {
	item := history.Item{
		ID:        "guest_" + uuid.NewString(),
		Link:      link,
		Text:      text,
		CreatedAt: time.Now(),
	}
	g.items = append([]history.Item{item}, g.items...)
	return item
}

// Items returns the session's history, newest first.
func (g *GuestHistory) Items() []history.Item {
	out := make([]history.Item, len(g.items))
	copy(out, g.items)
	return out
}
