// Package inbound defines the interfaces for inbound ports (primary/driving adapters).
// These are the interfaces that the application exposes to HTTP handlers and
// other driving adapters.
package inbound

import (
	"context"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/domain/recipe"
)

// AccountService defines the credential use cases. Both operations return a
// signed bearer token on success.
type AccountService interface {
	Register(ctx context.Context, username, password string) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// GenerateCommand contains data for the recipe generation pipeline.
// Username is empty for guest callers; guests get a recipe but no
// server-side history entry.
type GenerateCommand struct {
	Ingredients []string
	Username    string
}

// RecipeService defines the recipe use cases
type RecipeService interface {
	Generate(ctx context.Context, cmd GenerateCommand) (*recipe.Recipe, error)
	GetByID(ctx context.Context, id string) (*recipe.Recipe, error)
	Update(ctx context.Context, id string, upd recipe.Update) (*recipe.Recipe, error)
}

// HistoryService defines the history use cases. List is scoped to the
// calling user; item-level operations address items by id.
type HistoryService interface {
	List(ctx context.Context, userID string) ([]*history.Item, error)
	Get(ctx context.Context, id string) (*history.Item, error)
	Create(ctx context.Context, item *history.Item) (*history.Item, error)
	Update(ctx context.Context, id string, upd history.Update) (*history.Item, error)
	Delete(ctx context.Context, id string) error
}
