// Package outbound defines the interfaces for outbound ports (secondary/driven adapters).
// These are the interfaces that the application uses to interact with external systems.
package outbound

import (
	"context"
	"time"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/domain/recipe"
	"github.com/mealforge/mealforge/internal/domain/user"
)

// CredentialRepository defines the interface for credential persistence.
// Lookups are case-sensitive exact matches on username.
type CredentialRepository interface {
	Create(ctx context.Context, cred *user.Credential) error
	FindByUsername(ctx context.Context, username string) (*user.Credential, error)
}

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	FindByID(ctx context.Context, id string) (*recipe.Recipe, error)
	Update(ctx context.Context, r *recipe.Recipe) error
}

// HistoryRepository defines the interface for history item persistence
type HistoryRepository interface {
	Create(ctx context.Context, item *history.Item) error
	FindByID(ctx context.Context, id string) (*history.Item, error)
	FindByUser(ctx context.Context, userID string) ([]*history.Item, error)
	Update(ctx context.Context, item *history.Item) error
	Delete(ctx context.Context, id string) error
}

// RecipeCache defines the read-through cache used in front of recipe reads.
// Implementations must treat all failures as cache misses.
type RecipeCache interface {
	Get(ctx context.Context, id string) (*recipe.Recipe, bool)
	Set(ctx context.Context, r *recipe.Recipe, ttl time.Duration)
	Invalidate(ctx context.Context, id string)
}
