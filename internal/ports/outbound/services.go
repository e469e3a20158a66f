package outbound

import "context"

// GeneratedRecipe is the strict JSON object the generation model must return.
type GeneratedRecipe struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	IngredientsUsed []string `json:"ingredientsUsed"`
	Steps           []string `json:"steps"`
}

// RecipeGenerator defines the interface to the external generation model.
// A malformed model response is a fatal error for the request; there is no
// retry or schema repair.
type RecipeGenerator interface {
	Generate(ctx context.Context, ingredients []string) (*GeneratedRecipe, error)
}

// ImageResolver walks the provider chain and always produces a usable
// URL; the final provider is a placeholder that cannot fail.
type ImageResolver interface {
	Resolve(ctx context.Context, dish string) string
}

// ImageProvider attempts to resolve an illustrative image URL for a query.
// Returning ("", nil) means "no result"; callers fall through to the next
// provider in the chain. Transport errors are for the caller to swallow.
type ImageProvider interface {
	Lookup(ctx context.Context, query string) (string, error)
	Name() string
}
