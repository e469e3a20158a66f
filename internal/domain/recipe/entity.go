// Package recipe contains the core domain model for generated recipes.
package recipe

import (
	"strings"
	"time"
)

// Recipe represents a generated recipe as stored and served by the API.
// Rating is optional and only set once a user has rated the recipe.
type Recipe struct {
	ID              string    `json:"_id,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	IngredientsUsed []string  `json:"ingredientsUsed"`
	Steps           []string  `json:"steps"`
	ImageURL        string    `json:"imageUrl,omitempty"`
	Rating          *int      `json:"rating,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// New assembles a recipe from model output plus the resolved image URL.
func New(name, description string, ingredientsUsed, steps []string, imageURL string) (*Recipe, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrMissingName
	}
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	return &Recipe{
		Name:            strings.TrimSpace(name),
		Description:     strings.TrimSpace(description),
		IngredientsUsed: ingredientsUsed,
		Steps:           steps,
		ImageURL:        imageURL,
		CreatedAt:       time.Now(),
	}, nil
}

// Update contains the fields a PUT may change. Nil fields are left as-is.
// Rating is not range-checked here; the client constrains it to 1..5.
type Update struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Steps       []string `json:"steps,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Rating      *int     `json:"rating,omitempty"`
}

// Apply folds the non-nil fields of u into the recipe.
func (r *Recipe) Apply(u Update) {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Description != nil {
		r.Description = *u.Description
	}
	if u.Steps != nil {
		r.Steps = u.Steps
	}
	if u.ImageURL != nil {
		r.ImageURL = *u.ImageURL
	}
	if u.Rating != nil {
		r.Rating = u.Rating
	}
}

// DetailPath returns the SPA route for this recipe, used as the link target
// of history items.
func (r *Recipe) DetailPath() string {
	return "/app/recipe/" + r.ID
}
