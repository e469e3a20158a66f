package recipe

import "errors"

// Domain errors for recipe operations

var (
	ErrMissingName = errors.New("recipe name is required")
	ErrNoSteps     = errors.New("recipe must have at least one step")

	ErrNoIngredients = errors.New("at least one ingredient is required")
	ErrNotFound      = errors.New("recipe not found")
)
