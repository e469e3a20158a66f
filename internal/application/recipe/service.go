// Package recipe implements the recipe generation and retrieval use cases.
package recipe

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/domain/recipe"
	"github.com/mealforge/mealforge/internal/infrastructure/config"
	"github.com/mealforge/mealforge/internal/ports/inbound"
	"github.com/mealforge/mealforge/internal/ports/outbound"
	"github.com/mealforge/mealforge/pkg/errors"
)

// Service orchestrates the generation pipeline: model call, image
// resolution, persistence, and the history entry for signed-in users.
type Service struct {
	generator outbound.RecipeGenerator
	images    outbound.ImageResolver
	recipes   outbound.RecipeRepository
	histories outbound.HistoryRepository
	cache     outbound.RecipeCache
	cacheTTL  time.Duration
	logger    *zap.Logger
}

func NewService(
	generator outbound.RecipeGenerator,
	images outbound.ImageResolver,
	recipes outbound.RecipeRepository,
	histories outbound.HistoryRepository,
	cache outbound.RecipeCache,
	cfg *config.Config,
	logger *zap.Logger,
) *Service {
	return &Service{
		generator: generator,
		images:    images,
		recipes:   recipes,
		histories: histories,
		cache:     cache,
		cacheTTL:  cfg.Redis.RecipeTTL,
		logger:    logger,
	}
}

var _ inbound.RecipeService = (*Service)(nil)

// Generate runs the full pipeline for one ingredient list. The model call
// happens before any persistence, so a model failure leaves no trace.
func (s *Service) Generate(ctx context.Context, cmd inbound.GenerateCommand) (*recipe.Recipe, error) {
	ingredients := normalizeIngredients(cmd.Ingredients)
	if len(ingredients) == 0 {
		return nil, errors.NewBadRequestError("at least one ingredient is required")
	}

	generated, err := s.generator.Generate(ctx, ingredients)
	if err != nil {
		s.logger.Error("recipe generation failed", zap.Error(err))
		return nil, errors.NewExternalServiceError("recipe generation", err)
	}

	imageURL := s.images.Resolve(ctx, generated.Name)

	r, err := recipe.New(generated.Name, generated.Description, generated.IngredientsUsed, generated.Steps, imageURL)
	if err != nil {
		s.logger.Error("model returned unusable recipe", zap.Error(err))
		return nil, errors.NewExternalServiceError("recipe generation", err)
	}

	if err := s.recipes.Create(ctx, r); err != nil {
		return nil, err
	}

	if cmd.Username != "" {
		item, err := history.NewItem(cmd.Username, r.DetailPath(), strings.Join(ingredients, ", "))
		if err == nil {
			err = s.histories.Create(ctx, item)
		}
		if err != nil {
			s.logger.Error("failed to record history item",
				zap.String("username", cmd.Username),
				zap.String("recipeID", r.ID),
				zap.Error(err),
			)
			return nil, errors.NewDatabaseError("create history item", err)
		}
	}

	s.logger.Info("recipe generated",
		zap.String("recipeID", r.ID),
		zap.String("name", r.Name),
		zap.Int("ingredients", len(ingredients)),
	)
	return r, nil
}

// GetByID fetches a recipe, serving from cache when possible.
func (s *Service) GetByID(ctx context.Context, id string) (*recipe.Recipe, error) {
	if r, ok := s.cache.Get(ctx, id); ok {
		return r, nil
	}

	r, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, recipe.ErrNotFound) {
			return nil, errors.NewRecipeNotFoundError(id)
		}
		return nil, err
	}

	s.cache.Set(ctx, r, s.cacheTTL)
	return r, nil
}

// Update applies a partial update and invalidates the cache entry.
func (s *Service) Update(ctx context.Context, id string, upd recipe.Update) (*recipe.Recipe, error) {
	r, err := s.recipes.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, recipe.ErrNotFound) {
			return nil, errors.NewRecipeNotFoundError(id)
		}
		return nil, err
	}

	r.Apply(upd)

	if err := s.recipes.Update(ctx, r); err != nil {
		if stderrors.Is(err, recipe.ErrNotFound) {
			return nil, errors.NewRecipeNotFoundError(id)
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, id)
	return r, nil
}

// normalizeIngredients trims entries and drops empties, preserving order.
func normalizeIngredients(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, ing := range raw {
		if trimmed := strings.TrimSpace(ing); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
