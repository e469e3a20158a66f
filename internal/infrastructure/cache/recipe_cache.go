package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/domain/recipe"
	"github.com/mealforge/mealforge/internal/ports/outbound"
)

const recipeKeyPrefix = "recipe:"

// RecipeCache caches recipes by id in Redis. Every failure, including
// a nil client, is treated as a cache miss so the database stays the
// source of truth.
type RecipeCache struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRecipeCache(client *redis.Client, logger *zap.Logger) *RecipeCache {
	return &RecipeCache{
		client: client,
		logger: logger,
	}
}

var _ outbound.RecipeCache = (*RecipeCache)(nil)

func (c *RecipeCache) Get(ctx context.Context, id string) (*recipe.Recipe, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, recipeKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("recipe cache read failed", zap.String("id", id), zap.Error(err))
		}
		return nil, false
	}

	var r recipe.Recipe
	if err := json.Unmarshal(data, &r); err != nil {
		c.logger.Warn("recipe cache entry corrupt", zap.String("id", id), zap.Error(err))
		return nil, false
	}
	return &r, true
}

func (c *RecipeCache) Set(ctx context.Context, r *recipe.Recipe, ttl time.Duration) {
	if c.client == nil || r == nil || r.ID == "" {
		return
	}

	data, err := json.Marshal(r)
	if err != nil {
		c.logger.Warn("recipe cache encode failed", zap.String("id", r.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, recipeKeyPrefix+r.ID, data, ttl).Err(); err != nil {
		c.logger.Warn("recipe cache write failed", zap.String("id", r.ID), zap.Error(err))
	}
}

func (c *RecipeCache) Invalidate(ctx context.Context, id string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, recipeKeyPrefix+id).Err(); err != nil {
		c.logger.Warn("recipe cache invalidate failed", zap.String("id", id), zap.Error(err))
	}
}
