// Package images resolves illustrative image URLs for generated recipes
// through an ordered chain of fallback providers.
package images

import (
	"context"

	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/ports/outbound"
)

// Chain tries each provider in order and returns the first usable URL.
// Provider errors are logged and treated as "no result": an image is
// cosmetic, not essential, so lookups are best-effort. The final provider
// in a well-formed chain is the placeholder, which cannot fail.
type Chain struct {
	providers []outbound.ImageProvider
	logger    *zap.Logger
}

// NewChain creates a provider chain
func NewChain(logger *zap.Logger, providers ...outbound.ImageProvider) *Chain {
	return &Chain{
		providers: providers,
		logger:    logger.Named("image-chain"),
	}
}

// Resolve returns the first image URL any provider produces for the dish.
func (c *Chain) Resolve(ctx context.Context, dish string) string {
	for _, p := range c.providers {
		url, err := p.Lookup(ctx, dish)
		if err != nil {
			c.logger.Warn("Image provider failed, falling through",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
			continue
		}
		if url != "" {
			return url
		}
	}
	return ""
}
