package images

import (
	"context"
	"net/url"
)

// Placeholder synthesizes a placehold.co URL embedding the dish name as
// literal text. It never fails, which makes it the terminal link of the chain.
type Placeholder struct{}

// NewPlaceholder creates the placeholder provider
func NewPlaceholder() *Placeholder { return &Placeholder{} }

// Name implements ImageProvider
func (p *Placeholder) Name() string { return "placeholder" }

// Lookup implements ImageProvider
func (p *Placeholder) Lookup(_ context.Context, dish string) (string, error) {
	return "https://placehold.co/800x600/EFEFEF/AAAAAA?text=" + url.QueryEscape(dish), nil
}
