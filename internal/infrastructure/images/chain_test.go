package images

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/ports/outbound"
)

type stubProvider struct {
	name string
	url  string
	err  error
}

func (s stubProvider) Name() string { return s.name }
func (s stubProvider) Lookup(context.Context, string) (string, error) {
	return s.url, s.err
}

func TestChainReturnsFirstUsableResult(t *testing.T) {
	chain := NewChain(zap.NewNop(),
		stubProvider{name: "a", url: ""},
		stubProvider{name: "b", url: "https://example.com/b.jpg"},
		stubProvider{name: "c", url: "https://example.com/c.jpg"},
	)

	got := chain.Resolve(context.Background(), "Tomato Soup")
	assert.Equal(t, "https://example.com/b.jpg", got)
}

func TestChainSwallowsProviderErrors(t *testing.T) {
	chain := NewChain(zap.NewNop(),
		stubProvider{name: "a", err: errors.New("timeout")},
		stubProvider{name: "b", err: errors.New("quota")},
		NewPlaceholder(),
	)

	got := chain.Resolve(context.Background(), "Pad Thai")
	assert.Equal(t, "https://placehold.co/800x600/EFEFEF/AAAAAA?text=Pad+Thai", got)
}

func TestChainEmptyWhenNothingResolves(t *testing.T) {
	chain := NewChain(zap.NewNop(), stubProvider{name: "a"})
	assert.Empty(t, chain.Resolve(context.Background(), "Soup"))
}

func TestGoogleSearchFiltersNonImagesAndDeniedHosts(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "image", r.URL.Query().Get("searchType"))
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"link": "https://example.com/page.html", "mime": "text/html"},
				{"link": "https://scontent.fbsbx.com/pic.jpg", "mime": "image/jpeg"},
				{"link": "http://example.com/dish.jpg", "mime": "image/jpeg"},
			},
		})
	}))
	defer srv.Close()

	g := NewGoogleSearch("key", "cx", srv.URL)
	got, err := g.Lookup(context.Background(), "Ratatouille")
	assert.NoError(t, err)
	assert.Equal(t, "Ratatouille food photo", gotQuery)
	// http links are upgraded to https
	assert.Equal(t, "https://example.com/dish.jpg", got)
}

func TestGoogleSearchNoResultWithoutCredentials(t *testing.T) {
	g := NewGoogleSearch("", "", "http://unused")
	got, err := g.Lookup(context.Background(), "Soup")
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnsplashReturnsRegularURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("per_page"))
		json.NewEncoder(w).Encode(map[string]any{
			"results": []map[string]any{
				{"urls": map[string]any{"regular": "https://images.unsplash.com/soup.jpg"}},
			},
		})
	}))
	defer srv.Close()

	u := NewUnsplash("key", srv.URL)
	got, err := u.Lookup(context.Background(), "Soup")
	assert.NoError(t, err)
	assert.Equal(t, "https://images.unsplash.com/soup.jpg", got)
}

func TestUnsplashErrorPropagatesForChainToSwallow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	u := NewUnsplash("key", srv.URL)
	_, err := u.Lookup(context.Background(), "Soup")
	assert.Error(t, err)
}

var _ outbound.ImageProvider = (*GoogleSearch)(nil)
var _ outbound.ImageProvider = (*Unsplash)(nil)
var _ outbound.ImageProvider = (*Placeholder)(nil)
