package recipe

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/domain/recipe"
	"github.com/mealforge/mealforge/internal/infrastructure/config"
	"github.com/mealforge/mealforge/internal/ports/inbound"
	"github.com/mealforge/mealforge/internal/ports/outbound"
	"github.com/mealforge/mealforge/pkg/errors"
)

type fakeGenerator struct {
	result *outbound.GeneratedRecipe
	err    error
	calls  int
}

func (g *fakeGenerator) Generate(_ context.Context, _ []string) (*outbound.GeneratedRecipe, error) {
	g.calls++
	return g.result, g.err
}

type fakeResolver struct {
	url string
}

func (r *fakeResolver) Resolve(_ context.Context, _ string) string {
	return r.url
}

type fakeRecipeRepo struct {
	byID    map[string]*recipe.Recipe
	nextID  int
	findErr error
}

func newFakeRecipeRepo() *fakeRecipeRepo {
	return &fakeRecipeRepo{byID: map[string]*recipe.Recipe{}, nextID: 1}
}

func (r *fakeRecipeRepo) Create(_ context.Context, rec *recipe.Recipe) error {
	rec.ID = "r1"
	r.byID[rec.ID] = rec
	return nil
}

func (r *fakeRecipeRepo) FindByID(_ context.Context, id string) (*recipe.Recipe, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	rec, ok := r.byID[id]
	if !ok {
		return nil, recipe.ErrNotFound
	}
	clone := *rec
	return &clone, nil
}

func (r *fakeRecipeRepo) Update(_ context.Context, rec *recipe.Recipe) error {
	if _, ok := r.byID[rec.ID]; !ok {
		return recipe.ErrNotFound
	}
	clone := *rec
	r.byID[rec.ID] = &clone
	return nil
}

type fakeHistoryRepo struct {
	items []*history.Item
	err   error
}

func (r *fakeHistoryRepo) Create(_ context.Context, item *history.Item) error {
	if r.err != nil {
		return r.err
	}
	item.ID = "h1"
	r.items = append(r.items, item)
	return nil
}

func (r *fakeHistoryRepo) FindByID(_ context.Context, _ string) (*history.Item, error) {
	return nil, history.ErrNotFound
}

func (r *fakeHistoryRepo) FindByUser(_ context.Context, _ string) ([]*history.Item, error) {
	return r.items, nil
}

func (r *fakeHistoryRepo) Update(_ context.Context, _ *history.Item) error { return nil }
func (r *fakeHistoryRepo) Delete(_ context.Context, _ string) error        { return nil }

type fakeCache struct {
	entries     map[string]*recipe.Recipe
	sets        int
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]*recipe.Recipe{}}
}

func (c *fakeCache) Get(_ context.Context, id string) (*recipe.Recipe, bool) {
	r, ok := c.entries[id]
	return r, ok
}

func (c *fakeCache) Set(_ context.Context, r *recipe.Recipe, _ time.Duration) {
	c.sets++
	c.entries[r.ID] = r
}

func (c *fakeCache) Invalidate(_ context.Context, id string) {
	c.invalidated = append(c.invalidated, id)
	delete(c.entries, id)
}

type deps struct {
	generator *fakeGenerator
	recipes   *fakeRecipeRepo
	histories *fakeHistoryRepo
	cache     *fakeCache
}

func newTestService(t *testing.T) (*Service, *deps) {
	t.Helper()
	d := &deps{
		generator: &fakeGenerator{result: &outbound.GeneratedRecipe{
			Name:            "Pad Thai",
			Description:     "Stir-fried rice noodles",
			IngredientsUsed: []string{"rice noodles", "egg", "peanuts"},
			Steps:           []string{"Soak noodles", "Stir-fry", "Serve"},
		}},
		recipes:   newFakeRecipeRepo(),
		histories: &fakeHistoryRepo{},
		cache:     newFakeCache(),
	}
	cfg := &config.Config{}
	cfg.Redis.RecipeTTL = time.Minute
	svc := NewService(d.generator, &fakeResolver{url: "https://img.example/padthai.jpg"}, d.recipes, d.histories, d.cache, cfg, zap.NewNop())
	return svc, d
}

func TestGenerateForUser(t *testing.T) {
	svc, d := newTestService(t)

	r, err := svc.Generate(context.Background(), inbound.GenerateCommand{
		Ingredients: []string{"rice noodles", "egg", "peanuts"},
		Username:    "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "Pad Thai", r.Name)
	assert.Equal(t, "https://img.example/padthai.jpg", r.ImageURL)
	assert.NotEmpty(t, r.ID)

	require.Len(t, d.histories.items, 1)
	item := d.histories.items[0]
	assert.Equal(t, "alice", item.UserID)
	assert.Equal(t, "/app/recipe/"+r.ID, item.Link)
	assert.Equal(t, "rice noodles, egg, peanuts", item.Text)
}

func TestGenerateForGuestSkipsHistory(t *testing.T) {
	svc, d := newTestService(t)

	r, err := svc.Generate(context.Background(), inbound.GenerateCommand{
		Ingredients: []string{"egg"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Empty(t, d.histories.items)
}

func TestGenerateEmptyIngredients(t *testing.T) {
	svc, d := newTestService(t)

	for _, ingredients := range [][]string{nil, {}, {"", "   "}} {
		_, err := svc.Generate(context.Background(), inbound.GenerateCommand{Ingredients: ingredients})
		require.Error(t, err)
		assert.Equal(t, errors.CodeBadRequest, errors.GetCode(err))
	}
	// Validation happens before any model call.
	assert.Zero(t, d.generator.calls)
}

func TestGenerateModelFailure(t *testing.T) {
	svc, d := newTestService(t)
	d.generator.err = stderrors.New("upstream unavailable")
	d.generator.result = nil

	_, err := svc.Generate(context.Background(), inbound.GenerateCommand{Ingredients: []string{"egg"}})
	require.Error(t, err)
	assert.Equal(t, errors.CodeExternalServiceError, errors.GetCode(err))
	assert.Empty(t, d.recipes.byID)
	assert.Empty(t, d.histories.items)
}

func TestGenerateHistoryFailureFailsRequest(t *testing.T) {
	svc, d := newTestService(t)
	d.histories.err = stderrors.New("mongo down")

	_, err := svc.Generate(context.Background(), inbound.GenerateCommand{
		Ingredients: []string{"egg"},
		Username:    "alice",
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeDatabaseError, errors.GetCode(err))
	// The recipe write precedes the history write and is not rolled back.
	assert.Len(t, d.recipes.byID, 1)
	assert.Empty(t, d.histories.items)
}

func TestGetByIDCachesResult(t *testing.T) {
	svc, d := newTestService(t)
	ctx := context.Background()

	created, err := svc.Generate(ctx, inbound.GenerateCommand{Ingredients: []string{"egg"}})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, 1, d.cache.sets)

	// Second read must come from cache, not the repository.
	d.recipes.findErr = stderrors.New("repo must not be hit")
	got, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, errors.CodeRecipeNotFound, errors.GetCode(err))
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	svc, d := newTestService(t)
	ctx := context.Background()

	created, err := svc.Generate(ctx, inbound.GenerateCommand{Ingredients: []string{"egg"}})
	require.NoError(t, err)

	rating := 5
	updated, err := svc.Update(ctx, created.ID, recipe.Update{Rating: &rating})
	require.NoError(t, err)

	require.NotNil(t, updated.Rating)
	assert.Equal(t, 5, *updated.Rating)
	assert.Equal(t, created.Name, updated.Name)
	assert.Contains(t, d.cache.invalidated, created.ID)
}

func TestUpdateAcceptsOutOfRangeRating(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Generate(ctx, inbound.GenerateCommand{Ingredients: []string{"egg"}})
	require.NoError(t, err)

	rating := 42
	updated, err := svc.Update(ctx, created.ID, recipe.Update{Rating: &rating})
	require.NoError(t, err)
	assert.Equal(t, 42, *updated.Rating)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	name := "New Name"
	_, err := svc.Update(context.Background(), "missing", recipe.Update{Name: &name})
	require.Error(t, err)
	assert.Equal(t, errors.CodeRecipeNotFound, errors.GetCode(err))
}
