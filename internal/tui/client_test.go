package tui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/domain/recipe"
)

func newStubAPI(t *testing.T) (*Client, *http.ServeMux) {
	t.Helper()
	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL), mux
}

func TestClientLogin(t *testing.T) {
	c, mux := newStubAPI(t)
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req["username"])
		json.NewEncoder(w).Encode(map[string]string{"token": "tok123"})
	})

	token, err := c.Login(context.Background(), "alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "tok123", token)
}

func TestClientLoginFailureSurfacesMessage(t *testing.T) {
	c, mux := newStubAPI(t)
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Invalid username or password"},
		})
	})

	_, err := c.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid username or password")
}

func TestClientGenerateSendsToken(t *testing.T) {
	c, mux := newStubAPI(t)
	c.SetToken("tok123")
	mux.HandleFunc("POST /api/recipes/generate", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(recipe.Recipe{ID: "r1", Name: "Pad Thai", Steps: []string{"Cook"}})
	})

	r, err := c.GenerateRecipe(context.Background(), []string{"egg"})
	require.NoError(t, err)
	assert.Equal(t, "r1", r.ID)
	assert.Equal(t, "Pad Thai", r.Name)
}

func TestClientGuestSendsNoAuthHeader(t *testing.T) {
	c, mux := newStubAPI(t)
	mux.HandleFunc("POST /api/recipes/generate", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(recipe.Recipe{ID: "r1", Name: "Toast"})
	})

	_, err := c.GenerateRecipe(context.Background(), []string{"bread"})
	require.NoError(t, err)
}

func TestClientHistoryRoundTrip(t *testing.T) {
	c, mux := newStubAPI(t)
	c.SetToken("tok123")
	mux.HandleFunc("GET /api/history", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]history.Item{{ID: "h1", Link: "/app/recipe/r1", Text: "egg"}})
	})
	mux.HandleFunc("GET /api/history/h1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(history.Item{ID: "h1", Link: "/app/recipe/r1", Text: "egg"})
	})
	mux.HandleFunc("PUT /api/history/h1", func(w http.ResponseWriter, r *http.Request) {
		var upd history.Update
		require.NoError(t, json.NewDecoder(r.Body).Decode(&upd))
		require.NotNil(t, upd.Text)
		json.NewEncoder(w).Encode(history.Item{ID: "h1", Link: "/app/recipe/r1", Text: *upd.Text})
	})
	mux.HandleFunc("DELETE /api/history/h1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := context.Background()

	items, err := c.ListHistory(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item, err := c.GetHistoryItem(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, "egg", item.Text)

	text := "egg, butter"
	saved, err := c.SaveHistoryItem(ctx, "h1", history.Update{Text: &text})
	require.NoError(t, err)
	assert.Equal(t, "egg, butter", saved.Text)

	require.NoError(t, c.DeleteHistoryItem(ctx, "h1"))
}

func TestClientRateRecipe(t *testing.T) {
	c, mux := newStubAPI(t)
	c.SetToken("tok123")
	mux.HandleFunc("PUT /api/recipes/r1", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		rating := body["rating"]
		json.NewEncoder(w).Encode(recipe.Recipe{ID: "r1", Name: "Pad Thai", Rating: &rating})
	})

	updated, err := c.RateRecipe(context.Background(), "r1", 4)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, 4, *updated.Rating)
}

func TestClientNotFound(t *testing.T) {
	c, _ := newStubAPI(t)

	_, err := c.GetRecipe(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
