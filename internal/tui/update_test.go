package tui

import (
	stderrors "errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/domain/recipe"
)

func guestModel() Model {
	return NewModel(NewClient("http://localhost:3000"), "")
}

func userModel() Model {
	c := NewClient("http://localhost:3000")
	c.SetToken("some-token")
	return NewModel(c, "alice")
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func typeString(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func testDish(id string) *recipe.Recipe {
	return &recipe.Recipe{
		ID:              id,
		Name:            "Pad Thai",
		IngredientsUsed: []string{"rice noodles", "egg"},
		Steps:           []string{"Cook"},
	}
}

func TestEnterStartsGeneration(t *testing.T) {
	m := typeString(guestModel(), "egg, flour")

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)

	assert.True(t, m.isGeneratingRecipe)
	assert.Empty(t, m.recipeGenerationError)
	assert.NotNil(t, cmd)
}

func TestBackspaceRemovesWholeRune(t *testing.T) {
	m := typeString(guestModel(), "œuf, crème")

	next, _ := m.Update(keyMsg("backspace"))
	m = next.(Model)

	assert.Equal(t, "œuf, crèm", m.input)

	next, _ = m.Update(keyMsg("backspace"))
	m = next.(Model)
	assert.Equal(t, "œuf, crè", m.input)

	// The multibyte rune comes off in one keypress, not byte by byte.
	next, _ = m.Update(keyMsg("backspace"))
	m = next.(Model)
	assert.Equal(t, "œuf, cr", m.input)
}

func TestGenerateIgnoredWhileInFlight(t *testing.T) {
	m := typeString(guestModel(), "egg")
	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)
	require.True(t, m.isGeneratingRecipe)

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)
	assert.True(t, m.isGeneratingRecipe)
	assert.Nil(t, cmd)
}

func TestGenerateEmptyInputShowsError(t *testing.T) {
	m := guestModel()

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)

	assert.False(t, m.isGeneratingRecipe)
	assert.Equal(t, "Please enter at least one ingredient.", m.recipeGenerationError)
	assert.Nil(t, cmd)
}

func TestErrorClearedOnRetry(t *testing.T) {
	m := typeString(guestModel(), "egg")
	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)

	next, _ = m.Update(recipeGenerateFailedMsg{err: stderrors.New("upstream down")})
	m = next.(Model)
	assert.Equal(t, "upstream down", m.recipeGenerationError)
	assert.False(t, m.isGeneratingRecipe)

	next, _ = m.Update(keyMsg("enter"))
	m = next.(Model)
	assert.Empty(t, m.recipeGenerationError)
	assert.True(t, m.isGeneratingRecipe)
}

func TestGuestGenerationAddsLocalHistory(t *testing.T) {
	m := typeString(guestModel(), "egg, flour")
	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)

	next, cmd := m.Update(recipeGeneratedMsg{
		recipe:      testDish("r1"),
		ingredients: []string{"egg", "flour"},
	})
	m = next.(Model)

	assert.False(t, m.isGeneratingRecipe)
	assert.Nil(t, cmd)
	require.Len(t, m.historyItems, 1)
	assert.True(t, strings.HasPrefix(m.historyItems[0].ID, "guest_"))
	assert.Equal(t, "/app/recipe/r1", m.historyItems[0].Link)
	assert.Equal(t, "egg, flour", m.historyItems[0].Text)
	assert.Equal(t, screenRecipe, m.screen)
	require.NotNil(t, m.currentRecipe)
	assert.Equal(t, "Pad Thai", m.currentRecipe.Name)
}

func TestUserGenerationRefreshesServerHistory(t *testing.T) {
	m := typeString(userModel(), "egg")
	next, _ := m.Update(keyMsg("enter"))
	m = next.(Model)

	next, cmd := m.Update(recipeGeneratedMsg{
		recipe:      testDish("r1"),
		ingredients: []string{"egg"},
	})
	m = next.(Model)

	assert.True(t, m.isLoadingHistory)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.historyItems)
}

func TestHistoryLoadedReplacesItems(t *testing.T) {
	m := guestModel()
	items := []history.Item{
		{ID: "h1", Link: "/app/recipe/r1", Text: "egg"},
		{ID: "h2", Link: "/app/recipe/r2", Text: "flour"},
	}

	next, _ := m.Update(historyLoadedMsg{items: items})
	m = next.(Model)

	assert.Len(t, m.historyItems, 2)
	assert.False(t, m.isLoadingHistory)
	assert.Empty(t, m.historyError)
}

func TestHistoryFailureStoresError(t *testing.T) {
	m := guestModel()

	next, _ := m.Update(historyFailedMsg{err: stderrors.New("boom")})
	m = next.(Model)

	assert.Equal(t, "boom", m.historyError)
	assert.False(t, m.isLoadingHistory)
}

func TestHistorySelectionOpensRecipe(t *testing.T) {
	m := guestModel()
	next, _ := m.Update(historyLoadedMsg{items: []history.Item{
		{ID: "h1", Link: "/app/recipe/abc123", Text: "egg"},
	}})
	m = next.(Model)
	next, _ = m.Update(keyMsg("tab"))
	m = next.(Model)
	require.Equal(t, screenHistory, m.screen)

	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)

	assert.True(t, m.isLoadingRecipe)
	assert.NotNil(t, cmd)
}

func TestHistoryCursorBounds(t *testing.T) {
	m := guestModel()
	next, _ := m.Update(historyLoadedMsg{items: []history.Item{
		{ID: "h1", Link: "/app/recipe/r1", Text: "egg"},
		{ID: "h2", Link: "/app/recipe/r2", Text: "flour"},
	}})
	m = next.(Model)
	next, _ = m.Update(keyMsg("tab"))
	m = next.(Model)

	next, _ = m.Update(keyMsg("up"))
	m = next.(Model)
	assert.Equal(t, 0, m.cursor)

	next, _ = m.Update(keyMsg("down"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("down"))
	m = next.(Model)
	assert.Equal(t, 1, m.cursor)
}

func TestRatingSavedUpdatesBothRecipeViews(t *testing.T) {
	m := userModel()
	next, _ := m.Update(recipeGeneratedMsg{recipe: testDish("r1"), ingredients: []string{"egg"}})
	m = next.(Model)

	rating := 5
	rated := testDish("r1")
	rated.Rating = &rating

	next, _ = m.Update(ratingSavedMsg{recipe: rated})
	m = next.(Model)

	require.NotNil(t, m.currentRecipe.Rating)
	assert.Equal(t, 5, *m.currentRecipe.Rating)
	require.NotNil(t, m.generatedRecipe.Rating)
	assert.Equal(t, 5, *m.generatedRecipe.Rating)
}

func TestGuestCannotRate(t *testing.T) {
	m := guestModel()
	next, _ := m.Update(recipeFetchedMsg{recipe: testDish("r1")})
	m = next.(Model)
	require.Equal(t, screenRecipe, m.screen)

	next, cmd := m.Update(keyMsg("5"))
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.Equal(t, "Sign in to rate recipes.", m.recipeError)
}

func TestRecipeFetchFailedStoresError(t *testing.T) {
	m := guestModel()

	next, _ := m.Update(recipeFetchFailedMsg{err: stderrors.New("not found")})
	m = next.(Model)

	assert.Equal(t, "not found", m.recipeError)
	assert.False(t, m.isLoadingRecipe)
}

func TestEditFlowFoldsFetchedItem(t *testing.T) {
	m := userModel()
	item := &history.Item{ID: "h1", Link: "/app/recipe/r1", Text: "egg"}

	next, _ := m.Update(historyItemFetchedMsg{item: item})
	m = next.(Model)

	assert.True(t, m.editing)
	assert.Equal(t, "egg", m.editInput)
	require.NotNil(t, m.currentHistoryItem)
}

func TestEditSaveUpdatesList(t *testing.T) {
	m := userModel()
	next, _ := m.Update(historyLoadedMsg{items: []history.Item{
		{ID: "h1", Link: "/app/recipe/r1", Text: "egg"},
	}})
	m = next.(Model)
	next, _ = m.Update(historyItemFetchedMsg{item: &history.Item{ID: "h1", Link: "/app/recipe/r1", Text: "egg"}})
	m = next.(Model)
	require.True(t, m.editing)

	next, _ = m.Update(itemSavedMsg{item: &history.Item{ID: "h1", Link: "/app/recipe/r1", Text: "egg, butter"}})
	m = next.(Model)

	assert.False(t, m.editing)
	require.Len(t, m.historyItems, 1)
	assert.Equal(t, "egg, butter", m.historyItems[0].Text)
}

func TestEditEscCancelsWithoutQuitting(t *testing.T) {
	m := userModel()
	next, _ := m.Update(historyItemFetchedMsg{item: &history.Item{ID: "h1", Link: "/app/recipe/r1", Text: "egg"}})
	m = next.(Model)
	require.True(t, m.editing)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)

	assert.False(t, m.editing)
	assert.Nil(t, cmd)
}

func TestDeleteTriggersReload(t *testing.T) {
	m := userModel()
	next, _ := m.Update(historyLoadedMsg{items: []history.Item{
		{ID: "h1", Link: "/app/recipe/r1", Text: "egg"},
	}})
	m = next.(Model)

	next, cmd := m.Update(itemDeletedMsg{})
	m = next.(Model)

	assert.True(t, m.isLoadingHistory)
	assert.NotNil(t, cmd)
}

func TestRecipeIDFromLink(t *testing.T) {
	id, ok := recipeIDFromLink("/app/recipe/abc123")
	assert.True(t, ok)
	assert.Equal(t, "abc123", id)

	_, ok = recipeIDFromLink("/app/recipe/")
	assert.False(t, ok)

	_, ok = recipeIDFromLink("/elsewhere")
	assert.False(t, ok)
}

func TestSplitIngredients(t *testing.T) {
	assert.Equal(t, []string{"egg", "flour"}, splitIngredients("egg, flour"))
	assert.Equal(t, []string{"egg"}, splitIngredients("  egg  ,, "))
	assert.Empty(t, splitIngredients("  ,  "))
}
