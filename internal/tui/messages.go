package tui

import (
	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/domain/recipe"
)

// Messages are the only way state enters the model. Each network
// outcome has its own type so Update can switch exhaustively.

type historyLoadedMsg struct {
	items []history.Item
}

type historyFailedMsg struct {
	err error
}

type historyItemFetchedMsg struct {
	item *history.Item
}

type historyItemFetchFailedMsg struct {
	err error
}

type itemSavedMsg struct {
	item *history.Item
}

type itemSaveFailedMsg struct {
	err error
}

type itemDeletedMsg struct{}

type itemDeleteFailedMsg struct {
	err error
}

type recipeGeneratedMsg struct {
	recipe      *recipe.Recipe
	ingredients []string
}

type recipeGenerateFailedMsg struct {
	err error
}

type recipeFetchedMsg struct {
	recipe *recipe.Recipe
}

type recipeFetchFailedMsg struct {
	err error
}

type ratingSavedMsg struct {
	recipe *recipe.Recipe
}

type ratingSaveFailedMsg struct {
	err error
}
