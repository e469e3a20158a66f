package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealforge/mealforge/internal/domain/history"
	"github.com/mealforge/mealforge/internal/domain/recipe"
)

type screen int

const (
	screenGenerate screen = iota
	screenHistory
	screenRecipe
)

// Model is the single state container for the client. All mutation
// happens in Update; commands carry network effects and fold their
// results back in as messages.
type Model struct {
	client *Client
	guest  *GuestHistory

	screen    screen
	input     string
	cursor    int
	editing   bool
	editInput string

	username string

	historyItems     []history.Item
	isLoadingHistory bool
	historyError     string

	currentHistoryItem          *history.Item
	isLoadingCurrentHistoryItem bool
	currentHistoryItemError     string

	generatedRecipe       *recipe.Recipe
	isGeneratingRecipe    bool
	recipeGenerationError string

	currentRecipe   *recipe.Recipe
	isLoadingRecipe bool
	recipeError     string
}

// NewModel creates the initial state. Token may be empty for a guest
// session.
func NewModel(client *Client, username string) Model {
	return Model{
		client:       client,
		guest:        NewGuestHistory(),
		screen:       screenGenerate,
		username:     username,
		historyItems: []history.Item{},
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadHistoryCmd()
}
