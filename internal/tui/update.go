package tui

import (
	"context"
	"strings"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mealforge/mealforge/internal/domain/history"
)

// Commands. Each runs one request and returns a typed message.

func (m Model) loadHistoryCmd() tea.Cmd {
	if !m.client.Authenticated() {
		items := m.guest.Items()
		return func() tea.Msg { return historyLoadedMsg{items: items} }
	}
	client := m.client
	return func() tea.Msg {
		items, err := client.ListHistory(context.Background())
		if err != nil {
			return historyFailedMsg{err: err}
		}
		return historyLoadedMsg{items: items}
	}
}

func (m Model) generateCmd(ingredients []string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		r, err := client.GenerateRecipe(context.Background(), ingredients)
		if err != nil {
			return recipeGenerateFailedMsg{err: err}
		}
		return recipeGeneratedMsg{recipe: r, ingredients: ingredients}
	}
}

func (m Model) fetchRecipeCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		r, err := client.GetRecipe(context.Background(), id)
		if err != nil {
			return recipeFetchFailedMsg{err: err}
		}
		return recipeFetchedMsg{recipe: r}
	}
}

func (m Model) fetchHistoryItemCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		item, err := client.GetHistoryItem(context.Background(), id)
		if err != nil {
			return historyItemFetchFailedMsg{err: err}
		}
		return historyItemFetchedMsg{item: item}
	}
}

func (m Model) saveHistoryItemCmd(id, text string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		item, err := client.SaveHistoryItem(context.Background(), id, history.Update{Text: &text})
		if err != nil {
			return itemSaveFailedMsg{err: err}
		}
		return itemSavedMsg{item: item}
	}
}

func (m Model) deleteHistoryItemCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		if err := client.DeleteHistoryItem(context.Background(), id); err != nil {
			return itemDeleteFailedMsg{err: err}
		}
		return itemDeletedMsg{}
	}
}

func (m Model) rateCmd(id string, rating int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		r, err := client.RateRecipe(context.Background(), id, rating)
		if err != nil {
			return ratingSaveFailedMsg{err: err}
		}
		return ratingSavedMsg{recipe: r}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case historyLoadedMsg:
		m.historyItems = msg.items
		m.isLoadingHistory = false
		m.historyError = ""
		return m, nil

	case historyFailedMsg:
		m.isLoadingHistory = false
		m.historyError = msg.err.Error()
		return m, nil

	case historyItemFetchedMsg:
		m.currentHistoryItem = msg.item
		m.isLoadingCurrentHistoryItem = false
		m.currentHistoryItemError = ""
		m.editing = true
		m.editInput = msg.item.Text
		return m, nil

	case historyItemFetchFailedMsg:
		m.isLoadingCurrentHistoryItem = false
		m.currentHistoryItemError = msg.err.Error()
		return m, nil

	case itemSavedMsg:
		m.currentHistoryItem = msg.item
		m.currentHistoryItemError = ""
		m.editing = false
		for i, item := range m.historyItems {
			if item.ID == msg.item.ID {
				m.historyItems[i] = *msg.item
			}
		}
		return m, nil

	case itemSaveFailedMsg:
		m.currentHistoryItemError = msg.err.Error()
		return m, nil

	case itemDeletedMsg:
		m.isLoadingHistory = true
		if m.cursor > 0 {
			m.cursor--
		}
		return m, m.loadHistoryCmd()

	case itemDeleteFailedMsg:
		m.historyError = msg.err.Error()
		return m, nil

	case recipeGeneratedMsg:
		m.isGeneratingRecipe = false
		m.generatedRecipe = msg.recipe
		m.recipeGenerationError = ""
		m.screen = screenRecipe
		m.currentRecipe = msg.recipe
		if m.client.Authenticated() {
			// The server recorded the history item; refresh the list.
			m.isLoadingHistory = true
			return m, m.loadHistoryCmd()
		}
		item := m.guest.Add(msg.recipe.DetailPath(), strings.Join(msg.ingredients, ", "))
		m.historyItems = append([]history.Item{item}, m.historyItems...)
		return m, nil

	case recipeGenerateFailedMsg:
		m.isGeneratingRecipe = false
		m.recipeGenerationError = msg.err.Error()
		return m, nil

	case recipeFetchedMsg:
		m.isLoadingRecipe = false
		m.currentRecipe = msg.recipe
		m.recipeError = ""
		m.screen = screenRecipe
		return m, nil

	case recipeFetchFailedMsg:
		m.isLoadingRecipe = false
		m.recipeError = msg.err.Error()
		return m, nil

	case ratingSavedMsg:
		if m.currentRecipe != nil && m.currentRecipe.ID == msg.recipe.ID {
			m.currentRecipe = msg.recipe
		}
		if m.generatedRecipe != nil && m.generatedRecipe.ID == msg.recipe.ID {
			m.generatedRecipe = msg.recipe
		}
		m.recipeError = ""
		return m, nil

	case ratingSaveFailedMsg:
		m.recipeError = msg.err.Error()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		switch m.screen {
		case screenGenerate:
			m.screen = screenHistory
		case screenHistory:
			m.screen = screenGenerate
		case screenRecipe:
			m.screen = screenGenerate
		}
		return m, nil
	}

	switch m.screen {
	case screenGenerate:
		return m.handleGenerateKey(msg)
	case screenHistory:
		return m.handleHistoryKey(msg)
	case screenRecipe:
		return m.handleRecipeKey(msg)
	}
	return m, nil
}

func (m Model) handleGenerateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// One generation at a time; re-submits while in flight are ignored.
		if m.isGeneratingRecipe {
			return m, nil
		}
		ingredients := splitIngredients(m.input)
		if len(ingredients) == 0 {
			m.recipeGenerationError = "Please enter at least one ingredient."
			return m, nil
		}
		m.isGeneratingRecipe = true
		m.recipeGenerationError = ""
		m.generatedRecipe = nil
		return m, m.generateCmd(ingredients)
	case "backspace":
		m.input = trimLastRune(m.input)
		return m, nil
	default:
		if msg.Type == tea.KeyRunes {
			m.input += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.input += " "
		}
		return m, nil
	}
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.historyItems)-1 {
			m.cursor++
		}
	case "r":
		m.isLoadingHistory = true
		m.historyError = ""
		return m, m.loadHistoryCmd()
	case "e":
		if m.client.Authenticated() && m.cursor < len(m.historyItems) {
			m.isLoadingCurrentHistoryItem = true
			m.currentHistoryItemError = ""
			return m, m.fetchHistoryItemCmd(m.historyItems[m.cursor].ID)
		}
	case "x":
		if m.client.Authenticated() && m.cursor < len(m.historyItems) {
			return m, m.deleteHistoryItemCmd(m.historyItems[m.cursor].ID)
		}
	case "enter":
		if m.cursor < len(m.historyItems) {
			item := m.historyItems[m.cursor]
			if id, ok := recipeIDFromLink(item.Link); ok {
				m.isLoadingRecipe = true
				m.recipeError = ""
				m.currentRecipe = nil
				return m, m.fetchRecipeCmd(id)
			}
		}
	}
	return m, nil
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		return m, nil
	case "enter":
		if m.currentHistoryItem == nil {
			m.editing = false
			return m, nil
		}
		return m, m.saveHistoryItemCmd(m.currentHistoryItem.ID, m.editInput)
	case "backspace":
		m.editInput = trimLastRune(m.editInput)
		return m, nil
	default:
		if msg.Type == tea.KeyRunes {
			m.editInput += string(msg.Runes)
		} else if msg.Type == tea.KeySpace {
			m.editInput += " "
		}
		return m, nil
	}
}

func (m Model) handleRecipeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key >= "1" && key <= "5" && m.currentRecipe != nil {
		if !m.client.Authenticated() {
			m.recipeError = "Sign in to rate recipes."
			return m, nil
		}
		rating := int(key[0] - '0')
		return m, m.rateCmd(m.currentRecipe.ID, rating)
	}
	if key == "h" {
		m.screen = screenHistory
	}
	return m, nil
}

// trimLastRune removes the final rune so backspace works on
// multibyte input.
func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}

// splitIngredients parses the comma-separated input line.
func splitIngredients(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// recipeIDFromLink extracts the recipe id from a history link such as
// "/app/recipe/<id>".
func recipeIDFromLink(link string) (string, bool) {
	const prefix = "/app/recipe/"
	if !strings.HasPrefix(link, prefix) {
		return "", false
	}
	id := strings.TrimPrefix(link, prefix)
	return id, id != ""
}
