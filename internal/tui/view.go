package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	headingStyle  = lipgloss.NewStyle().Underline(true)
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("MealForge"))
	if m.username != "" {
		b.WriteString(dimStyle.Render("  signed in as " + m.username))
	} else {
		b.WriteString(dimStyle.Render("  guest session"))
	}
	b.WriteString("\n\n")

	switch m.screen {
	case screenGenerate:
		b.WriteString(m.viewGenerate())
	case screenHistory:
		b.WriteString(m.viewHistory())
	case screenRecipe:
		b.WriteString(m.viewRecipe())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("tab: switch view · esc: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewGenerate() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("What's in your kitchen?"))
	b.WriteString("\n\n")
	b.WriteString("Ingredients (comma separated):\n")
	b.WriteString("> " + m.input + "█\n\n")

	if m.isGeneratingRecipe {
		b.WriteString("Generating recipe...\n")
	} else {
		b.WriteString(dimStyle.Render("enter: generate") + "\n")
	}
	if m.recipeGenerationError != "" {
		b.WriteString(errorStyle.Render(m.recipeGenerationError) + "\n")
	}
	return b.String()
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("History"))
	b.WriteString("\n\n")

	if m.editing {
		b.WriteString("Edit note:\n")
		b.WriteString("> " + m.editInput + "█\n\n")
		b.WriteString(dimStyle.Render("enter: save · esc: cancel") + "\n")
		if m.currentHistoryItemError != "" {
			b.WriteString(errorStyle.Render(m.currentHistoryItemError) + "\n")
		}
		return b.String()
	}
	if m.isLoadingCurrentHistoryItem {
		b.WriteString("Loading item...\n")
		return b.String()
	}

	switch {
	case m.isLoadingHistory:
		b.WriteString("Loading history...\n")
	case m.historyError != "":
		b.WriteString(errorStyle.Render(m.historyError) + "\n")
	case len(m.historyItems) == 0:
		b.WriteString(dimStyle.Render("No recipes yet.") + "\n")
	default:
		for i, item := range m.historyItems {
			line := fmt.Sprintf("%s  %s", item.CreatedAt.Format("Jan 02 15:04"), item.Text)
			if i == m.cursor {
				line = selectedStyle.Render("> " + line)
			} else {
				line = "  " + line
			}
			b.WriteString(line + "\n")
		}
		help := "enter: open recipe · r: refresh"
		if m.client.Authenticated() {
			help += " · e: edit note · x: delete"
		}
		b.WriteString("\n" + dimStyle.Render(help) + "\n")
		if m.currentHistoryItemError != "" {
			b.WriteString(errorStyle.Render(m.currentHistoryItemError) + "\n")
		}
	}
	return b.String()
}

func (m Model) viewRecipe() string {
	var b strings.Builder

	switch {
	case m.isLoadingRecipe:
		b.WriteString("Loading recipe...\n")
		return b.String()
	case m.recipeError != "" && m.currentRecipe == nil:
		b.WriteString(errorStyle.Render(m.recipeError) + "\n")
		return b.String()
	case m.currentRecipe == nil:
		b.WriteString(dimStyle.Render("No recipe selected.") + "\n")
		return b.String()
	}

	r := m.currentRecipe
	b.WriteString(headingStyle.Render(r.Name))
	b.WriteString("\n")
	if r.Description != "" {
		b.WriteString(r.Description + "\n")
	}
	if r.Rating != nil {
		b.WriteString(strings.Repeat("★", *r.Rating) + "\n")
	}
	b.WriteString("\n")

	b.WriteString("Ingredients:\n")
	for _, ing := range r.IngredientsUsed {
		b.WriteString("  - " + ing + "\n")
	}
	b.WriteString("\nSteps:\n")
	for i, step := range r.Steps {
		b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, step))
	}
	if r.ImageURL != "" {
		b.WriteString("\n" + dimStyle.Render(r.ImageURL) + "\n")
	}

	b.WriteString("\n" + dimStyle.Render("1-5: rate · h: history") + "\n")
	if m.recipeError != "" {
		b.WriteString(errorStyle.Render(m.recipeError) + "\n")
	}
	return b.String()
}
