package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// The recall dialog lists saved templates while a session is open.
// Confirming pours the template's text and style into the session; the
// stored label only changes when the session itself is committed.

func (a App) updateRecall(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		a.ed.CancelRecall()
		return a, nil

	case key.Matches(msg, keys.Up):
		if a.recallCursor > 0 {
			a.recallCursor--
		}
		a.selectUnderCursor()
		return a, nil

	case key.Matches(msg, keys.Down):
		if a.recallCursor < len(a.templates)-1 {
			a.recallCursor++
		}
		a.selectUnderCursor()
		return a, nil

	case key.Matches(msg, keys.Commit):
		if err := a.ed.ConfirmRecall(); err != nil {
			return a, errStatus("apply template", err)
		}
		a.syncInput()
		a.reflow()
		return a, nil

	case key.Matches(msg, keys.Delete):
		if a.recallCursor >= len(a.templates) {
			return a, nil
		}
		id := a.templates[a.recallCursor].ID
		if err := a.ed.DeleteTemplate(id); err != nil {
			return a, errStatus("delete template", err)
		}
		return a, a.loadBoard()
	}
	return a, nil
}

func (a *App) selectUnderCursor() {
	if a.recallCursor < len(a.templates) {
		a.ed.SelectTemplate(a.templates[a.recallCursor].ID)
	}
}

func (a App) overlayRecall(string) string {
	title := headerStyle.Render(" Recall a template ")

	var lines []string
	if len(a.templates) == 0 {
		lines = append(lines, mutedStyle.Render("No templates saved yet (ctrl+t while editing)"))
	}
	for i, t := range a.templates {
		marker := "  "
		if i == a.recallCursor {
			marker = selectedItemStyle.Render("▸ ")
		}
		text := t.Text
		if text == "" {
			text = "(untitled)"
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", marker,
			labelStyle(t.Style).Render(" "+text+" "),
			mutedStyle.Render(fmt.Sprintf("size %s", t.Style.FontSize))))
	}

	hint := mutedStyle.Render("enter apply · ctrl+d delete · esc back")
	panel := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", lipgloss.JoinVertical(lipgloss.Left, lines...), "", hint))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, panel)
}
