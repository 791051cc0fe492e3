package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daymark/internal/grid"
)

// The date picker is a 4x3 month grid for one year, stepped with the
// month-navigation keys.

func (a App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Picker):
		a.pickerOpen = false
		return a, nil

	case key.Matches(msg, keys.Left):
		if a.pickerCursor > 0 {
			a.pickerCursor--
		}
		return a, nil
	case key.Matches(msg, keys.Right):
		if a.pickerCursor < 11 {
			a.pickerCursor++
		}
		return a, nil
	case key.Matches(msg, keys.Up):
		if a.pickerCursor >= 3 {
			a.pickerCursor -= 3
		}
		return a, nil
	case key.Matches(msg, keys.Down):
		if a.pickerCursor < 9 {
			a.pickerCursor += 3
		}
		return a, nil

	case key.Matches(msg, keys.PrevMonth):
		a.pickerYear--
		return a, nil
	case key.Matches(msg, keys.NextMonth):
		a.pickerYear++
		return a, nil

	case key.Matches(msg, keys.Today):
		y, m := grid.MonthOf(a.today)
		a.pickerYear = y
		a.pickerCursor = int(m) - 1
		return a, nil

	case key.Matches(msg, keys.Commit):
		a.pickerOpen = false
		return a.gotoMonth(a.pickerYear, time.Month(a.pickerCursor+1))
	}
	return a, nil
}

func (a App) renderPicker() string {
	title := headerStyle.Render(fmt.Sprintf("  ◂ %d ▸  ", a.pickerYear))

	var rows []string
	for r := 0; r < 4; r++ {
		var cols []string
		for c := 0; c < 3; c++ {
			i := r*3 + c
			name := time.Month(i + 1).String()[:3]
			cell := fmt.Sprintf("  %s  ", name)
			st := normalItemStyle
			if i == a.pickerCursor {
				st = selectedItemStyle
			} else if a.pickerYear == a.year && time.Month(i+1) == a.month {
				st = highlightStyle
			}
			cols = append(cols, st.Render(cell))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}

	hint := mutedStyle.Render("arrows move · pgup/pgdn year · t today · enter open · esc close")
	panel := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
		title, "", lipgloss.JoinVertical(lipgloss.Left, rows...), "", hint))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, panel)
}
