package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// The stats overlay charts how many labels land on each week of the
// displayed month, spill-over days included since they are on screen.

func (a App) updateStats(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.Stats), key.Matches(msg, keys.Quit):
		a.statsOpen = false
		return a, nil
	}
	return a, nil
}

func (a App) buildStatsChart() barchart.Model {
	chartWidth := a.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if a.height > 30 {
		chartHeight = 16
	}

	chart := barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for w := 0; w*7 < len(a.days); w++ {
		week := a.days[w*7 : w*7+7]
		count := 0
		for _, d := range week {
			count += len(a.labels[d.Key])
		}

		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if count == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: week[0].Date.Format("Jan 02"),
			Values: []barchart.BarValue{{
				Name:  "labels",
				Value: float64(count),
				Style: style,
			}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}

func (a App) renderStats() string {
	total := 0
	for _, ls := range a.labels {
		total += len(ls)
	}

	chart := a.buildStatsChart()
	title := headerStyle.Render(fmt.Sprintf(" Labels per week, %s %d ", a.month, a.year))
	summary := mutedStyle.Render(fmt.Sprintf("%d labels on screen · %d templates saved",
		total, len(a.templates)))
	hint := mutedStyle.Render("esc close")

	panel := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		title, "", chart.View(), "", summary, hint))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, panel)
}
