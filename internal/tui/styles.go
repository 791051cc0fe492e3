package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/sadopc/daymark/internal/store"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// Cycle palettes for the decoration controls. Values stay plain hex
// strings in the store.
var (
	textColors  = []string{"#333333", "#E74C3C", "#2980B9", "#27AE60", "#8E44AD", "#D35400", "#FFFFFF"}
	labelColors = []string{"#fffbe6", "#FDEDEC", "#EBF5FB", "#E9F7EF", "#F4ECF7", "#FDF2E9", "#333333"}
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	dayNumberStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	todayNumberStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#1A1B26")).
				Background(colorHighlight)

	sundayStyle = lipgloss.NewStyle().
			Foreground(colorError)

	saturdayStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	otherMonthStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)
)

// labelStyle maps a stored label Style onto a lipgloss style. Invalid hex
// strings fall back to the defaults so a hand-edited import cannot break
// rendering.
func labelStyle(st store.Style) lipgloss.Style {
	fg := safeHex(st.Color, store.DefaultStyle().Color)
	bg := safeHex(st.BackgroundColor, store.DefaultStyle().BackgroundColor)

	s := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg))
	if st.FontWeight == "bold" {
		s = s.Bold(true)
	}
	if st.FontStyle == "italic" {
		s = s.Italic(true)
	}
	return s
}

// editingLabelStyle marks the label under an open session with an underline
// and a contrast-picked foreground so it stays readable on any background.
func editingLabelStyle(st store.Style) lipgloss.Style {
	s := labelStyle(st).Underline(true)
	bg := safeHex(st.BackgroundColor, store.DefaultStyle().BackgroundColor)
	if c, err := colorful.Hex(bg); err == nil {
		// Luminance decides whether a dark or light accent reads better.
		if _, _, l := c.Hsl(); l < 0.5 {
			s = s.Foreground(lipgloss.Color("#FFFFFF"))
		}
	}
	return s
}

// safeHex returns hex if it parses as a color, fallback otherwise.
func safeHex(hex, fallback string) string {
	if _, err := colorful.Hex(hex); err != nil {
		return fallback
	}
	return hex
}

// nextInPalette cycles to the entry after current, starting over when
// current is not in the palette at all.
func nextInPalette(palette []string, current string) string {
	for i, c := range palette {
		if c == current {
			return palette[(i+1)%len(palette)]
		}
	}
	return palette[0]
}
