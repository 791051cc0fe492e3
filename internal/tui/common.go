package tui

import (
	"time"

	"github.com/sadopc/daymark/internal/drag"
	"github.com/sadopc/daymark/internal/store"
)

// Virtual units per terminal cell. Stored label offsets use the same unit
// family as the stacking formula (one stacked row = 28 units), so one
// terminal row maps to one stack row and eight units span one column.
const (
	unitsPerCol = 8.0
	unitsPerRow = 28.0
)

// toVirtual converts a terminal coordinate into the positioning engine's
// unit space.
func toVirtual(x, y int) drag.Point {
	return drag.Point{X: float64(x) * unitsPerCol, Y: float64(y) * unitsPerRow}
}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

// boardDataMsg carries a fresh read of the whole board.
type boardDataMsg struct {
	labels    map[string][]store.Label
	templates []store.Template
	currentID string
}

type exportDoneMsg struct {
	path string
}

type importedMsg struct {
	id     string
	labels int
}

type clearedMsg struct{}

// wheelResetMsg re-arms month navigation after the scroll cooldown.
type wheelResetMsg struct{}

// wheelCooldown keeps a rapid scroll burst from re-triggering navigation.
const wheelCooldown = 100 * time.Millisecond

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
