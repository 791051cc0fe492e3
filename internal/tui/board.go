package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daymark/internal/drag"
	"github.com/sadopc/daymark/internal/editor"
	"github.com/sadopc/daymark/internal/grid"
	"github.com/sadopc/daymark/internal/store"
)

const (
	headerRows = 2 // title row + decoration row
	weekdayRow = 1
	footerRows = 2
)

var weekdayNames = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// cellGeom is the terminal rectangle of one date cell. The label container
// starts one line below y; the first line holds the date number.
type cellGeom struct {
	day        grid.Day
	x, y, w, h int
}

// labelGeom records where a label line was placed, for mouse hit-testing.
type labelGeom struct {
	id      int64
	x, y, w int
}

func (a *App) gridTop() int {
	top := headerRows
	if _, ok := a.ed.Editing(); ok {
		top++ // editing bar
	}
	return top + weekdayRow
}

// reflow recomputes cell geometry and label placement. Called from Update
// whenever the size, the board data, or the session changes; View only
// reads the cached geometry so hit-testing and rendering always agree.
func (a *App) reflow() {
	rows := len(a.days) / 7
	if rows == 0 || a.width == 0 {
		a.cells = nil
		a.labelGeoms = nil
		return
	}

	gridH := a.height - a.gridTop() - footerRows
	cellH := max(2, gridH/rows)
	cellW := max(8, a.width/7)

	a.cells = a.cells[:0]
	for i, d := range a.days {
		r, c := i/7, i%7
		a.cells = append(a.cells, cellGeom{
			day: d,
			x:   c * cellW,
			y:   a.gridTop() + r*cellH,
			w:   cellW,
			h:   cellH,
		})
	}

	a.labelGeoms = a.labelGeoms[:0]
	for ci := range a.cells {
		c := a.cells[ci]
		for row, pl := range a.placeCell(c) {
			a.labelGeoms = append(a.labelGeoms, labelGeom{
				id: pl.id,
				x:  c.x,
				y:  c.y + 1 + row,
				w:  c.w,
			})
		}
	}
}

// placed is one label line inside a cell container.
type placed struct {
	id    int64 // 0 for the uncommitted new-session label
	text  string
	style lipgloss.Style
}

// placeCell assigns the cell's labels to container lines: the stored top
// offset picks the line, collisions spill downward, overflow is dropped.
// Session state overlays the stored data: an existing-label session shows
// its live text and style, a new-label session appears as an extra entry,
// and a label mid-drag is lifted out of its cell entirely.
func (a *App) placeCell(c cellGeom) map[int]placed {
	out := make(map[int]placed)
	lines := c.h - 1
	if lines < 1 {
		return out
	}

	sess, editing := a.ed.Editing()

	put := func(id int64, top float64, text string, st lipgloss.Style) {
		row := int(top / unitsPerRow)
		if row < 0 {
			row = 0
		}
		if row >= lines {
			row = lines - 1
		}
		for ; row < lines; row++ {
			if _, taken := out[row]; !taken {
				out[row] = placed{id: id, text: text, style: st}
				return
			}
		}
	}

	for _, l := range a.labels[c.day.Key] {
		if a.gesture != nil && a.gesture.Moved && a.gesture.LabelID == l.ID {
			continue // floating with the pointer
		}
		text, st := l.Text, labelStyle(l.Style)
		if editing && sess.Kind == editor.KindExisting && sess.ID == l.ID {
			text, st = sess.Text, editingLabelStyle(sess.Style)
		}
		put(l.ID, l.Top, text, st)
	}

	if editing && sess.Kind == editor.KindNew && sess.Date == c.day.Key {
		put(0, sess.Top, sess.Text, editingLabelStyle(sess.Style))
	}

	return out
}

func (a *App) cellAt(x, y int) (cellGeom, bool) {
	for _, c := range a.cells {
		if x >= c.x && x < c.x+c.w && y >= c.y && y < c.y+c.h {
			return c, true
		}
	}
	return cellGeom{}, false
}

func (a *App) labelGeomAt(x, y int) (labelGeom, bool) {
	for _, g := range a.labelGeoms {
		if y == g.y && x >= g.x && x < g.x+g.w {
			return g, true
		}
	}
	return labelGeom{}, false
}

// dragLayout exposes the cached cell rectangles to the positioning engine,
// in virtual units.
func (a *App) dragLayout() drag.GridLayout {
	cells := make([]drag.Cell, 0, len(a.cells))
	for _, c := range a.cells {
		cells = append(cells, drag.Cell{
			Date:       c.day.Key,
			OtherMonth: c.day.OtherMonth,
			Bounds: drag.Rect{
				X: float64(c.x) * unitsPerCol,
				Y: float64(c.y+1) * unitsPerRow,
				W: float64(c.w) * unitsPerCol,
				H: float64(c.h-1) * unitsPerRow,
			},
		})
	}
	return drag.GridLayout{Cells: cells}
}

// --- Mouse ---

func (a App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.Action == tea.MouseActionPress {
			return a.stepMonth(-1)
		}
		return a, nil
	case tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress {
			return a.stepMonth(1)
		}
		return a, nil
	}

	if a.overlayActive() {
		return a, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a, nil
		}
		if g, ok := a.labelGeomAt(msg.X, msg.Y); ok && g.id != 0 {
			// Pressing a label arms a potential drag. A session on a
			// different label closes; pressing the label being edited
			// keeps its session alive until a drag actually starts.
			if sess, editing := a.ed.Editing(); editing &&
				!(sess.Kind == editor.KindExisting && sess.ID == g.id) {
				a.ed.Cancel()
			}
			a.gesture = drag.Start(g.id, toVirtual(msg.X, msg.Y), toVirtual(g.x, g.y))
			a.reflow()
		}
		return a, nil

	case tea.MouseActionMotion:
		if a.gesture == nil {
			return a, nil
		}
		wasFloating := a.gesture.Moved
		if pos, moved := a.gesture.Move(toVirtual(msg.X, msg.Y)); moved {
			a.dragPos = pos
			a.hoverKey = ""
			if c, ok := a.cellAt(msg.X, msg.Y); ok && !c.day.OtherMonth {
				a.hoverKey = c.day.Key
			}
			if !wasFloating {
				// Label just lifted out of its cell; any session on it
				// is over.
				a.ed.Cancel()
				a.input.Blur()
				a.reflow()
			}
		}
		return a, nil

	case tea.MouseActionRelease:
		if a.gesture != nil {
			g := a.gesture
			a.gesture = nil
			a.hoverKey = ""
			if g.Moved {
				moved, err := g.Drop(toVirtual(msg.X, msg.Y), a.dragLayout(), a.store)
				if err != nil {
					return a, errStatus("move label", err)
				}
				if !moved {
					a.status = "Drop outside the month, label kept in place"
					a.statusErr = false
				}
				return a, a.loadBoard()
			}
			// Below the threshold: a plain click on the pressed label.
			return a.clickLabel(g.LabelID)
		}

		c, ok := a.cellAt(msg.X, msg.Y)
		if !ok {
			return a, nil
		}
		if c.day.OtherMonth {
			// Clicking a spill-over day navigates to its month.
			return a.gotoMonth(grid.MonthOf(c.day.Date))
		}
		return a.clickCell(c.day.Key)
	}
	return a, nil
}

func (a App) clickLabel(id int64) (tea.Model, tea.Cmd) {
	if err := a.ed.ClickLabel(id); err != nil {
		return a, errStatus("open label", err)
	}
	a.syncInput()
	a.reflow()
	return a, nil
}

func (a App) clickCell(date string) (tea.Model, tea.Cmd) {
	if err := a.ed.ClickCell(date); err != nil {
		return a, errStatus("new label", err)
	}
	a.syncInput()
	a.reflow()
	return a, nil
}

// --- Rendering ---

func (a App) renderWeekdayHeader(cellW int) string {
	var cols []string
	for i, name := range weekdayNames {
		st := mutedStyle
		if i == 0 {
			st = sundayStyle
		} else if i == 6 {
			st = saturdayStyle
		}
		cols = append(cols, st.Width(cellW).Align(lipgloss.Center).Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (a App) renderBoard() string {
	if len(a.cells) == 0 {
		return "Loading..."
	}
	cellW := a.cells[0].w

	var rows []string
	rows = append(rows, a.renderWeekdayHeader(cellW))
	for i := 0; i < len(a.cells); i += 7 {
		var cols []string
		for _, c := range a.cells[i : i+7] {
			cols = append(cols, a.renderCell(c))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (a App) renderCell(c cellGeom) string {
	lines := make([]string, 0, c.h)

	num := fmt.Sprintf("%2d", c.day.Date.Day())
	numStyle := dayNumberStyle
	switch {
	case c.day.OtherMonth:
		numStyle = otherMonthStyle
	case c.day.Today:
		numStyle = todayNumberStyle
	case c.day.Date.Weekday() == 0:
		numStyle = sundayStyle
	case c.day.Date.Weekday() == 6:
		numStyle = saturdayStyle
	}
	head := numStyle.Render(num)
	if a.hoverKey == c.day.Key {
		head = highlightStyle.Render("▸") + head
	} else {
		head = " " + head
	}
	lines = append(lines, lipgloss.NewStyle().Width(c.w).MaxWidth(c.w).Render(head))

	byRow := a.placeCell(c)
	for row := 0; row < c.h-1; row++ {
		pl, ok := byRow[row]
		if !ok {
			lines = append(lines, strings.Repeat(" ", c.w))
			continue
		}
		text := truncate(pl.text, c.w-1)
		lines = append(lines, pl.style.MaxWidth(c.w).Render(text))
	}

	return lipgloss.NewStyle().Width(c.w).Height(c.h).MaxWidth(c.w).
		Render(strings.Join(lines, "\n"))
}

func truncate(s string, w int) string {
	if w < 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}

// --- Data loading ---

func (a App) loadBoard() tea.Cmd {
	return func() tea.Msg {
		all, err := a.store.ListLabels()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("load labels: %v", err), isError: true}
		}
		byDate := make(map[string][]store.Label)
		for _, l := range all {
			byDate[l.Date] = append(byDate[l.Date], l)
		}
		templates, _ := a.store.ListTemplates()
		currentID, _ := a.store.CurrentID()
		return boardDataMsg{labels: byDate, templates: templates, currentID: currentID}
	}
}
