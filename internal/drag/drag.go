// Package drag implements the label positioning engine: the gesture state
// machine between pointer-down and pointer-up, and the geometry that maps a
// release point back to a date cell and container-local offsets.
package drag

import (
	"math"

	"github.com/sadopc/daymark/internal/store"
)

// Threshold is the minimum Euclidean pointer displacement that turns a
// press into a drag instead of a click.
const Threshold = 5.0

type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Cell is one date cell of the rendered grid, with the bounds of its label
// container in the same coordinate space as the pointer.
type Cell struct {
	Date       string
	OtherMonth bool
	Bounds     Rect
}

// CellLayout resolves which date cell, if any, contains a point. The grid
// view implements it from its cached cell rectangles, keeping the engine
// independent of any rendering technology.
type CellLayout interface {
	CellAt(p Point) (Cell, bool)
}

// GridLayout is the concrete CellLayout over a slice of cell rectangles.
type GridLayout struct {
	Cells []Cell
}

func (g GridLayout) CellAt(p Point) (Cell, bool) {
	for _, c := range g.Cells {
		if c.Bounds.Contains(p) {
			return c, true
		}
	}
	return Cell{}, false
}

// Gesture is the ephemeral drag state for one label, alive between
// pointer-down and pointer-up. Moved latches once the pointer leaves the
// threshold radius; until then the gesture is still a potential click.
type Gesture struct {
	LabelID int64
	Offset  Point // pointer offset within the label's bounding box
	Origin  Point // pointer position at press
	Moved   bool
}

// Start records a press on a label. labelTopLeft is the label's current
// on-screen top-left corner; the offset between it and the pointer is kept
// so the label does not jump under the cursor.
func Start(labelID int64, pointer, labelTopLeft Point) *Gesture {
	return &Gesture{
		LabelID: labelID,
		Offset:  Point{X: pointer.X - labelTopLeft.X, Y: pointer.Y - labelTopLeft.Y},
		Origin:  pointer,
	}
}

// Move feeds a pointer position into the gesture. It returns the floating
// top-left position for the label and whether the gesture has crossed the
// drag threshold; below the threshold the position is meaningless and the
// label stays put.
func (g *Gesture) Move(pointer Point) (Point, bool) {
	if !g.Moved {
		dx := pointer.X - g.Origin.X
		dy := pointer.Y - g.Origin.Y
		if math.Hypot(dx, dy) < Threshold {
			return Point{}, false
		}
		g.Moved = true
	}
	return Point{X: pointer.X - g.Offset.X, Y: pointer.Y - g.Offset.Y}, true
}

// Drop ends the gesture at a release point. A release over a valid
// (non-other-month) cell moves the label there, with offsets relative to
// the cell's container origin clamped to zero; anywhere else the label is
// left exactly where it was. A gesture that never crossed the threshold is
// a click and mutates nothing.
//
// It reports whether the label moved.
func (g *Gesture) Drop(pointer Point, layout CellLayout, s *store.Store) (bool, error) {
	if !g.Moved {
		return false, nil
	}

	cell, ok := layout.CellAt(pointer)
	if !ok || cell.OtherMonth {
		return false, nil
	}

	top := pointer.Y - cell.Bounds.Y - g.Offset.Y
	left := pointer.X - cell.Bounds.X - g.Offset.X
	if err := s.MoveLabel(g.LabelID, cell.Date, math.Max(0, top), math.Max(0, left)); err != nil {
		return false, err
	}
	return true, nil
}
