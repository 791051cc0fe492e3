package drag

import (
	"testing"

	"github.com/sadopc/daymark/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// twoCellLayout is a grid of two side-by-side cells: Feb 1 at x 0..100 and
// Feb 2 at x 100..200, both y 0..80, plus an other-month cell below.
func twoCellLayout() GridLayout {
	return GridLayout{Cells: []Cell{
		{Date: "2024-02-01", Bounds: Rect{X: 0, Y: 0, W: 100, H: 80}},
		{Date: "2024-02-02", Bounds: Rect{X: 100, Y: 0, W: 100, H: 80}},
		{Date: "2024-03-01", OtherMonth: true, Bounds: Rect{X: 0, Y: 80, W: 200, H: 80}},
	}}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{10, 10}, true},   // inclusive top-left
		{Point{29.9, 29.9}, true},
		{Point{30, 30}, false}, // exclusive bottom-right
		{Point{9, 15}, false},
		{Point{15, 35}, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestGridLayoutCellAt(t *testing.T) {
	layout := twoCellLayout()

	cell, ok := layout.CellAt(Point{50, 40})
	if !ok || cell.Date != "2024-02-01" {
		t.Fatalf("expected 2024-02-01, got %+v ok=%v", cell, ok)
	}
	cell, ok = layout.CellAt(Point{150, 40})
	if !ok || cell.Date != "2024-02-02" {
		t.Fatalf("expected 2024-02-02, got %+v ok=%v", cell, ok)
	}
	if _, ok := layout.CellAt(Point{500, 500}); ok {
		t.Fatal("point outside every cell should not resolve")
	}
}

func TestMoveBelowThresholdIsNotADrag(t *testing.T) {
	g := Start(1, Point{50, 40}, Point{45, 35})

	_, moved := g.Move(Point{52, 42})
	if moved {
		t.Fatal("3-ish unit move should stay below the threshold")
	}
	if g.Moved {
		t.Fatal("Moved must not latch below the threshold")
	}
}

func TestMoveCrossesThresholdAndLatches(t *testing.T) {
	g := Start(1, Point{50, 40}, Point{45, 35})

	pos, moved := g.Move(Point{54, 43}) // displacement 5, exactly at threshold
	if !moved {
		t.Fatal("5-unit displacement should be a drag")
	}
	// Floating position is pointer minus the recorded in-label offset.
	if pos.X != 54-5 || pos.Y != 43-5 {
		t.Fatalf("unexpected floating position %+v", pos)
	}

	// Once latched, even tiny moves keep reporting positions.
	pos, moved = g.Move(Point{50, 40})
	if !moved || pos.X != 45 || pos.Y != 35 {
		t.Fatalf("latched gesture should keep floating: %+v moved=%v", pos, moved)
	}
}

func TestDropWithoutMoveIsAClick(t *testing.T) {
	s := newTestStore(t)
	l, _ := s.InsertLabel("2024-02-01", "x", 5, 5, store.DefaultStyle())

	g := Start(l.ID, Point{10, 10}, Point{5, 5})
	moved, err := g.Drop(Point{11, 10}, twoCellLayout(), s)
	if err != nil {
		t.Fatal(err)
	}
	if moved {
		t.Fatal("a click must not move the label")
	}
	got, _ := s.GetLabel(l.ID)
	if got.Date != "2024-02-01" || got.Top != 5 || got.Left != 5 {
		t.Fatalf("label mutated by a click: %+v", got)
	}
}

func TestDropOntoCellReassignsDateAndOffsets(t *testing.T) {
	s := newTestStore(t)
	l, _ := s.InsertLabel("2024-02-01", "x", 5, 5, store.DefaultStyle())

	// Press 3,2 inside the label.
	g := Start(l.ID, Point{8, 7}, Point{5, 5})
	g.Move(Point{120, 40})

	moved, err := g.Drop(Point{130, 42}, twoCellLayout(), s)
	if err != nil {
		t.Fatal(err)
	}
	if !moved {
		t.Fatal("drop over a valid cell should move the label")
	}

	got, _ := s.GetLabel(l.ID)
	if got.Date != "2024-02-02" {
		t.Fatalf("date not reassigned: %s", got.Date)
	}
	// Offsets relative to the target cell origin (100,0) minus the in-label
	// press offset (3,2).
	if got.Left != 130-100-3 || got.Top != 42-0-2 {
		t.Fatalf("unexpected offsets top=%v left=%v", got.Top, got.Left)
	}
}

func TestDropClampsNegativeOffsets(t *testing.T) {
	s := newTestStore(t)
	l, _ := s.InsertLabel("2024-02-02", "x", 20, 20, store.DefaultStyle())

	// Press 8,6 inside the label, release just inside the left cell edge so
	// the computed offsets would be negative.
	g := Start(l.ID, Point{128, 30}, Point{120, 24})
	g.Move(Point{60, 10})

	moved, err := g.Drop(Point{2, 1}, twoCellLayout(), s)
	if err != nil {
		t.Fatal(err)
	}
	if !moved {
		t.Fatal("expected a move")
	}
	got, _ := s.GetLabel(l.ID)
	if got.Date != "2024-02-01" || got.Top != 0 || got.Left != 0 {
		t.Fatalf("expected clamped drop onto 2024-02-01, got %+v", got)
	}
}

func TestDropOutsideAnyCellIsRejected(t *testing.T) {
	s := newTestStore(t)
	l, _ := s.InsertLabel("2024-02-01", "x", 5, 5, store.DefaultStyle())

	g := Start(l.ID, Point{10, 10}, Point{5, 5})
	g.Move(Point{400, 400})

	moved, err := g.Drop(Point{400, 400}, twoCellLayout(), s)
	if err != nil {
		t.Fatal(err)
	}
	if moved {
		t.Fatal("drop outside the grid must be rejected")
	}
	got, _ := s.GetLabel(l.ID)
	if got.Date != "2024-02-01" || got.Top != 5 || got.Left != 5 {
		t.Fatalf("rejected drop still mutated the label: %+v", got)
	}
}

func TestDropOnOtherMonthCellIsRejected(t *testing.T) {
	s := newTestStore(t)
	l, _ := s.InsertLabel("2024-02-01", "x", 5, 5, store.DefaultStyle())

	g := Start(l.ID, Point{10, 10}, Point{5, 5})
	g.Move(Point{100, 120})

	moved, err := g.Drop(Point{100, 120}, twoCellLayout(), s)
	if err != nil {
		t.Fatal(err)
	}
	if moved {
		t.Fatal("other-month cells are not valid drop targets")
	}
	got, _ := s.GetLabel(l.ID)
	if got.Date != "2024-02-01" {
		t.Fatal("rejected drop changed the date")
	}
}

func TestDropSameCellRepositionsWithinIt(t *testing.T) {
	s := newTestStore(t)
	l, _ := s.InsertLabel("2024-02-01", "x", 5, 5, store.DefaultStyle())

	g := Start(l.ID, Point{6, 6}, Point{5, 5})
	g.Move(Point{40, 50})
	moved, err := g.Drop(Point{40, 50}, twoCellLayout(), s)
	if err != nil || !moved {
		t.Fatalf("expected in-cell move, moved=%v err=%v", moved, err)
	}
	got, _ := s.GetLabel(l.ID)
	if got.Date != "2024-02-01" || got.Left != 39 || got.Top != 49 {
		t.Fatalf("unexpected reposition: %+v", got)
	}
}

func TestDropUnknownLabelIsNoop(t *testing.T) {
	s := newTestStore(t)
	g := Start(999, Point{10, 10}, Point{5, 5})
	g.Move(Point{50, 50})
	if _, err := g.Drop(Point{50, 50}, twoCellLayout(), s); err != nil {
		t.Fatalf("drop of unknown label should be a no-op, got %v", err)
	}
}
