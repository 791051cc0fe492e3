package store

import (
	"database/sql"
	"fmt"
)

const labelColumns = `id, date, text, top_offset, left_offset, color, background, font_size, font_weight, font_style`

func scanLabel(row interface{ Scan(...any) error }) (Label, error) {
	var l Label
	err := row.Scan(&l.ID, &l.Date, &l.Text, &l.Top, &l.Left,
		&l.Style.Color, &l.Style.BackgroundColor, &l.Style.FontSize,
		&l.Style.FontWeight, &l.Style.FontStyle)
	return l, err
}

// InsertLabel stores a new label and returns it with its assigned id.
// Negative offsets are clamped to zero before storing.
func (s *Store) InsertLabel(date, text string, top, left float64, style Style) (*Label, error) {
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	style = style.Normalized()
	res, err := s.db.Exec(
		`INSERT INTO labels (date, text, top_offset, left_offset, color, background, font_size, font_weight, font_style)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		date, text, top, left, style.Color, style.BackgroundColor,
		style.FontSize, style.FontWeight, style.FontStyle,
	)
	if err != nil {
		return nil, fmt.Errorf("insert label: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetLabel(id)
}

func (s *Store) GetLabel(id int64) (*Label, error) {
	row := s.db.QueryRow(`SELECT `+labelColumns+` FROM labels WHERE id = ?`, id)
	l, err := scanLabel(row)
	if err != nil {
		return nil, fmt.Errorf("get label %d: %w", id, err)
	}
	return &l, nil
}

// ListLabels returns every label in insertion (id) order.
func (s *Store) ListLabels() ([]Label, error) {
	return s.queryLabels(`SELECT ` + labelColumns + ` FROM labels ORDER BY id`)
}

// ListLabelsByDate returns the labels on one date in insertion order.
func (s *Store) ListLabelsByDate(date string) ([]Label, error) {
	return s.queryLabels(`SELECT `+labelColumns+` FROM labels WHERE date = ? ORDER BY id`, date)
}

func (s *Store) queryLabels(query string, args ...any) ([]Label, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list labels: %w", err)
	}
	defer rows.Close()

	var labels []Label
	for rows.Next() {
		l, err := scanLabel(rows)
		if err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// CountLabelsOnDate reports how many labels already sit on a date. It feeds
// the stacking formula for newly created labels.
func (s *Store) CountLabelsOnDate(date string) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM labels WHERE date = ?`, date).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count labels on %s: %w", date, err)
	}
	return n, nil
}

// NextStackPosition returns where a new label on date should land: below any
// labels already there.
func (s *Store) NextStackPosition(date string) (top, left float64, err error) {
	n, err := s.CountLabelsOnDate(date)
	if err != nil {
		return 0, 0, err
	}
	return StackBase + float64(n)*StackRowHeight, StackBase, nil
}

// UpdateLabel rewrites a label's text and style. Unknown ids are a no-op:
// the UI may race a delete with a pending edit.
func (s *Store) UpdateLabel(id int64, text string, style Style) error {
	style = style.Normalized()
	_, err := s.db.Exec(
		`UPDATE labels SET text = ?, color = ?, background = ?, font_size = ?, font_weight = ?, font_style = ? WHERE id = ?`,
		text, style.Color, style.BackgroundColor, style.FontSize,
		style.FontWeight, style.FontStyle, id,
	)
	return err
}

// MoveLabel reassigns a label's date and container offsets, clamping the
// offsets to zero. Unknown ids are a no-op.
func (s *Store) MoveLabel(id int64, date string, top, left float64) error {
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	_, err := s.db.Exec(
		`UPDATE labels SET date = ?, top_offset = ?, left_offset = ? WHERE id = ?`,
		date, top, left, id,
	)
	return err
}

// DeleteLabel removes a label. Unknown ids are a no-op.
func (s *Store) DeleteLabel(id int64) error {
	_, err := s.db.Exec(`DELETE FROM labels WHERE id = ?`, id)
	return err
}

// insertLabelWithID restores a label keeping its original id; used by
// Restore so imported data round-trips exactly.
func (s *Store) insertLabelWithID(tx *sql.Tx, l Label) error {
	style := l.Style.Normalized()
	top, left := l.Top, l.Left
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	_, err := tx.Exec(
		`INSERT INTO labels (id, date, text, top_offset, left_offset, color, background, font_size, font_weight, font_style)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.Date, l.Text, top, left, style.Color, style.BackgroundColor,
		style.FontSize, style.FontWeight, style.FontStyle,
	)
	return err
}
