package store

import (
	"database/sql"
	"errors"
	"fmt"
)

const templateColumns = `id, text, color, background, font_size, font_weight, font_style`

func scanTemplate(row interface{ Scan(...any) error }) (Template, error) {
	var t Template
	err := row.Scan(&t.ID, &t.Text,
		&t.Style.Color, &t.Style.BackgroundColor, &t.Style.FontSize,
		&t.Style.FontWeight, &t.Style.FontStyle)
	return t, err
}

// CreateTemplate saves text and style as a reusable template.
func (s *Store) CreateTemplate(text string, style Style) (*Template, error) {
	style = style.Normalized()
	res, err := s.db.Exec(
		`INSERT INTO templates (text, color, background, font_size, font_weight, font_style)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		text, style.Color, style.BackgroundColor, style.FontSize,
		style.FontWeight, style.FontStyle,
	)
	if err != nil {
		return nil, fmt.Errorf("insert template: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetTemplate(id)
}

// SaveAsTemplate snapshots an existing label as a template. The template
// copies the label's text and style; later edits to either side do not
// affect the other.
func (s *Store) SaveAsTemplate(labelID int64) (*Template, error) {
	l, err := s.GetLabel(labelID)
	if err != nil {
		return nil, err
	}
	return s.CreateTemplate(l.Text, l.Style)
}

func (s *Store) GetTemplate(id int64) (*Template, error) {
	row := s.db.QueryRow(`SELECT `+templateColumns+` FROM templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if err != nil {
		return nil, fmt.Errorf("get template %d: %w", id, err)
	}
	return &t, nil
}

// ListTemplates returns every template in creation order.
func (s *Store) ListTemplates() ([]Template, error) {
	rows, err := s.db.Query(`SELECT ` + templateColumns + ` FROM templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// DeleteTemplate removes a template. Unknown ids are a no-op.
func (s *Store) DeleteTemplate(id int64) error {
	_, err := s.db.Exec(`DELETE FROM templates WHERE id = ?`, id)
	return err
}

// ApplyTemplate clones a template onto a date as a fresh label with its own
// id, stacked below any labels already there. Applying an unknown template
// is a no-op and returns no label.
func (s *Store) ApplyTemplate(templateID int64, date string) (*Label, error) {
	t, err := s.GetTemplate(templateID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	top, left, err := s.NextStackPosition(date)
	if err != nil {
		return nil, err
	}
	return s.InsertLabel(date, t.Text, top, left, t.Style)
}

// insertTemplateWithID restores a template keeping its original id.
func (s *Store) insertTemplateWithID(tx *sql.Tx, t Template) error {
	style := t.Style.Normalized()
	_, err := tx.Exec(
		`INSERT INTO templates (id, text, color, background, font_size, font_weight, font_style)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Text, style.Color, style.BackgroundColor, style.FontSize,
		style.FontWeight, style.FontStyle,
	)
	return err
}
