package store

import "fmt"

// Snapshot reduces the store to a plain record: every label and template in
// insertion order plus the working identifier.
func (s *Store) Snapshot() (Snapshot, error) {
	labels, err := s.ListLabels()
	if err != nil {
		return Snapshot{}, err
	}
	templates, err := s.ListTemplates()
	if err != nil {
		return Snapshot{}, err
	}
	currentID, err := s.CurrentID()
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Labels: labels, Templates: templates, CurrentID: currentID}, nil
}

// Restore replaces the store contents wholesale inside one transaction:
// either the whole snapshot lands or nothing changes. Ids from the snapshot
// are preserved so a Snapshot/Restore round-trip is lossless, and the id
// sequence is advanced past the highest restored id.
func (s *Store) Restore(snap Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM labels`); err != nil {
		return fmt.Errorf("clear labels: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM templates`); err != nil {
		return fmt.Errorf("clear templates: %w", err)
	}

	for _, l := range snap.Labels {
		if err := s.insertLabelWithID(tx, l); err != nil {
			return fmt.Errorf("restore label %d: %w", l.ID, err)
		}
	}
	for _, t := range snap.Templates {
		if err := s.insertTemplateWithID(tx, t); err != nil {
			return fmt.Errorf("restore template %d: %w", t.ID, err)
		}
	}
	if _, err := tx.Exec(
		`INSERT INTO settings (key, value) VALUES ('current_id', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		snap.CurrentID,
	); err != nil {
		return fmt.Errorf("restore current id: %w", err)
	}

	return tx.Commit()
}

// Clear removes every label and template and resets the working identifier.
func (s *Store) Clear() error {
	return s.Restore(Snapshot{})
}
