// Package export reads and writes calendar data files: the current JSON
// object shape plus the legacy bare-array shape older exports used.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sadopc/daymark/internal/store"
)

// fileShape is the on-disk export format. currentId is deliberately not
// written; import derives the identifier from the filename instead.
type fileShape struct {
	Labels    []store.Label    `json:"labels"`
	Templates []store.Template `json:"templates"`
}

// Save writes the snapshot's labels and templates to path as indented
// UTF-8 JSON.
func Save(snap store.Snapshot, path string) error {
	shape := fileShape{Labels: snap.Labels, Templates: snap.Templates}
	if shape.Labels == nil {
		shape.Labels = []store.Label{}
	}
	if shape.Templates == nil {
		shape.Templates = []store.Template{}
	}

	data, err := json.MarshalIndent(shape, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	return nil
}

// Decode parses export data in either historical shape: the current
// `{labels, templates?}` object, or the legacy bare label array (which
// carries no templates). Anything else is an error.
func Decode(data []byte) (store.Snapshot, error) {
	var snap store.Snapshot

	// Legacy exports are a bare array of labels.
	if isJSONArray(data) {
		var legacy []store.Label
		if err := json.Unmarshal(data, &legacy); err != nil {
			return store.Snapshot{}, fmt.Errorf("parse export: %w", err)
		}
		snap.Labels = legacy
		return normalize(snap), nil
	}

	var shape struct {
		Labels    []store.Label    `json:"labels"`
		Templates []store.Template `json:"templates"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return store.Snapshot{}, fmt.Errorf("parse export: %w", err)
	}
	if shape.Labels == nil {
		return store.Snapshot{}, fmt.Errorf("parse export: missing labels")
	}
	snap.Labels = shape.Labels
	snap.Templates = shape.Templates
	return normalize(snap), nil
}

func isJSONArray(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// normalize fills partial styles so old files always yield fully populated
// labels and templates.
func normalize(snap store.Snapshot) store.Snapshot {
	for i := range snap.Labels {
		snap.Labels[i].Style = snap.Labels[i].Style.Normalized()
	}
	for i := range snap.Templates {
		snap.Templates[i].Style = snap.Templates[i].Style.Normalized()
	}
	return snap
}

// Load reads and decodes an export file, deriving CurrentID from the
// filename. A failed load leaves the caller's state untouched; it never
// returns a partial snapshot.
func Load(path string) (store.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("read export file: %w", err)
	}
	snap, err := Decode(data)
	if err != nil {
		return store.Snapshot{}, err
	}
	snap.CurrentID = IDFromFilename(filepath.Base(path))
	return snap, nil
}

// IDFromFilename strips the last extension: "plan.json" -> "plan",
// "a.b.json" -> "a.b", ".hidden" -> ".hidden".
func IDFromFilename(name string) string {
	if i := strings.LastIndex(name, "."); i > 0 {
		return name[:i]
	}
	return name
}

// ExportPath derives the export filename from the working identifier plus
// a generation date, so repeated exports do not silently overwrite each
// other.
func ExportPath(dir, id string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s.json", id, now.Format("2006-01-02")))
}
