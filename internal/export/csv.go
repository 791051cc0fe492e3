package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/daymark/internal/store"
)

// ToCSV writes the snapshot's labels as a flat CSV, one row per label.
// CSV is a one-way convenience export; import only accepts JSON.
func ToCSV(snap store.Snapshot, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Text", "Top", "Left", "Color", "Background", "Font Size", "Weight", "Style"}); err != nil {
		return err
	}

	for _, l := range snap.Labels {
		row := []string{
			fmt.Sprintf("%d", l.ID),
			l.Date,
			l.Text,
			fmt.Sprintf("%g", l.Top),
			fmt.Sprintf("%g", l.Left),
			l.Style.Color,
			l.Style.BackgroundColor,
			l.Style.FontSize,
			l.Style.FontWeight,
			l.Style.FontStyle,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
