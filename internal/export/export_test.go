package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/daymark/internal/store"
)

func sampleSnapshot() store.Snapshot {
	bold := store.DefaultStyle()
	bold.FontWeight = "bold"

	return store.Snapshot{
		Labels: []store.Label{
			{ID: 1, Date: "2024-02-01", Text: "standup", Top: 5, Left: 5, Style: store.DefaultStyle()},
			{ID: 2, Date: "2024-02-01", Text: "review", Top: 33, Left: 5, Style: bold},
			{ID: 7, Date: "2024-02-14", Text: "dinner", Top: 5, Left: 12, Style: store.DefaultStyle()},
		},
		Templates: []store.Template{
			{ID: 3, Text: "weekly", Style: bold},
		},
		CurrentID: "team-plan",
	}
}

// ============================================================
// JSON round trip
// ============================================================

func TestSaveLoadRoundTrip(t *testing.T) {
	snap := sampleSnapshot()
	path := filepath.Join(t.TempDir(), "team-plan.json")

	if err := Save(snap, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(got.Labels) != len(snap.Labels) {
		t.Fatalf("expected %d labels, got %d", len(snap.Labels), len(got.Labels))
	}
	for i := range snap.Labels {
		if got.Labels[i] != snap.Labels[i] {
			t.Fatalf("label %d differs: %+v vs %+v", i, got.Labels[i], snap.Labels[i])
		}
	}
	if len(got.Templates) != 1 || got.Templates[0] != snap.Templates[0] {
		t.Fatalf("templates differ: %+v", got.Templates)
	}
	// The id comes from the filename, not the file contents.
	if got.CurrentID != "team-plan" {
		t.Fatalf("expected id team-plan, got %q", got.CurrentID)
	}
}

func TestSaveEmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := Save(store.Snapshot{}, path); err != nil {
		t.Fatal(err)
	}

	// Empty collections serialize as [], not null.
	data, _ := os.ReadFile(path)
	s := string(data)
	if !strings.Contains(s, `"labels": []`) || !strings.Contains(s, `"templates": []`) {
		t.Fatalf("expected empty arrays, got:\n%s", s)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Labels) != 0 || len(got.Templates) != 0 {
		t.Fatalf("unexpected contents: %+v", got)
	}
}

func TestSaveDoesNotWriteCurrentID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	if err := Save(sampleSnapshot(), path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "currentId") {
		t.Fatal("export files must not embed the working identifier")
	}
}

// ============================================================
// Legacy and malformed inputs
// ============================================================

func TestDecodeLegacyBareArray(t *testing.T) {
	data := []byte(`[
		{"id": 1706745600000, "date": "2024-02-01", "text": "old label", "top": 5, "left": 5,
		 "style": {"color": "#333333", "backgroundColor": "#fffbe6", "fontSize": "13", "fontWeight": "normal", "fontStyle": "normal"}},
		{"id": 1706745600001, "date": "2024-02-02", "text": "second", "top": 33, "left": 5,
		 "style": {"color": "#222222", "backgroundColor": "#ffffff", "fontSize": "15", "fontWeight": "bold", "fontStyle": "italic"}}
	]`)

	snap, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode legacy: %v", err)
	}
	if len(snap.Labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(snap.Labels))
	}
	if len(snap.Templates) != 0 {
		t.Fatal("legacy files carry no templates")
	}
	l := snap.Labels[0]
	if l.ID != 1706745600000 || l.Date != "2024-02-01" || l.Text != "old label" || l.Top != 5 || l.Left != 5 {
		t.Fatalf("label fields not preserved: %+v", l)
	}
	if snap.Labels[1].Style.FontWeight != "bold" || snap.Labels[1].Style.FontStyle != "italic" {
		t.Fatalf("style not preserved: %+v", snap.Labels[1].Style)
	}
}

func TestDecodeObjectWithoutTemplates(t *testing.T) {
	data := []byte(`{"labels": [{"id": 1, "date": "2024-02-01", "text": "x", "top": 0, "left": 0,
		"style": {"color": "#333333", "backgroundColor": "#fffbe6", "fontSize": "13", "fontWeight": "normal", "fontStyle": "normal"}}]}`)

	snap, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Labels) != 1 || len(snap.Templates) != 0 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestDecodePartialStyleNormalized(t *testing.T) {
	data := []byte(`[{"id": 1, "date": "2024-02-01", "text": "x", "top": 0, "left": 0,
		"style": {"color": "#111111"}}]`)

	snap, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	st := snap.Labels[0].Style
	if st.Color != "#111111" {
		t.Fatal("set attribute lost")
	}
	if st.BackgroundColor == "" || st.FontSize == "" || st.FontWeight == "" || st.FontStyle == "" {
		t.Fatalf("partial style not normalized: %+v", st)
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []string{
		`not json at all`,
		`{"nope": true}`,
		`{"labels": "wrong type"}`,
		`42`,
		`null`,
		``,
	}
	for _, c := range cases {
		if _, err := Decode([]byte(c)); err == nil {
			t.Errorf("Decode(%q) should fail", c)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

// ============================================================
// Filenames
// ============================================================

func TestIDFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"plan.json", "plan"},
		{"my.plan.json", "my.plan"},
		{"noext", "noext"},
		{".hidden", ".hidden"},
		{"trailingdot.", "trailingdot"},
	}
	for _, tt := range tests {
		if got := IDFromFilename(tt.name); got != tt.want {
			t.Errorf("IDFromFilename(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestExportPath(t *testing.T) {
	now := time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC)
	got := ExportPath("/tmp/out", "team-plan", now)
	want := filepath.Join("/tmp/out", "team-plan-2024-02-01.json")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.csv")
	if err := ToCSV(sampleSnapshot(), path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 { // header + 3 labels
		t.Fatalf("expected 4 rows, got %d", len(records))
	}
	if records[0][0] != "ID" || records[0][1] != "Date" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][1] != "2024-02-01" || records[1][2] != "standup" {
		t.Fatalf("unexpected first row: %v", records[1])
	}
	if records[2][8] != "bold" {
		t.Fatalf("style column wrong: %v", records[2])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(store.Snapshot{}, path); err != nil {
		t.Fatal(err)
	}
	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}
