package store

// Style is the full set of decoration attributes carried by every label.
// A Style is always fully populated; partial styles never enter the store.
type Style struct {
	Color           string `json:"color"`
	BackgroundColor string `json:"backgroundColor"`
	FontSize        string `json:"fontSize"` // numeric string, e.g. "13"
	FontWeight      string `json:"fontWeight"`
	FontStyle       string `json:"fontStyle"`
}

// DefaultStyle returns the style applied to labels created without any
// decoration edits.
func DefaultStyle() Style {
	return Style{
		Color:           "#333333",
		BackgroundColor: "#fffbe6",
		FontSize:        "13",
		FontWeight:      "normal",
		FontStyle:       "normal",
	}
}

// Normalized fills any blank attribute from the defaults so that styles
// read back from old exports are always complete.
func (s Style) Normalized() Style {
	def := DefaultStyle()
	if s.Color == "" {
		s.Color = def.Color
	}
	if s.BackgroundColor == "" {
		s.BackgroundColor = def.BackgroundColor
	}
	if s.FontSize == "" {
		s.FontSize = def.FontSize
	}
	if s.FontWeight == "" {
		s.FontWeight = def.FontWeight
	}
	if s.FontStyle == "" {
		s.FontStyle = def.FontStyle
	}
	return s
}

// Label is a positioned, styled text annotation attached to one calendar
// day. Top and Left are offsets within that day's label container and are
// never negative.
type Label struct {
	ID    int64   `json:"id"`
	Date  string  `json:"date"` // grid.KeyLayout
	Text  string  `json:"text"`
	Top   float64 `json:"top"`
	Left  float64 `json:"left"`
	Style Style   `json:"style"`
}

// Template is a saved single-label template, recalled into a live editing
// session or applied directly onto a date.
type Template struct {
	ID    int64  `json:"id"`
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// Snapshot is the store reduced to a plain record, used for file
// export/import and for wholesale replacement on import.
type Snapshot struct {
	Labels    []Label    `json:"labels"`
	Templates []Template `json:"templates"`
	CurrentID string     `json:"currentId"`
}

// Stacking constants for labels created on a date: the nth new label lands
// at top = StackBase + n*StackRowHeight, left = StackBase.
const (
	StackBase      = 5.0
	StackRowHeight = 28.0
)

// PlaceholderText seeds new labels and replaces blank text on commit.
const PlaceholderText = "New label"
