// Package editor implements the label editing session state machine: at
// most one label is ever being created or modified, with a clipboard, a
// process-wide default style, and a template recall sub-dialog.
package editor

import (
	"strings"

	"github.com/sadopc/daymark/internal/store"
)

// Kind distinguishes a session creating a new label from one editing an
// existing label.
type Kind int

const (
	KindNew Kind = iota
	KindExisting
)

// Session is the transient editing context for exactly one label. Its
// Style is always a value copy; edits never touch a stored label until
// Commit.
type Session struct {
	Kind  Kind
	ID    int64 // set for KindExisting
	Date  string
	Text  string
	Top   float64
	Left  float64
	Style store.Style
}

// Clip is the copy/paste snapshot. Paste always hands out copies.
type Clip struct {
	Text  string
	Style store.Style
}

// Editor owns the single live session, the clipboard, the default style,
// and the recall dialog state. All label mutations flow through the store.
type Editor struct {
	store *store.Store

	session      *Session
	clipboard    *Clip
	defaultStyle store.Style

	recallOpen       bool
	selectedTemplate int64 // 0 = nothing selected
}

// New creates an editor bound to s, loading the persisted default style.
func New(s *store.Store) (*Editor, error) {
	style, err := s.LoadDefaultStyle()
	if err != nil {
		return nil, err
	}
	return &Editor{store: s, defaultStyle: style}, nil
}

// Editing returns a copy of the live session, if any.
func (e *Editor) Editing() (Session, bool) {
	if e.session == nil {
		return Session{}, false
	}
	return *e.session, true
}

// DefaultStyle returns the current process-wide default style.
func (e *Editor) DefaultStyle() store.Style {
	return e.defaultStyle
}

// ActiveStyle is what the decoration controls should display: the session's
// style while editing, the default style otherwise.
func (e *Editor) ActiveStyle() store.Style {
	if e.session != nil {
		return e.session.Style
	}
	return e.defaultStyle
}

// ClickCell starts a new-label session on a date. Any session already open
// is implicitly cancelled first; there is never more than one.
func (e *Editor) ClickCell(date string) error {
	e.discard()
	top, left, err := e.store.NextStackPosition(date)
	if err != nil {
		return err
	}
	e.session = &Session{
		Kind:  KindNew,
		Date:  date,
		Text:  store.PlaceholderText,
		Top:   top,
		Left:  left,
		Style: e.defaultStyle,
	}
	return nil
}

// ClickLabel opens an editing session on an existing label. Clicking the
// label already being edited is a no-op; clicking a different one cancels
// the first. An unknown id leaves the editor idle.
func (e *Editor) ClickLabel(id int64) error {
	if e.session != nil && e.session.Kind == KindExisting && e.session.ID == id {
		return nil
	}
	e.discard()
	l, err := e.store.GetLabel(id)
	if err != nil {
		// Label raced away under us; treat as a click on nothing.
		return nil
	}
	e.session = &Session{
		Kind:  KindExisting,
		ID:    l.ID,
		Date:  l.Date,
		Text:  l.Text,
		Top:   l.Top,
		Left:  l.Left,
		Style: l.Style,
	}
	return nil
}

// SetText replaces the session text. No session, no effect.
func (e *Editor) SetText(text string) {
	if e.session != nil {
		e.session.Text = text
	}
}

// styleTarget returns the style the decoration controls act on and a flag
// for whether that is the persisted default.
func (e *Editor) styleTarget() (*store.Style, bool) {
	if e.session != nil {
		return &e.session.Style, false
	}
	return &e.defaultStyle, true
}

func (e *Editor) setStyle(mutate func(*store.Style)) error {
	target, isDefault := e.styleTarget()
	mutate(target)
	if isDefault {
		return e.store.SaveDefaultStyle(e.defaultStyle)
	}
	return nil
}

// SetColor sets the text color of the session style, or of the default
// style when idle.
func (e *Editor) SetColor(c string) error {
	return e.setStyle(func(s *store.Style) { s.Color = c })
}

// SetBackground sets the label background color.
func (e *Editor) SetBackground(c string) error {
	return e.setStyle(func(s *store.Style) { s.BackgroundColor = c })
}

// SetFontSize passes the numeric string through unmodified.
func (e *Editor) SetFontSize(v string) error {
	return e.setStyle(func(s *store.Style) { s.FontSize = v })
}

// ToggleBold flips between exactly "normal" and "bold".
func (e *Editor) ToggleBold() error {
	return e.setStyle(func(s *store.Style) {
		if s.FontWeight == "bold" {
			s.FontWeight = "normal"
		} else {
			s.FontWeight = "bold"
		}
	})
}

// ToggleItalic flips between exactly "normal" and "italic".
func (e *Editor) ToggleItalic() error {
	return e.setStyle(func(s *store.Style) {
		if s.FontStyle == "italic" {
			s.FontStyle = "normal"
		} else {
			s.FontStyle = "italic"
		}
	})
}

// Commit persists the session: a new session inserts a label (blank text
// falls back to the placeholder), an existing session writes text and style
// back by id. The session ends either way. Idle commit is a no-op.
func (e *Editor) Commit() error {
	s := e.session
	if s == nil {
		return nil
	}
	defer e.discard()

	switch s.Kind {
	case KindNew:
		text := strings.TrimSpace(s.Text)
		if text == "" {
			text = store.PlaceholderText
		}
		_, err := e.store.InsertLabel(s.Date, text, s.Top, s.Left, s.Style)
		return err
	default:
		return e.store.UpdateLabel(s.ID, strings.TrimSpace(s.Text), s.Style)
	}
}

// Cancel discards the session without persisting anything.
func (e *Editor) Cancel() {
	e.discard()
}

// Delete removes the label under an existing-label session and ends it.
// Any other state is a no-op.
func (e *Editor) Delete() error {
	if e.session == nil || e.session.Kind != KindExisting {
		return nil
	}
	id := e.session.ID
	e.discard()
	return e.store.DeleteLabel(id)
}

// Copy snapshots the stored label's text and style into the clipboard. The
// session stays open. Only meaningful while editing an existing label.
func (e *Editor) Copy() error {
	if e.session == nil || e.session.Kind != KindExisting {
		return nil
	}
	l, err := e.store.GetLabel(e.session.ID)
	if err != nil {
		return nil
	}
	e.clipboard = &Clip{Text: l.Text, Style: l.Style}
	return nil
}

// CanPaste reports whether the clipboard holds a snapshot.
func (e *Editor) CanPaste() bool {
	return e.clipboard != nil
}

// Paste replaces the session's text and style with clipboard copies and
// keeps the session open for further edits. Requires both a session and a
// non-empty clipboard.
func (e *Editor) Paste() {
	if e.session == nil || e.clipboard == nil {
		return
	}
	e.session.Text = e.clipboard.Text
	e.session.Style = e.clipboard.Style
}

// SaveTemplate stores the session's current text and style as a template,
// then ends the session without committing the pending label edits.
func (e *Editor) SaveTemplate() (*store.Template, error) {
	if e.session == nil || e.session.Kind != KindExisting {
		return nil, nil
	}
	text := strings.TrimSpace(e.session.Text)
	style := e.session.Style
	e.discard()
	return e.store.CreateTemplate(text, style)
}

// OpenRecall opens the template list sub-dialog. Requires a session.
func (e *Editor) OpenRecall() {
	if e.session == nil {
		return
	}
	e.recallOpen = true
	e.selectedTemplate = 0
}

// RecallOpen reports whether the template list is showing.
func (e *Editor) RecallOpen() bool {
	return e.recallOpen
}

// SelectTemplate highlights a template in the open dialog.
func (e *Editor) SelectTemplate(id int64) {
	if e.recallOpen {
		e.selectedTemplate = id
	}
}

// SelectedTemplate returns the highlighted template id, 0 for none.
func (e *Editor) SelectedTemplate() int64 {
	return e.selectedTemplate
}

// ConfirmRecall applies the selected template's text and style onto the
// current session (not the stored label) and closes the dialog. With no
// selection, or a template that raced away, it just closes.
func (e *Editor) ConfirmRecall() error {
	defer e.closeRecall()
	if e.session == nil || e.selectedTemplate == 0 {
		return nil
	}
	t, err := e.store.GetTemplate(e.selectedTemplate)
	if err != nil {
		return nil
	}
	e.session.Text = t.Text
	e.session.Style = t.Style
	return nil
}

// CancelRecall closes the dialog without touching the session.
func (e *Editor) CancelRecall() {
	e.closeRecall()
}

// DeleteTemplate removes a template from inside the dialog. Always safe.
func (e *Editor) DeleteTemplate(id int64) error {
	if e.selectedTemplate == id {
		e.selectedTemplate = 0
	}
	return e.store.DeleteTemplate(id)
}

func (e *Editor) closeRecall() {
	e.recallOpen = false
	e.selectedTemplate = 0
}

func (e *Editor) discard() {
	e.session = nil
	e.closeRecall()
}
