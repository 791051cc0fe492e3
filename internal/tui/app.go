package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/daymark/internal/drag"
	"github.com/sadopc/daymark/internal/editor"
	"github.com/sadopc/daymark/internal/export"
	"github.com/sadopc/daymark/internal/grid"
	"github.com/sadopc/daymark/internal/store"
)

const (
	minFontSize = 10
	maxFontSize = 24
)

// App is the root model: one month board, the editing session, and the
// overlays layered on top of it.
type App struct {
	store *store.Store
	ed    *editor.Editor

	width  int
	height int

	year  int
	month time.Month
	today time.Time

	days      []grid.Day
	labels    map[string][]store.Label
	templates []store.Template
	currentID string

	cells      []cellGeom
	labelGeoms []labelGeom
	cursor     int // day cursor, index into days

	input textinput.Model

	gesture  *drag.Gesture
	dragPos  drag.Point
	hoverKey string
	wheeling bool

	pickerOpen   bool
	pickerYear   int
	pickerCursor int

	recallCursor int

	statsOpen bool

	formActive bool
	form       *huh.Form
	formType   string // "export", "import", "clear"

	// Form field pointers (survive value copies)
	formID      *string
	formFormat  *string
	formPath    *string
	formConfirm *bool

	help      help.Model
	showHelp  bool
	status    string
	statusErr bool
}

func NewApp(s *store.Store) (App, error) {
	ed, err := editor.New(s)
	if err != nil {
		return App{}, err
	}

	now := time.Now()
	year, month := grid.MonthOf(now)

	ti := textinput.New()
	ti.Placeholder = store.PlaceholderText
	ti.CharLimit = 120
	ti.Prompt = ""

	id, fm, path, confirm := "", "JSON", "", false
	a := App{
		store:       s,
		ed:          ed,
		year:        year,
		month:       month,
		today:       now,
		labels:      make(map[string][]store.Label),
		input:       ti,
		formID:      &id,
		formFormat:  &fm,
		formPath:    &path,
		formConfirm: &confirm,
		help:        help.New(),
	}
	a.days = grid.Days(year, month, now)
	a.cursor = a.firstInMonth()
	return a, nil
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadBoard(), textinput.Blink)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.reflow()
		return a, nil

	case boardDataMsg:
		// Data reloads double as the today-marker refresh so a session
		// left running across midnight does not highlight yesterday.
		a.today = time.Now()
		a.days = grid.Days(a.year, a.month, a.today)
		a.labels = msg.labels
		a.templates = msg.templates
		a.currentID = msg.currentID
		if a.recallCursor >= len(a.templates) {
			a.recallCursor = max(0, len(a.templates)-1)
		}
		a.reflow()
		return a, nil

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		return a, nil

	case importedMsg:
		a.status = fmt.Sprintf("Imported %q (%d labels)", msg.id, msg.labels)
		a.statusErr = false
		return a, a.loadBoard()

	case clearedMsg:
		a.status = "Started a new calendar"
		a.statusErr = false
		return a, a.loadBoard()

	case wheelResetMsg:
		a.wheeling = false
		return a, nil

	case tea.MouseMsg:
		if a.formActive {
			return a, nil
		}
		return a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.formActive && a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.formActive {
		return a.updateForm(msg)
	}
	if a.statsOpen {
		return a.updateStats(msg)
	}
	if a.pickerOpen {
		return a.updatePicker(msg)
	}
	if a.ed.RecallOpen() {
		return a.updateRecall(msg)
	}
	if _, editing := a.ed.Editing(); editing {
		return a.updateSession(msg)
	}
	return a.updateBoard(msg)
}

func (a App) overlayActive() bool {
	return a.formActive || a.pickerOpen || a.statsOpen || a.ed.RecallOpen()
}

// --- Editing session ---

func (a App) updateSession(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Commit):
		if err := a.ed.Commit(); err != nil {
			return a, errStatus("save label", err)
		}
		a.input.Blur()
		a.reflow()
		return a, a.loadBoard()

	case key.Matches(msg, keys.Back):
		a.ed.Cancel()
		a.input.Blur()
		a.reflow()
		return a, nil

	case key.Matches(msg, keys.Delete):
		if err := a.ed.Delete(); err != nil {
			return a, errStatus("delete label", err)
		}
		if _, editing := a.ed.Editing(); editing {
			// Delete is a no-op for an uncommitted label; keep typing.
			return a, nil
		}
		a.input.Blur()
		a.reflow()
		return a, a.loadBoard()

	case key.Matches(msg, keys.Duplicate):
		if err := a.ed.Copy(); err != nil {
			return a, errStatus("copy label", err)
		}
		a.status = "Label copied"
		a.statusErr = false
		return a, nil

	case key.Matches(msg, keys.Paste):
		if !a.ed.CanPaste() {
			a.status = "Clipboard is empty"
			a.statusErr = false
			return a, nil
		}
		a.ed.Paste()
		a.syncInput()
		return a, nil

	case key.Matches(msg, keys.Template):
		tpl, err := a.ed.SaveTemplate()
		if err != nil {
			return a, errStatus("save template", err)
		}
		a.input.Blur()
		a.reflow()
		if tpl != nil {
			a.status = fmt.Sprintf("Template %q saved", tpl.Text)
			a.statusErr = false
		}
		return a, a.loadBoard()

	case key.Matches(msg, keys.Recall):
		a.ed.OpenRecall()
		a.recallCursor = 0
		if len(a.templates) > 0 {
			a.ed.SelectTemplate(a.templates[0].ID)
		}
		return a, nil
	}

	if a2, handled, cmd := a.handleStyleKey(msg); handled {
		return a2, cmd
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.ed.SetText(a.input.Value())
	return a, cmd
}

// handleStyleKey runs the decoration controls. They act on the session
// while one is open and on the persisted default style otherwise.
func (a App) handleStyleKey(msg tea.KeyMsg) (App, bool, tea.Cmd) {
	st := a.ed.ActiveStyle()
	var err error
	switch {
	case key.Matches(msg, keys.Bold):
		err = a.ed.ToggleBold()
	case key.Matches(msg, keys.Italic):
		err = a.ed.ToggleItalic()
	case key.Matches(msg, keys.SizeUp):
		err = a.ed.SetFontSize(stepFontSize(st.FontSize, 1))
	case key.Matches(msg, keys.SizeDown):
		err = a.ed.SetFontSize(stepFontSize(st.FontSize, -1))
	case key.Matches(msg, keys.TextColor):
		err = a.ed.SetColor(nextInPalette(textColors, st.Color))
	case key.Matches(msg, keys.BgColor):
		err = a.ed.SetBackground(nextInPalette(labelColors, st.BackgroundColor))
	default:
		return a, false, nil
	}
	if err != nil {
		return a, true, errStatus("update style", err)
	}
	a.reflow()
	return a, true, nil
}

func stepFontSize(v string, delta int) string {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		n = 13
	}
	n += delta
	if n < minFontSize {
		n = minFontSize
	}
	if n > maxFontSize {
		n = maxFontSize
	}
	return strconv.Itoa(n)
}

// --- Idle board ---

func (a App) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Help):
		a.showHelp = !a.showHelp
		a.help.ShowAll = a.showHelp
		return a, nil

	case key.Matches(msg, keys.Up):
		return a.moveCursor(-7), nil
	case key.Matches(msg, keys.Down):
		return a.moveCursor(7), nil
	case key.Matches(msg, keys.Left):
		return a.moveCursor(-1), nil
	case key.Matches(msg, keys.Right):
		return a.moveCursor(1), nil

	case key.Matches(msg, keys.Add):
		d := a.days[a.cursor]
		if d.OtherMonth {
			return a.gotoMonth(grid.MonthOf(d.Date))
		}
		return a.clickCell(d.Key)

	case key.Matches(msg, keys.Edit):
		d := a.days[a.cursor]
		if ls := a.labels[d.Key]; len(ls) > 0 {
			return a.clickLabel(ls[0].ID)
		}
		a.status = "No labels on " + d.Key
		a.statusErr = false
		return a, nil

	case key.Matches(msg, keys.PrevMonth):
		return a.gotoMonth(grid.AddMonths(a.year, a.month, -1))
	case key.Matches(msg, keys.NextMonth):
		return a.gotoMonth(grid.AddMonths(a.year, a.month, 1))
	case key.Matches(msg, keys.Today):
		return a.gotoMonth(grid.MonthOf(time.Now()))

	case key.Matches(msg, keys.Picker):
		a.pickerOpen = true
		a.pickerYear = a.year
		a.pickerCursor = int(a.month) - 1
		return a, nil

	case key.Matches(msg, keys.Stats):
		a.statsOpen = true
		return a, nil

	case key.Matches(msg, keys.New):
		return a.openClearForm()
	case key.Matches(msg, keys.Export):
		return a.openExportForm()
	case key.Matches(msg, keys.Import):
		return a.openImportForm()
	}

	if a2, handled, cmd := a.handleStyleKey(msg); handled {
		return a2, cmd
	}
	return a, nil
}

func (a App) moveCursor(delta int) App {
	next := a.cursor + delta
	if next >= 0 && next < len(a.days) {
		a.cursor = next
	}
	return a
}

func (a App) firstInMonth() int {
	for i, d := range a.days {
		if !d.OtherMonth {
			return i
		}
	}
	return 0
}

// --- Month navigation ---

func (a App) gotoMonth(year int, month time.Month) (tea.Model, tea.Cmd) {
	a.ed.Cancel()
	a.input.Blur()
	a.year = year
	a.month = month
	a.today = time.Now()
	a.days = grid.Days(year, month, a.today)
	a.cursor = a.firstInMonth()
	a.gesture = nil
	a.hoverKey = ""
	a.reflow()
	return a, a.loadBoard()
}

// stepMonth is the scroll-wheel path; a cooldown keeps one physical scroll
// from skipping several months.
func (a App) stepMonth(delta int) (tea.Model, tea.Cmd) {
	if a.wheeling {
		return a, nil
	}
	a.wheeling = true
	y, m := grid.AddMonths(a.year, a.month, delta)
	model, cmd := a.gotoMonth(y, m)
	reset := tea.Tick(wheelCooldown, func(time.Time) tea.Msg { return wheelResetMsg{} })
	return model, tea.Batch(cmd, reset)
}

// syncInput mirrors the session text into the input widget.
func (a *App) syncInput() {
	if sess, ok := a.ed.Editing(); ok {
		a.input.SetValue(sess.Text)
		a.input.CursorEnd()
		a.input.Focus()
	} else {
		a.input.Blur()
	}
}

// --- Forms ---

func (a App) openExportForm() (tea.Model, tea.Cmd) {
	*a.formID = a.currentID
	*a.formFormat = "JSON"
	a.formType = "export"
	a.formActive = true
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Calendar ID").
				Description("Used as the export file name").
				Value(a.formID).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("enter a calendar ID first")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Format").
				Options(huh.NewOption("JSON", "JSON"), huh.NewOption("CSV", "CSV")).
				Value(a.formFormat),
		),
	)
	return a, a.form.Init()
}

func (a App) openImportForm() (tea.Model, tea.Cmd) {
	*a.formPath = ""
	a.formType = "import"
	a.formActive = true
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Import file").
				Description("Path to a calendar JSON file").
				Value(a.formPath),
		),
	)
	return a, a.form.Init()
}

func (a App) openClearForm() (tea.Model, tea.Cmd) {
	*a.formConfirm = false
	a.formType = "clear"
	a.formActive = true
	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Start a new calendar?").
				Description("All labels and the working ID are removed. Templates go too.").
				Affirmative("Clear everything").
				Negative("Keep my data").
				Value(a.formConfirm),
		),
	)
	return a, a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			a.formActive = false
			a.form = nil
			return a, nil
		}
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateAborted {
		a.formActive = false
		a.form = nil
		return a, nil
	}
	if a.form.State != huh.StateCompleted {
		return a, cmd
	}

	a.formActive = false
	switch a.formType {
	case "export":
		return a, a.doExport(strings.TrimSpace(*a.formID), *a.formFormat)
	case "import":
		path := strings.TrimSpace(*a.formPath)
		if path == "" {
			return a, nil
		}
		return a, a.doImport(path)
	case "clear":
		if *a.formConfirm {
			a.ed.Cancel()
			a.input.Blur()
			return a, a.doClear()
		}
	}
	a.form = nil
	return a, nil
}

func (a App) doExport(id, format string) tea.Cmd {
	return func() tea.Msg {
		if err := a.store.SetCurrentID(id); err != nil {
			return statusMsg{text: fmt.Sprintf("set calendar id: %v", err), isError: true}
		}
		snap, err := a.store.Snapshot()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("read data: %v", err), isError: true}
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("export: %v", err), isError: true}
		}
		path := export.ExportPath(home, id, time.Now())
		if format == "CSV" {
			path = strings.TrimSuffix(path, ".json") + ".csv"
			err = export.ToCSV(snap, path)
		} else {
			err = export.Save(snap, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("export: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (a App) doImport(path string) tea.Cmd {
	return func() tea.Msg {
		snap, err := export.Load(path)
		if err != nil {
			// Nothing was touched; the current calendar stands.
			return statusMsg{text: fmt.Sprintf("import: %v", err), isError: true}
		}
		if err := a.store.Restore(snap); err != nil {
			return statusMsg{text: fmt.Sprintf("import: %v", err), isError: true}
		}
		return importedMsg{id: snap.CurrentID, labels: len(snap.Labels)}
	}
}

func (a App) doClear() tea.Cmd {
	return func() tea.Msg {
		if err := a.store.Clear(); err != nil {
			return statusMsg{text: fmt.Sprintf("clear: %v", err), isError: true}
		}
		return clearedMsg{}
	}
}

func errStatus(verb string, err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("%s: %v", verb, err), isError: true}
	}
}

// --- View ---

func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	if a.formActive && a.form != nil {
		return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
			panelStyle.Render(a.form.View()))
	}
	if a.statsOpen {
		return a.renderStats()
	}
	if a.pickerOpen {
		return a.renderPicker()
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	b.WriteString(a.renderDecoBar())
	b.WriteString("\n")
	if _, editing := a.ed.Editing(); editing {
		b.WriteString(a.renderEditBar())
		b.WriteString("\n")
	}
	b.WriteString(a.renderBoard())
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	base := b.String()
	if a.ed.RecallOpen() {
		return a.overlayRecall(base)
	}
	return base
}

func (a App) renderHeader() string {
	title := titleStyle.Render(" daymark ")
	month := headerStyle.Render(fmt.Sprintf("%s %d", a.month, a.year))
	nav := mutedStyle.Render(" pgup/pgdn ")
	id := ""
	if a.currentID != "" {
		id = mutedStyle.Render("id: ") + highlightStyle.Render(a.currentID)
	} else {
		id = mutedStyle.Render("no calendar id")
	}
	left := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", month, nav)
	gap := a.width - lipgloss.Width(left) - lipgloss.Width(id) - 1
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + id
}

// renderDecoBar shows the decoration controls: the style the next edit
// would use, session or default.
func (a App) renderDecoBar() string {
	st := a.ed.ActiveStyle()

	swatch := func(hexVal string) string {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(safeHex(hexVal, "#FFFFFF"))).Render("■")
	}
	flag := func(on bool, label string) string {
		if on {
			return highlightStyle.Render(label)
		}
		return mutedStyle.Render(label)
	}

	parts := []string{
		mutedStyle.Render("style:"),
		swatch(st.Color) + mutedStyle.Render(" text"),
		swatch(st.BackgroundColor) + mutedStyle.Render(" fill"),
		mutedStyle.Render("size ") + highlightStyle.Render(st.FontSize),
		flag(st.FontWeight == "bold", "B"),
		flag(st.FontStyle == "italic", "I"),
	}
	if _, editing := a.ed.Editing(); !editing {
		parts = append(parts, mutedStyle.Render("(defaults)"))
	}
	if a.ed.CanPaste() {
		parts = append(parts, mutedStyle.Render("· clipboard filled"))
	}
	return " " + strings.Join(parts, "  ")
}

func (a App) renderEditBar() string {
	sess, ok := a.ed.Editing()
	if !ok {
		return ""
	}
	verb := "edit"
	if sess.Kind == editor.KindNew {
		verb = "new"
	}
	tag := warningStyle.Render(fmt.Sprintf(" %s %s ", verb, sess.Date))
	hint := mutedStyle.Render("  enter save · esc cancel · ctrl+t template · ctrl+r recall")
	return tag + " " + a.input.View() + hint
}

func (a App) renderFooter() string {
	if a.status != "" {
		st := successStyle
		if a.statusErr {
			st = errorStyle
		}
		return st.Render(" "+a.status) + "\n" + footerStyle.Render(a.help.View(keys))
	}
	if a.gesture != nil && a.gesture.Moved {
		target := "release over a day to move it"
		if a.hoverKey != "" {
			target = "release to move it to " + a.hoverKey
		}
		return warningStyle.Render(" dragging label, "+target) + "\n" +
			footerStyle.Render(a.help.View(keys))
	}
	return "\n" + footerStyle.Render(a.help.View(keys))
}
