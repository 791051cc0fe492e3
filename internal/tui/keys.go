package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add       key.Binding
	Edit      key.Binding
	Commit    key.Binding
	Back      key.Binding
	Delete    key.Binding
	Duplicate key.Binding
	Paste     key.Binding
	Recall    key.Binding
	Template  key.Binding

	Bold      key.Binding
	Italic    key.Binding
	SizeUp    key.Binding
	SizeDown  key.Binding
	TextColor key.Binding
	BgColor   key.Binding

	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Picker    key.Binding
	Stats     key.Binding

	New    key.Binding
	Export key.Binding
	Import key.Binding

	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Help  key.Binding
	Quit  key.Binding
}

var keys = keyMap{
	Add: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "add label"),
	),
	Edit: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "edit labels"),
	),
	Commit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Delete: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "delete"),
	),
	Duplicate: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy"),
	),
	Paste: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "paste"),
	),
	Recall: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "recall template"),
	),
	Template: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "save template"),
	),
	Bold: key.NewBinding(
		key.WithKeys("alt+b"),
		key.WithHelp("alt+b", "bold"),
	),
	Italic: key.NewBinding(
		key.WithKeys("alt+i"),
		key.WithHelp("alt+i", "italic"),
	),
	SizeUp: key.NewBinding(
		key.WithKeys("alt+up"),
		key.WithHelp("alt+↑", "font size +"),
	),
	SizeDown: key.NewBinding(
		key.WithKeys("alt+down"),
		key.WithHelp("alt+↓", "font size -"),
	),
	TextColor: key.NewBinding(
		key.WithKeys("alt+c"),
		key.WithHelp("alt+c", "text color"),
	),
	BgColor: key.NewBinding(
		key.WithKeys("alt+x"),
		key.WithHelp("alt+x", "label color"),
	),
	PrevMonth: key.NewBinding(
		key.WithKeys("pgup", "["),
		key.WithHelp("pgup", "prev month"),
	),
	NextMonth: key.NewBinding(
		key.WithKeys("pgdown", "]"),
		key.WithHelp("pgdn", "next month"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Picker: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pick month"),
	),
	Stats: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "stats"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new calendar"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Import: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "import"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "right"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Export, k.Import, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Edit, k.Commit, k.Back, k.Delete},
		{k.Duplicate, k.Paste, k.Recall, k.Template},
		{k.Bold, k.Italic, k.SizeUp, k.SizeDown, k.TextColor, k.BgColor},
		{k.PrevMonth, k.NextMonth, k.Today, k.Picker, k.Stats},
		{k.New, k.Export, k.Import, k.Quit},
	}
}
