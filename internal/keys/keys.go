// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Focus
	NextInput key.Binding
	PrevInput key.Binding

	// Actions
	Run   key.Binding
	Clear key.Binding
	Copy  key.Binding
	Theme key.Binding

	// Result panes
	ScrollSummaryUp   key.Binding
	ScrollSummaryDown key.Binding

	// General
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding

	// Logs toggles the log overlay; only active with --debug.
	Logs key.Binding
}

// DefaultKeyMap returns the default keybindings. Printable keys are left to
// the inputs: "?" is a quantifier, so help lives on f1.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Focus
		NextInput: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next input"),
		),
		PrevInput: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous input"),
		),

		// Actions
		Run: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "run now"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy translation"),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle theme"),
		),

		// Result panes
		ScrollSummaryUp: key.NewBinding(
			key.WithKeys("alt+up", "ctrl+u"),
			key.WithHelp("ctrl+u", "scroll matches up"),
		),
		ScrollSummaryDown: key.NewBinding(
			key.WithKeys("alt+down", "ctrl+d"),
			key.WithHelp("ctrl+d", "scroll matches down"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("f1", "ctrl+g"),
			key.WithHelp("f1", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "toggle logs"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.Clear, k.Copy, k.Theme, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextInput, k.PrevInput},               // Focus
		{k.Run, k.Clear, k.Copy, k.Theme},        // Actions
		{k.ScrollSummaryUp, k.ScrollSummaryDown}, // Result panes
		{k.Help, k.Escape, k.Quit},               // General
	}
}

// EditorKeyMap defines the keybindings inside an input.
type EditorKeyMap struct {
	Left               key.Binding
	Right              key.Binding
	Up                 key.Binding
	Down               key.Binding
	LineStart          key.Binding
	LineEnd            key.Binding
	PageUp             key.Binding
	PageDown           key.Binding
	Newline            key.Binding
	Backspace          key.Binding
	Delete             key.Binding
	DeleteWordBackward key.Binding
	ClearLine          key.Binding
}

// DefaultEditorKeyMap returns the keybindings for inputs.
func DefaultEditorKeyMap() EditorKeyMap {
	return EditorKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "ctrl+b"),
			key.WithHelp("←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "ctrl+f"),
			key.WithHelp("→", "move right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "line up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "line down"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("home", "ctrl+a"),
			key.WithHelp("home", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("end", "line end"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Newline: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("⌫", "delete back"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete forward"),
		),
		DeleteWordBackward: key.NewBinding(
			key.WithKeys("ctrl+w", "alt+backspace"),
			key.WithHelp("ctrl+w", "delete word"),
		),
		ClearLine: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "delete to line end"),
		),
	}
}

// App and Editor are the shared keymaps.
var (
	App    = DefaultKeyMap()
	Editor = DefaultEditorKeyMap()
)
