package page

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the page-level bindings. Everything else goes to the editor.
type KeyMap struct {
	Quit       key.Binding
	TogglePane key.Binding
	PaneUp     key.Binding
	PaneDown   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
		TogglePane: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "preview/source")),
		PaneUp:     key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll pane up")),
		PaneDown:   key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll pane down")),
	}
}
