package editor

import (
	"reflect"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the editor key bindings.
//
// Bindings must be portable across terminals (ctrl/alt fallbacks).
type KeyMap struct {
	Left, Right, Up, Down                     key.Binding
	ShiftLeft, ShiftRight, ShiftUp, ShiftDown key.Binding
	WordLeft, WordRight                       key.Binding
	Home, End                                 key.Binding
	DocStart, DocEnd                          key.Binding

	Backspace, Delete key.Binding
	Enter             key.Binding

	Bold, Italic, Underline, Strike key.Binding
	ClearFormat                     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right: key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Up:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:  key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),

		ShiftLeft:  key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "select left")),
		ShiftRight: key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "select right")),
		ShiftUp:    key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "select up")),
		ShiftDown:  key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "select down")),

		// Portable word movement: terminals vary between alt+arrows and ctrl+arrows.
		WordLeft:  key.NewBinding(key.WithKeys("alt+left", "ctrl+left"), key.WithHelp("alt/ctrl+←", "word left")),
		WordRight: key.NewBinding(key.WithKeys("alt+right", "ctrl+right"), key.WithHelp("alt/ctrl+→", "word right")),

		Home:     key.NewBinding(key.WithKeys("home", "ctrl+a"), key.WithHelp("home", "line start")),
		End:      key.NewBinding(key.WithKeys("end", "ctrl+e"), key.WithHelp("end", "line end")),
		DocStart: key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("ctrl+home", "document start")),
		DocEnd:   key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("ctrl+end", "document end")),

		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("backspace", "delete left")),
		Delete:    key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "delete right")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "newline")),

		// ctrl+i is tab and ctrl+u/ctrl+s are often taken by the terminal.
		Bold:        key.NewBinding(key.WithKeys("ctrl+b", "alt+b"), key.WithHelp("ctrl+b", "bold")),
		Italic:      key.NewBinding(key.WithKeys("alt+i"), key.WithHelp("alt+i", "italic")),
		Underline:   key.NewBinding(key.WithKeys("alt+u"), key.WithHelp("alt+u", "underline")),
		Strike:      key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("alt+s", "strikethrough")),
		ClearFormat: key.NewBinding(key.WithKeys("alt+c"), key.WithHelp("alt+c", "clear formatting")),
	}
}

// MentionKeyMap defines the bindings active while the suggestion dropdown is
// visible. They take precedence over KeyMap.
type MentionKeyMap struct {
	Prev    key.Binding
	Next    key.Binding
	Confirm key.Binding
	Dismiss key.Binding
}

func DefaultMentionKeyMap() MentionKeyMap {
	return MentionKeyMap{
		Prev:    key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous suggestion")),
		Next:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next suggestion")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "insert mention")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss suggestions")),
	}
}

func normalizeKeyMap(km KeyMap) KeyMap {
	if reflect.DeepEqual(km, KeyMap{}) {
		return DefaultKeyMap()
	}
	return km
}

func normalizeMentionKeyMap(km MentionKeyMap) MentionKeyMap {
	if reflect.DeepEqual(km, MentionKeyMap{}) {
		return DefaultMentionKeyMap()
	}
	return km
}
