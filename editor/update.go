package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/mentionpad/buffer"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.buf == nil {
		return m, nil
	}

	if m.mention.Visible {
		var handled bool
		if m, handled = m.updateMentionKey(msg); handled {
			return m, nil
		}
	}

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		if !m.cfg.ReadOnly {
			m.buf.InsertText(normalizeNewlines(string(msg.Runes)))
		}
		return m, nil
	}

	km := m.cfg.KeyMap

	switch {
	case key.Matches(msg, km.Left):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft})
	case key.Matches(msg, km.Right):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight})
	case key.Matches(msg, km.Up):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirUp})
	case key.Matches(msg, km.Down):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirDown})

	case key.Matches(msg, km.ShiftLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		m.buf.Move(buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirDown, Extend: true})

	case key.Matches(msg, km.WordLeft):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft})
	case key.Matches(msg, km.WordRight):
		m.buf.Move(buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight})

	case key.Matches(msg, km.Home):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome})
	case key.Matches(msg, km.End):
		m.buf.Move(buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd})
	case key.Matches(msg, km.DocStart):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirHome})
	case key.Matches(msg, km.DocEnd):
		m.buf.Move(buffer.Move{Unit: buffer.MoveDoc, Dir: buffer.DirEnd})

	case key.Matches(msg, km.Backspace):
		if !m.cfg.ReadOnly {
			m.buf.DeleteBackward()
		}
	case key.Matches(msg, km.Delete):
		if !m.cfg.ReadOnly {
			m.buf.DeleteForward()
		}
	case key.Matches(msg, km.Enter):
		if !m.cfg.ReadOnly {
			m.buf.InsertNewline()
		}

	case key.Matches(msg, km.Bold):
		m.toggleFormat(buffer.AttrBold)
	case key.Matches(msg, km.Italic):
		m.toggleFormat(buffer.AttrItalic)
	case key.Matches(msg, km.Underline):
		m.toggleFormat(buffer.AttrUnderline)
	case key.Matches(msg, km.Strike):
		m.toggleFormat(buffer.AttrStrike)
	case key.Matches(msg, km.ClearFormat):
		if !m.cfg.ReadOnly {
			m.buf.ClearFormat()
		}

	default:
		if m.cfg.ReadOnly {
			return m, nil
		}
		switch {
		case msg.Type == tea.KeyTab:
			m.buf.InsertRune('\t')
		case msg.Type == tea.KeySpace:
			m.buf.InsertRune(' ')
		case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
			m.buf.InsertText(string(msg.Runes))
		}
	}

	return m, nil
}

// updateMentionKey handles the dropdown bindings. Every matched binding is
// consumed, including Confirm with no highlighted row. While the list cannot
// be drawn (its anchor is scrolled out of view or the viewport is too small)
// only Dismiss is taken; the other keys edit the text as usual.
func (m Model) updateMentionKey(msg tea.KeyMsg) (Model, bool) {
	km := m.cfg.MentionKeyMap
	if _, drawn := m.popupPlacement(); !drawn {
		if key.Matches(msg, km.Dismiss) {
			m.hideMention()
			return m, true
		}
		return m, false
	}
	switch {
	case key.Matches(msg, km.Prev):
		m.moveMentionSelection(-1)
	case key.Matches(msg, km.Next):
		m.moveMentionSelection(1)
	case key.Matches(msg, km.Confirm):
		m = m.confirmSelected()
	case key.Matches(msg, km.Dismiss):
		m.hideMention()
	default:
		return m, false
	}
	return m, true
}

func (m Model) toggleFormat(a buffer.Attr) {
	if m.cfg.ReadOnly {
		return
	}
	m.buf.ToggleFormat(a)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
