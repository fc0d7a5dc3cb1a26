package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/mentionpad/buffer"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if m, handled := m.updatePopupMouse(msg); handled {
		return m, nil
	}

	var cmd tea.Cmd
	if m.cfg.ScrollPolicy == ScrollAllowManual || !isManualScrollMouse(msg) {
		m.viewport, cmd = m.viewport.Update(msg)
	}

	if !m.focused || m.buf == nil {
		return m, cmd
	}

	// Only handle selection/cursor changes for left button interactions.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, cmd
		}
		if !m.mouseInBounds(msg.X, msg.Y) {
			return m, cmd
		}

		p := m.screenToDocPos(msg.X, msg.Y)
		if msg.Shift {
			anchor := m.buf.Cursor()
			if raw, ok := m.buf.SelectionRaw(); ok {
				anchor = raw.Start
			}
			m.mouseAnchor = anchor
			m.buf.SetCursor(p)
			m.buf.SetSelection(buffer.Range{Start: anchor, End: p})
		} else {
			m.mouseAnchor = p
			m.buf.SetCursor(p)
			m.buf.ClearSelection()
		}
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, cmd
		}

		x, y := m.clampMouseToBounds(msg.X, msg.Y)
		p := m.screenToDocPos(x, y)
		m.buf.SetCursor(p)
		m.buf.SetSelection(buffer.Range{Start: m.mouseAnchor, End: p})

	case tea.MouseActionRelease:
		m.mouseDragging = false
	}

	return m, cmd
}

// updatePopupMouse handles events over the dropdown: a left click confirms
// the clicked candidate and the wheel scrolls the list.
func (m Model) updatePopupMouse(msg tea.MouseMsg) (Model, bool) {
	p, ok := m.popupPlacement()
	if !ok {
		return m, false
	}
	lx, ly := msg.X-p.x, msg.Y-p.y
	if !p.list.Contains(lx, ly) {
		return m, false
	}

	if msg.Action != tea.MouseActionPress {
		return m, true
	}
	switch msg.Button { //nolint:exhaustive
	case tea.MouseButtonWheelUp:
		m.dropdown = m.dropdown.Scroll(-1)
	case tea.MouseButtonWheelDown:
		m.dropdown = m.dropdown.Scroll(1)
	case tea.MouseButtonLeft:
		m.mouseDragging = false
		if idx, ok := p.list.RowAt(lx, ly); ok {
			m, _ = m.ConfirmMention(p.list.Items()[idx])
		}
	}
	return m, true
}

func isManualScrollMouse(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress &&
		(msg.Button == tea.MouseButtonWheelUp ||
			msg.Button == tea.MouseButtonWheelDown ||
			msg.Button == tea.MouseButtonWheelLeft ||
			msg.Button == tea.MouseButtonWheelRight)
}

func (m Model) mouseInBounds(x, y int) bool {
	if m.viewport.Width <= 0 || m.viewport.Height <= 0 {
		return false
	}
	return x >= 0 && x < m.viewport.Width && y >= 0 && y < m.viewport.Height
}

func (m Model) clampMouseToBounds(x, y int) (int, int) {
	if m.viewport.Width > 0 {
		x = clampInt(x, 0, m.viewport.Width-1)
	}
	if m.viewport.Height > 0 {
		y = clampInt(y, 0, m.viewport.Height-1)
	}
	return x, y
}
