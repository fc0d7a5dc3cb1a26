package page

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	headerHeight = 1
	// header, mentions line and pane title
	chromeHeight = 3
)

func (m Model) editorHeight() int {
	h := (m.height - chromeHeight) / 2
	if h < 0 {
		return 0
	}
	return h
}

func (m Model) paneHeight() int {
	h := m.height - chromeHeight - m.editorHeight()
	if h < 0 {
		return 0
	}
	return h
}

func (m Model) paneTop() int {
	return headerHeight + m.editorHeight() + 2
}

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width = width
	m.height = height
	m.editor = m.editor.SetSize(width, m.editorHeight())
	m.paneView.Width = width
	m.paneView.Height = m.paneHeight()
	m.refreshPane()
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.log.WithField("changes", m.doc.changes).Debug("quit")
			return m, tea.Quit
		case key.Matches(msg, m.keys.TogglePane):
			if m.pane == PanePreview {
				m.pane = PaneSource
			} else {
				m.pane = PanePreview
			}
			m.paneView.GotoTop()
			m.refreshPane()
			return m, nil
		case key.Matches(msg, m.keys.PaneUp):
			m.paneView.HalfViewUp()
			return m, nil
		case key.Matches(msg, m.keys.PaneDown):
			m.paneView.HalfViewDown()
			return m, nil
		}

	case tea.MouseMsg:
		if tea.MouseEvent(msg).IsWheel() && msg.Y >= m.paneTop() {
			msg.Y -= m.paneTop()
			var cmd tea.Cmd
			m.paneView, cmd = m.paneView.Update(msg)
			return m, cmd
		}
		msg.Y -= headerHeight
		return m.forward(msg)
	}

	return m.forward(msg)
}

// forward hands msg to the editor. The page content stays the source of
// truth: the editor is only reset when its value diverged from it.
func (m Model) forward(msg tea.Msg) (Model, tea.Cmd) {
	before := m.doc.changes

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)

	if m.doc.changes == before {
		return m, cmd
	}
	if m.editor.Value() != m.doc.content {
		ed, err := m.editor.SetValue(m.doc.content)
		if err != nil {
			m.log.WithError(err).Debug("content rejected")
		} else {
			m.editor = ed
		}
	}
	m.refreshPane()
	return m, cmd
}
