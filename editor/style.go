package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/mentionpad/buffer"
	"github.com/iw2rmb/mentionpad/dropdown"
)

// Style controls the editor's rendering.
//
// Inline formats (bold, italic, underline, strike) are applied on top of Text
// or Mention; they are not separately styleable.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Mention   lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	Dropdown dropdown.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Mention:       lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Dropdown:      dropdown.DefaultStyle(),
	}
}

// formatStyle returns the style for text carrying f.
func formatStyle(st Style, f buffer.Format) lipgloss.Style {
	s := st.Text
	if f.Mention != "" {
		s = st.Mention.Inherit(st.Text)
	}
	if f.Bold {
		s = s.Bold(true)
	}
	if f.Italic {
		s = s.Italic(true)
	}
	if f.Underline {
		s = s.Underline(true)
	}
	if f.Strike {
		s = s.Strikethrough(true)
	}
	return s
}
