package page

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/mentionpad/buffer"
)

type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Mentions lipgloss.Style
	Empty    lipgloss.Style

	Preview lipgloss.Style
	Mention lipgloss.Style
	Source  lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Mentions: lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		Preview:  lipgloss.NewStyle(),
		Mention:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
		Source:   lipgloss.NewStyle().Foreground(lipgloss.Color("246")),
	}
}

func (st Styles) run(f buffer.Format) lipgloss.Style {
	s := st.Preview
	if f.Mention != "" {
		s = st.Mention.Inherit(st.Preview)
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
