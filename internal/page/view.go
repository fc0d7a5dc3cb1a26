package page

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/mentionpad/markup"
)

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Render("mentionpad"))
	sb.WriteString(m.styles.Label.Render(fmt.Sprintf("  doc %s  v%d", m.id.String()[:8], m.doc.version)))
	sb.WriteByte('\n')

	if m.editorHeight() > 0 {
		sb.WriteString(m.editor.View())
		sb.WriteByte('\n')
	}

	sb.WriteString(m.styles.Label.Render("Mentions: "))
	if len(m.doc.mentions) == 0 {
		sb.WriteString(m.styles.Empty.Render("none"))
	} else {
		sb.WriteString(m.styles.Mentions.Render(strings.Join(m.doc.mentions, ", ")))
	}
	sb.WriteByte('\n')

	sb.WriteString(m.styles.Label.Render(fmt.Sprintf("-- %s (%s) --", m.pane, m.keys.TogglePane.Help().Key)))
	if m.paneHeight() > 0 {
		sb.WriteByte('\n')
		sb.WriteString(m.paneView.View())
	}
	return sb.String()
}

func (m *Model) refreshPane() {
	if m.pane == PaneSource {
		m.paneView.SetContent(m.renderSource())
		return
	}
	m.paneView.SetContent(m.renderPreview())
}

// renderPreview shows the content the way a reader sees it.
func (m Model) renderPreview() string {
	lines, err := markup.Parse(m.doc.content)
	if err != nil {
		return m.styles.Empty.Render(err.Error())
	}

	out := make([]string, 0, len(lines))
	for _, runs := range lines {
		var sb strings.Builder
		for _, run := range runs {
			sb.WriteString(m.styles.run(run.Format).Render(run.Text))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

// renderSource shows the content markup, one paragraph per line.
func (m Model) renderSource() string {
	src := strings.TrimSuffix(strings.ReplaceAll(m.doc.content, "</p>", "</p>\n"), "\n")
	st := m.styles.Source
	if m.width > 0 {
		st = st.Width(m.width)
	}

	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = st.Render(line)
	}
	return strings.Join(lines, "\n")
}
