// Package dropdown renders the mention suggestion list.
//
// The list is presentational: callers own the items and the highlighted
// index. The only state kept here is the scroll offset that keeps the
// highlighted row visible.
package dropdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/mentionpad/internal/grapheme"
	"github.com/iw2rmb/mentionpad/mention"
)

const (
	DefaultMaxVisibleRows = 5
	DefaultMaxWidth       = 30

	// DefaultEmptyText is the single row drawn for an empty list.
	DefaultEmptyText = "No matches"
)

// Style controls row rendering.
type Style struct {
	Item     lipgloss.Style
	Selected lipgloss.Style
	Empty    lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Item:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62")).Bold(true),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("236")).Italic(true),
	}
}

// Model is a scrollable list of candidates with one highlighted row.
type Model struct {
	items    []mention.Candidate
	selected int
	offset   int

	maxRows  int
	maxWidth int

	Style Style
	// EmptyText is drawn as the only row when there are no items.
	EmptyText string
}

// New returns an empty list showing at most maxRows rows. maxRows <= 0
// selects DefaultMaxVisibleRows.
func New(maxRows int) Model {
	if maxRows <= 0 {
		maxRows = DefaultMaxVisibleRows
	}
	return Model{
		selected: -1,
		maxRows:  maxRows,
		maxWidth:  DefaultMaxWidth,
		Style:     DefaultStyle(),
		EmptyText: DefaultEmptyText,
	}
}

// SetItems replaces the list and scrolls back to the top. The highlight is
// reset to none.
func (m Model) SetItems(items []mention.Candidate) Model {
	m.items = append([]mention.Candidate(nil), items...)
	m.selected = -1
	m.offset = 0
	return m
}

// SetSelected highlights row i, or nothing when i is out of range, and
// scrolls the smallest distance that brings the row into view.
func (m Model) SetSelected(i int) Model {
	if i < 0 || i >= len(m.items) {
		m.selected = -1
		return m
	}
	m.selected = i
	rows := m.Height()
	switch {
	case i < m.offset:
		m.offset = i
	case i >= m.offset+rows:
		m.offset = i - rows + 1
	}
	m.offset = m.clampOffset(m.offset)
	return m
}

// SetMaxRows caps the visible rows, keeping the highlight in view.
func (m Model) SetMaxRows(rows int) Model {
	if rows <= 0 {
		rows = DefaultMaxVisibleRows
	}
	m.maxRows = rows
	m.offset = m.clampOffset(m.offset)
	return m.SetSelected(m.selected)
}

// SetMaxWidth caps the rendered width in cells.
func (m Model) SetMaxWidth(width int) Model {
	if width <= 0 {
		width = DefaultMaxWidth
	}
	m.maxWidth = width
	return m
}

// Scroll moves the visible window by delta rows without changing the
// highlight.
func (m Model) Scroll(delta int) Model {
	m.offset = m.clampOffset(m.offset + delta)
	return m
}

func (m Model) Items() []mention.Candidate {
	return append([]mention.Candidate(nil), m.items...)
}

func (m Model) Selected() int { return m.selected }
func (m Model) Offset() int   { return m.offset }
func (m Model) MaxRows() int  { return m.maxRows }

// Height returns the number of rendered rows. An empty list still draws its
// EmptyText row.
func (m Model) Height() int {
	if len(m.items) == 0 {
		return 1
	}
	return minInt(m.maxRows, len(m.items))
}

// Width returns the rendered width in cells: the widest label plus one cell of
// padding on each side, capped by the max width.
func (m Model) Width() int {
	if len(m.items) == 0 {
		return minInt(grapheme.Width(sanitizeLabel(m.EmptyText))+2, m.maxWidth)
	}
	w := 0
	for _, it := range m.items {
		if lw := grapheme.Width(sanitizeLabel(it.Value)); lw > w {
			w = lw
		}
	}
	return minInt(w+2, m.maxWidth)
}

// Contains reports whether a list-local cell is inside the drawn list.
func (m Model) Contains(x, y int) bool {
	return x >= 0 && x < m.Width() && y >= 0 && y < m.Height()
}

// RowAt maps a list-local cell to the item drawn there. The empty row maps to
// no item.
func (m Model) RowAt(x, y int) (int, bool) {
	if x < 0 || x >= m.Width() || y < 0 || y >= m.Height() {
		return -1, false
	}
	i := m.offset + y
	if i >= len(m.items) {
		return -1, false
	}
	return i, true
}

// View renders the visible rows, each exactly Width() cells wide.
func (m Model) View() string {
	rows := m.Height()
	width := m.Width()
	if rows <= 0 || width <= 0 {
		return ""
	}
	if len(m.items) == 0 {
		return m.Style.Empty.Render(renderRow(m.EmptyText, width))
	}

	out := make([]string, 0, rows)
	for i := m.offset; i < m.offset+rows && i < len(m.items); i++ {
		style := m.Style.Item
		if i == m.selected {
			style = m.Style.Selected
		}
		out = append(out, style.Render(renderRow(m.items[i].Value, width)))
	}
	return strings.Join(out, "\n")
}

// renderRow pads label into a width-cell row, cutting it at a grapheme
// boundary when it does not fit.
func renderRow(label string, width int) string {
	var sb strings.Builder
	sb.WriteByte(' ')
	used := 1
	limit := width - 1 // trailing padding
	for _, gr := range grapheme.Split(sanitizeLabel(label)) {
		w := grapheme.Width(gr)
		if w < 1 {
			w = 1
		}
		if used+w > limit {
			break
		}
		sb.WriteString(gr)
		used += w
	}
	if used < width {
		sb.WriteString(strings.Repeat(" ", width-used))
	}
	return sb.String()
}

func sanitizeLabel(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

func (m Model) clampOffset(off int) int {
	maxOff := len(m.items) - minInt(m.maxRows, len(m.items))
	if off > maxOff {
		off = maxOff
	}
	if off < 0 {
		off = 0
	}
	return off
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
