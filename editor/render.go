package editor

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/mentionpad/buffer"
	"github.com/iw2rmb/mentionpad/internal/grapheme"
)

// lineCell is one rune of a line placed on the terminal grid.
type lineCell struct {
	text  string
	f     buffer.Format
	col   int
	start int
	width int
}

func layoutLine(runs []buffer.Run, tabWidth int) []lineCell {
	var out []lineCell
	col, cell := 0, 0
	for _, run := range runs {
		for _, r := range run.Text {
			w := grapheme.RuneWidth(r, cell, tabWidth)
			text := string(r)
			switch {
			case r == '\t':
				text = strings.Repeat(" ", w)
			case r < 0x20 || r == 0x7f:
				text = ""
			}
			out = append(out, lineCell{text: text, f: run.Format, col: col, start: cell, width: w})
			col++
			cell += w
		}
	}
	return out
}

// cellForCol returns the first visual cell of rune column col. Columns at or
// past the end map to the cell after the last rune.
func cellForCol(cells []lineCell, col int) int {
	if col < 0 {
		return 0
	}
	if col < len(cells) {
		return cells[col].start
	}
	return lineWidth(cells)
}

// colForCell returns the rune column drawn at visual cell x.
func colForCell(cells []lineCell, x int) int {
	if x <= 0 {
		return 0
	}
	for _, c := range cells {
		if c.width > 0 && x < c.start+c.width {
			return c.col
		}
	}
	return len(cells)
}

func lineWidth(cells []lineCell) int {
	if len(cells) == 0 {
		return 0
	}
	last := cells[len(cells)-1]
	return last.start + last.width
}

func (m *Model) renderContent() string {
	if m.buf == nil {
		return ""
	}

	lines := m.buf.Lines()
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()

	digitCount := 0
	if m.cfg.ShowLineNums {
		digitCount = gutterDigits(len(lines))
	}

	left := maxInt(m.xOffset, 0)
	right := int(^uint(0) >> 1)
	if w := m.contentWidth(); w > 0 {
		right = left + w
	}

	out := make([]string, 0, len(lines))
	for row, runs := range lines {
		var sb strings.Builder

		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digitCount, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		sb.WriteString(renderLine(
			m.cfg.Style,
			layoutLine(runs, m.tabWidth()),
			row,
			cursor,
			m.focused,
			sel,
			selOK,
			left,
			right,
		))
		out = append(out, sb.String())
	}

	return strings.Join(out, "\n")
}

func renderLine(
	st Style,
	cells []lineCell,
	row int,
	cursor buffer.Pos,
	focused bool,
	sel buffer.Range,
	selOK bool,
	left, right int,
) string {
	hasCursor := focused && row == cursor.Row
	selStart, selEnd, hasSel := selectionColsForRow(sel, selOK, row, len(cells))

	var sb strings.Builder
	for _, c := range cells {
		spanL := maxInt(c.start, left)
		spanR := minInt(c.start+c.width, right)
		if spanL >= spanR {
			continue
		}

		style := formatStyle(st, c.f)
		switch {
		case hasCursor && c.col == cursor.Col:
			style = st.Cursor.Inherit(style)
		case hasSel && c.col >= selStart && c.col < selEnd:
			style = st.Selection.Inherit(style)
		}

		text := c.text
		if spanR-spanL < c.width {
			// Partially visible wide rune or tab: keep alignment with blanks.
			text = strings.Repeat(" ", spanR-spanL)
		}
		sb.WriteString(style.Render(text))
	}

	// Cursor at EOL is rendered as a 1-cell placeholder space.
	if hasCursor && cursor.Col >= len(cells) {
		eol := lineWidth(cells)
		if eol >= left && eol < right {
			sb.WriteString(st.Cursor.Render(" "))
		}
	}
	return sb.String()
}

func selectionColsForRow(sel buffer.Range, ok bool, row, lineLen int) (start, end int, has bool) {
	if !ok || row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	start, end = 0, lineLen
	if row == sel.Start.Row {
		start = sel.Start.Col
	}
	if row == sel.End.Row {
		end = sel.End.Col
	}
	if start >= end {
		return 0, 0, false
	}
	return start, end, true
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
