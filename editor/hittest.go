package editor

import "github.com/iw2rmb/mentionpad/buffer"

// screenToDocPos maps viewport-local mouse coordinates to a document position.
//
// Coordinates are in terminal cells and are relative to the editor's viewport:
// (0,0) is the top-left of the visible content region. Gutter clicks map to
// the start of the line and x/y are clamped into document bounds.
func (m *Model) screenToDocPos(x, y int) buffer.Pos {
	if m.buf == nil {
		return buffer.Pos{}
	}

	n := m.buf.LineCount()
	row := clampInt(m.viewport.YOffset+y, 0, n-1)

	gw := m.gutterWidth(n)
	if x < gw {
		return buffer.Pos{Row: row}
	}
	visualX := x - gw + maxInt(m.xOffset, 0)

	cells := layoutLine(m.buf.LineRuns(row), m.tabWidth())
	return buffer.Pos{Row: row, Col: colForCell(cells, visualX)}
}

// docToScreenPos maps a document position to viewport-local coordinates.
//
// ok is false when the mapped coordinate is outside the visible viewport.
func (m *Model) docToScreenPos(pos buffer.Pos) (x int, y int, ok bool) {
	if m.buf == nil {
		return 0, 0, false
	}

	n := m.buf.LineCount()
	row := clampInt(pos.Row, 0, n-1)
	cells := layoutLine(m.buf.LineRuns(row), m.tabWidth())
	col := clampInt(pos.Col, 0, len(cells))

	x = cellForCol(cells, col) - maxInt(m.xOffset, 0) + m.gutterWidth(n)
	y = row - m.viewport.YOffset

	if y < 0 || y >= m.visibleRowCount() {
		return x, y, false
	}
	if x < 0 || x >= m.viewport.Width-m.viewport.Style.GetHorizontalFrameSize() {
		return x, y, false
	}
	return x, y, true
}
