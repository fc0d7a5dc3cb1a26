package editor

import "github.com/iw2rmb/mentionpad/buffer"

// ViewportState is a stable host-facing snapshot of editor camera state.
type ViewportState struct {
	// TopRow is the document row rendered at viewport screen row 0.
	TopRow int
	// VisibleRows is the number of content rows available for rendering.
	VisibleRows int
	// LeftCellOffset is the horizontal scroll in cells.
	LeftCellOffset int
}

// ViewportState returns the current host-facing viewport state.
func (m Model) ViewportState() ViewportState {
	return ViewportState{
		TopRow:         maxInt(m.viewport.YOffset, 0),
		VisibleRows:    m.visibleRowCount(),
		LeftCellOffset: maxInt(m.xOffset, 0),
	}
}

// ScreenToDoc maps viewport-local screen coordinates to a document position.
//
// Coordinates use terminal cells relative to the editor viewport.
func (m Model) ScreenToDoc(x, y int) buffer.Pos {
	return (&m).screenToDocPos(x, y)
}

// DocToScreen maps a document position to viewport-local screen coordinates.
//
// ok is false when the position is outside the visible viewport content.
func (m Model) DocToScreen(pos buffer.Pos) (x int, y int, ok bool) {
	return (&m).docToScreenPos(pos)
}

func (m Model) visibleRowCount() int {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h < 0 {
		return 0
	}
	return h
}

// contentWidth is the text area width: the viewport minus its frame and the
// gutter.
func (m Model) contentWidth() int {
	if m.buf == nil {
		return 0
	}
	w := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize() - m.gutterWidth(m.buf.LineCount())
	if w < 0 {
		return 0
	}
	return w
}
