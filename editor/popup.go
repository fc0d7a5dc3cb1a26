package editor

import (
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/iw2rmb/mentionpad/dropdown"
)

type popupPlacement struct {
	// x, y are the top-left cell of the list, relative to the viewport
	// content.
	x, y int
	list dropdown.Model
}

func (m Model) popupPlacement() (popupPlacement, bool) {
	if !m.mention.Visible || m.buf == nil {
		return popupPlacement{}, false
	}

	viewportWidth := m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize()
	viewportHeight := m.visibleRowCount()
	if viewportWidth <= 0 || viewportHeight <= 0 {
		return popupPlacement{}, false
	}

	anchorX, anchorY, ok := m.DocToScreen(m.mention.Anchor)
	if !ok {
		return popupPlacement{}, false
	}

	list := m.dropdown
	targetRows := list.Height()
	if targetRows <= 0 {
		return popupPlacement{}, false
	}

	belowAvail := maxInt(viewportHeight-(anchorY+1), 0)
	aboveAvail := maxInt(anchorY, 0)
	showBelow := true
	rowCount := targetRows
	if rowCount > belowAvail {
		if aboveAvail >= rowCount {
			showBelow = false
		} else if aboveAvail > belowAvail {
			showBelow = false
			rowCount = aboveAvail
		} else {
			rowCount = belowAvail
		}
	}
	if rowCount <= 0 {
		return popupPlacement{}, false
	}
	if rowCount < targetRows {
		list = list.SetMaxRows(rowCount)
	}
	if list.Width() > viewportWidth {
		list = list.SetMaxWidth(viewportWidth)
	}
	if list.Width() <= 0 {
		return popupPlacement{}, false
	}

	y := anchorY + 1
	if !showBelow {
		y = anchorY - list.Height()
	}
	y = clampInt(y, 0, maxInt(viewportHeight-list.Height(), 0))
	x := clampInt(anchorX, 0, maxInt(viewportWidth-list.Width(), 0))

	return popupPlacement{x: x, y: y, list: list}, true
}

// SuggestionBounds returns the dropdown rectangle in viewport-local cells.
// ok is false when the dropdown is hidden or cannot be drawn: its anchor is
// scrolled out of view or the viewport has no room. An empty list is drawn as
// its placeholder row.
func (m Model) SuggestionBounds() (x, y, width, height int, ok bool) {
	p, ok := m.popupPlacement()
	if !ok {
		return 0, 0, 0, 0, false
	}
	return p.x, p.y, p.list.Width(), p.list.Height(), true
}

func (m Model) renderPopup(base string) (string, bool) {
	p, ok := m.popupPlacement()
	if !ok {
		return "", false
	}

	leftFrame := m.viewport.Style.GetMarginLeft() + m.viewport.Style.GetBorderLeftSize() + m.viewport.Style.GetPaddingLeft()
	topFrame := m.viewport.Style.GetMarginTop() + m.viewport.Style.GetBorderTopSize() + m.viewport.Style.GetPaddingTop()

	return overlay.Composite(
		p.list.View(),
		base,
		overlay.Left,
		overlay.Top,
		leftFrame+p.x,
		topFrame+p.y,
	), true
}
