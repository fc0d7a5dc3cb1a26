package buffer

// Apply applies a sequence of edits in order as one change from source. Each
// edit's range is interpreted against the buffer state at the time that edit
// is applied.
//
// Semantics:
// - Edit ranges are clamped into current document bounds.
// - Empty range + non-empty text inserts.
// - Cursor moves to the end of the last applied (effective) edit.
// - Selection is cleared if any edit applies.
func (b *Buffer) Apply(source ChangeSource, edits ...Edit) bool {
	if len(edits) == 0 {
		return false
	}

	change := b.beginChange(source)

	anyChanged := false
	lastCursor := b.cursor

	for _, e := range edits {
		nextCursor, applied, changed := b.replaceRange(e.Range, e.Text, e.Format)
		if !changed {
			continue
		}
		anyChanged = true
		lastCursor = nextCursor
		change.addAppliedEdit(applied)
	}

	if !anyChanged {
		return false
	}

	b.cursor = b.clampPos(lastCursor)
	b.sel = selectionState{}
	b.version++
	b.commitChange(change)
	return true
}

// SetContent replaces the whole document with lines as an api change.
// The cursor is kept where possible and clamped into the new document.
// It reports whether the content actually changed.
func (b *Buffer) SetContent(lines [][]Run) bool {
	next := cellsFromRuns(lines)
	if linesEqual(next, b.lines) {
		return false
	}

	change := b.beginChange(ChangeSourceAPI)
	before := b.fullRange()
	deleted := b.Text()

	b.lines = next
	b.cursor = b.clampPos(b.cursor)
	b.sel = selectionState{}
	b.hasPending = false
	b.version++

	change.addAppliedEdit(AppliedEdit{
		RangeBefore: before,
		RangeAfter:  b.fullRange(),
		InsertText:  b.Text(),
		DeletedText: deleted,
	})
	b.commitChange(change)
	return true
}

func (b *Buffer) fullRange() Range {
	last := len(b.lines) - 1
	return Range{End: Pos{Row: last, Col: len(b.lines[last])}}
}
