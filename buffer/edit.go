package buffer

import "strings"

// InsertText inserts text at the cursor, or replaces the active selection.
// The inserted runes take TypingFormat().
func (b *Buffer) InsertText(s string) {
	if s == "" {
		if _, ok := b.Selection(); ok {
			b.DeleteSelection()
		}
		return
	}

	f := b.TypingFormat()
	r, ok := b.Selection()
	if !ok {
		r = Range{Start: b.cursor, End: b.cursor}
	}
	b.commitEdit(ChangeSourceUser, r, s, f)
}

// InsertRune inserts a single rune at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertRune(r rune) {
	b.InsertText(string(r))
}

// InsertNewline inserts a line break at the cursor, or replaces the active
// selection.
func (b *Buffer) InsertNewline() {
	b.InsertText("\n")
}

// DeleteBackward applies backspace semantics.
func (b *Buffer) DeleteBackward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	if row == 0 && col == 0 {
		return
	}

	if col > 0 {
		b.commitEdit(ChangeSourceUser, Range{
			Start: Pos{Row: row, Col: col - 1},
			End:   Pos{Row: row, Col: col},
		}, "", Format{})
		return
	}

	// Join with previous line (delete the newline).
	prevRow := row - 1
	b.commitEdit(ChangeSourceUser, Range{
		Start: Pos{Row: prevRow, Col: len(b.lines[prevRow])},
		End:   Pos{Row: row, Col: 0},
	}, "", Format{})
}

// DeleteForward applies delete-key semantics.
func (b *Buffer) DeleteForward() {
	if _, ok := b.Selection(); ok {
		b.DeleteSelection()
		return
	}

	row, col := b.cursor.Row, b.cursor.Col
	lastRow := len(b.lines) - 1
	if row == lastRow && col == len(b.lines[lastRow]) {
		return
	}

	if col < len(b.lines[row]) {
		b.commitEdit(ChangeSourceUser, Range{
			Start: Pos{Row: row, Col: col},
			End:   Pos{Row: row, Col: col + 1},
		}, "", Format{})
		return
	}

	// Join with next line (delete the newline).
	b.commitEdit(ChangeSourceUser, Range{
		Start: Pos{Row: row, Col: col},
		End:   Pos{Row: row + 1, Col: 0},
	}, "", Format{})
}

// DeleteSelection deletes the active selection, if any.
func (b *Buffer) DeleteSelection() {
	r, ok := b.Selection()
	if !ok {
		return
	}
	b.commitEdit(ChangeSourceUser, r, "", Format{})
}

// ToggleFormat flips attribute a on the selection. A selection where every
// rune already has a loses it; otherwise every rune gains it.
//
// Without a selection the toggle applies to the typing format and lasts until
// the cursor moves.
func (b *Buffer) ToggleFormat(a Attr) {
	r, ok := b.Selection()
	if !ok {
		f := b.TypingFormat()
		b.pending = f.With(a, !f.Has(a))
		b.hasPending = true
		return
	}

	all := true
	b.eachCell(r, func(c *cell) {
		if !c.f.Has(a) {
			all = false
		}
	})
	b.formatRange(ChangeSourceUser, r, func(f Format) Format { return f.With(a, !all) })
}

// ClearFormat removes styling from the selection, or resets the typing format.
// Mention annotations survive: they are content, not styling.
func (b *Buffer) ClearFormat() {
	r, ok := b.Selection()
	if !ok {
		b.pending = Format{}
		b.hasPending = true
		return
	}
	b.formatRange(ChangeSourceUser, r, Format.Plain)
}

func (b *Buffer) formatRange(source ChangeSource, r Range, fn func(Format) Format) bool {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	changed := false
	b.eachCell(r, func(c *cell) {
		next := fn(c.f)
		if next != c.f {
			c.f = next
			changed = true
		}
	})
	if !changed {
		return false
	}

	change := b.beginChange(source)
	text := textForCellsRange(b.lines, r)
	b.version++
	change.addAppliedEdit(AppliedEdit{
		RangeBefore: r,
		RangeAfter:  r,
		InsertText:  text,
		DeletedText: text,
	})
	b.commitChange(change)
	return true
}

func (b *Buffer) eachCell(r Range, fn func(c *cell)) {
	r = NormalizeRange(r)
	for row := r.Start.Row; row <= r.End.Row && row < len(b.lines); row++ {
		start, end := 0, len(b.lines[row])
		if row == r.Start.Row {
			start = r.Start.Col
		}
		if row == r.End.Row {
			end = r.End.Col
		}
		for col := start; col < end && col < len(b.lines[row]); col++ {
			fn(&b.lines[row][col])
		}
	}
}

// commitEdit applies one replacement as a single change from source.
func (b *Buffer) commitEdit(source ChangeSource, r Range, text string, f Format) bool {
	change := b.beginChange(source)
	nextCursor, applied, changed := b.replaceRange(r, text, f)
	if !changed {
		return false
	}
	b.cursor = nextCursor
	b.sel = selectionState{}
	b.version++
	change.addAppliedEdit(applied)
	b.commitChange(change)
	return true
}

func (b *Buffer) replaceRange(r Range, text string, f Format) (nextCursor Pos, applied AppliedEdit, changed bool) {
	r = NormalizeRange(ClampRange(r, len(b.lines), b.lineLen))
	if r.IsEmpty() && text == "" {
		return b.cursor, AppliedEdit{}, false
	}

	ins := splitLines(text, f)
	if linesEqual(cellsInRange(b.lines, r), ins) {
		return b.cursor, AppliedEdit{}, false
	}

	startRow, startCol := r.Start.Row, r.Start.Col
	endRow, endCol := r.End.Row, r.End.Col
	deletedText := textForCellsRange(b.lines, r)

	prefix := append([]cell(nil), b.lines[startRow][:startCol]...)
	suffix := append([]cell(nil), b.lines[endRow][endCol:]...)

	repl := make([][]cell, 0, len(ins))
	if len(ins) == 1 {
		line := make([]cell, 0, len(prefix)+len(ins[0])+len(suffix))
		line = append(line, prefix...)
		line = append(line, ins[0]...)
		line = append(line, suffix...)
		repl = append(repl, line)
		nextCursor = Pos{Row: startRow, Col: len(prefix) + len(ins[0])}
	} else {
		first := make([]cell, 0, len(prefix)+len(ins[0]))
		first = append(first, prefix...)
		first = append(first, ins[0]...)
		repl = append(repl, first)

		for i := 1; i < len(ins)-1; i++ {
			repl = append(repl, ins[i])
		}

		lastPart := ins[len(ins)-1]
		last := make([]cell, 0, len(lastPart)+len(suffix))
		last = append(last, lastPart...)
		last = append(last, suffix...)
		repl = append(repl, last)

		nextCursor = Pos{Row: startRow + len(ins) - 1, Col: len(lastPart)}
	}

	before := b.lines[:startRow]
	after := b.lines[endRow+1:]
	out := make([][]cell, 0, len(before)+len(repl)+len(after))
	out = append(out, before...)
	out = append(out, repl...)
	out = append(out, after...)

	b.lines = out
	applied = AppliedEdit{
		RangeBefore: r,
		RangeAfter:  Range{Start: r.Start, End: nextCursor},
		InsertText:  text,
		DeletedText: deletedText,
	}
	return nextCursor, applied, true
}

// cellsInRange returns the cells covered by r as lines (r must be clamped).
func cellsInRange(lines [][]cell, r Range) [][]cell {
	r = NormalizeRange(r)
	if r.Start.Row == r.End.Row {
		return [][]cell{lines[r.Start.Row][r.Start.Col:r.End.Col]}
	}
	out := make([][]cell, 0, r.End.Row-r.Start.Row+1)
	out = append(out, lines[r.Start.Row][r.Start.Col:])
	for row := r.Start.Row + 1; row < r.End.Row; row++ {
		out = append(out, lines[row])
	}
	out = append(out, lines[r.End.Row][:r.End.Col])
	return out
}

func textForCellsRange(lines [][]cell, r Range) string {
	r = NormalizeRange(r)
	if r.IsEmpty() {
		return ""
	}
	var sb strings.Builder
	for i, line := range cellsInRange(lines, r) {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range line {
			sb.WriteRune(c.r)
		}
	}
	return sb.String()
}
