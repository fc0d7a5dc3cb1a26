package buffer

import "strings"

type Options struct {
	// NoFormatInheritance makes typed text plain instead of inheriting the
	// format of the rune before the cursor. Toggled formats still apply.
	NoFormatInheritance bool
}

type cell struct {
	r rune
	f Format
}

type selectionState struct {
	active bool
	anchor Pos
	end    Pos
}

// Buffer is the pure document state: formatted text, cursor, and selection.
type Buffer struct {
	lines   [][]cell
	version uint64

	cursor Pos
	sel    selectionState

	// pending overrides the inherited typing format until the cursor moves.
	pending    Format
	hasPending bool

	opt Options

	lastChange    Change
	hasLastChange bool
}

func New(text string, opt Options) *Buffer {
	return &Buffer{
		lines: splitLines(text, Format{}),
		opt:   opt,
	}
}

// NewFromLines builds a buffer from formatted lines. A nil or empty slice is
// an empty document.
func NewFromLines(lines [][]Run, opt Options) *Buffer {
	return &Buffer{
		lines: cellsFromRuns(lines),
		opt:   opt,
	}
}

func (b *Buffer) Text() string {
	if len(b.lines) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for _, c := range line {
			sb.WriteRune(c.r)
		}
	}
	return sb.String()
}

// Lines returns the document as formatted runs, one slice per line.
func (b *Buffer) Lines() [][]Run {
	return runsFromCells(b.lines)
}

// LineRuns returns the formatted runs of one line, or nil when row is out of
// range.
func (b *Buffer) LineRuns(row int) []Run {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	return runsForLine(b.lines[row])
}

// LineCount returns the number of logical lines (always >= 1).
func (b *Buffer) LineCount() int { return len(b.lines) }

// LineText returns the plain text of row, or "" when row is out of range.
func (b *Buffer) LineText(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	rs := make([]rune, len(b.lines[row]))
	for i, c := range b.lines[row] {
		rs[i] = c.r
	}
	return string(rs)
}

// FormatAt returns the format of the rune at p, if p addresses a rune.
func (b *Buffer) FormatAt(p Pos) (Format, bool) {
	if p.Row < 0 || p.Row >= len(b.lines) {
		return Format{}, false
	}
	line := b.lines[p.Row]
	if p.Col < 0 || p.Col >= len(line) {
		return Format{}, false
	}
	return line[p.Col].f, true
}

func (b *Buffer) Version() uint64 { return b.version }

func (b *Buffer) Cursor() Pos { return b.cursor }

func (b *Buffer) SetCursor(p Pos) {
	next := b.clampPos(p)
	if next == b.cursor {
		return
	}
	b.cursor = next
	b.hasPending = false
	b.version++
}

func (b *Buffer) Selection() (Range, bool) {
	if !b.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: b.sel.anchor, End: b.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// SelectionRaw returns the raw selection anchor/end without normalization.
//
// This is useful for UI layers that need to preserve the selection direction
// (e.g. shift+click behavior) while still treating empty selections as inactive.
func (b *Buffer) SelectionRaw() (Range, bool) {
	if !b.sel.active || b.sel.anchor == b.sel.end {
		return Range{}, false
	}
	return Range{Start: b.sel.anchor, End: b.sel.end}, true
}

func (b *Buffer) SetSelection(r Range) {
	clamped := ClampRange(r, len(b.lines), b.lineLen)
	next := selectionState{active: true, anchor: clamped.Start, end: clamped.End}
	if clamped.Start == clamped.End {
		next = selectionState{}
	}
	if selectionStateEqual(b.sel, next) {
		return
	}
	b.sel = next
	b.version++
}

func (b *Buffer) ClearSelection() {
	if !b.sel.active {
		return
	}
	_, had := b.Selection()
	b.sel = selectionState{}
	if had {
		b.version++
	}
}

// Len returns the flat length of the document: runes plus line breaks.
func (b *Buffer) Len() int {
	n := len(b.lines) - 1
	for _, line := range b.lines {
		n += len(line)
	}
	if n < 0 {
		return 0
	}
	return n
}

// Offset converts p (clamped) into a flat offset.
func (b *Buffer) Offset(p Pos) int {
	p = b.clampPos(p)
	off := 0
	for row := 0; row < p.Row; row++ {
		off += len(b.lines[row]) + 1
	}
	return off + p.Col
}

// PosAt converts a flat offset (clamped to [0, Len()]) into a position.
func (b *Buffer) PosAt(offset int) Pos {
	if offset <= 0 {
		return Pos{}
	}
	for row, line := range b.lines {
		if offset <= len(line) {
			return Pos{Row: row, Col: offset}
		}
		offset -= len(line) + 1
	}
	last := len(b.lines) - 1
	return Pos{Row: last, Col: len(b.lines[last])}
}

// TextRange returns length runes of plain text starting at flat offset index.
// Out-of-range requests are clamped; a non-positive length yields "".
func (b *Buffer) TextRange(index, length int) string {
	if length <= 0 {
		return ""
	}
	total := b.Len()
	start := clampInt(index, 0, total)
	end := clampInt(index+length, start, total)
	if start == end {
		return ""
	}
	return textForCellsRange(b.lines, Range{Start: b.PosAt(start), End: b.PosAt(end)})
}

// TypingFormat returns the format InsertText would give the next rune.
func (b *Buffer) TypingFormat() Format {
	if b.hasPending {
		return b.pending
	}
	if b.opt.NoFormatInheritance {
		return Format{}
	}
	line := b.lines[b.cursor.Row]
	if b.cursor.Col > 0 && b.cursor.Col <= len(line) {
		return line[b.cursor.Col-1].f.typing()
	}
	return Format{}
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

func (b *Buffer) clampPos(p Pos) Pos {
	return ClampPos(p, len(b.lines), b.lineLen)
}

func splitLines(text string, f Format) [][]cell {
	parts := strings.Split(text, "\n")
	lines := make([][]cell, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, cellsForText(s, f))
	}
	if len(lines) == 0 {
		lines = append(lines, nil)
	}
	return lines
}

func cellsForText(s string, f Format) []cell {
	if s == "" {
		return nil
	}
	out := make([]cell, 0, len(s))
	for _, r := range s {
		out = append(out, cell{r: r, f: f})
	}
	return out
}

func cellsFromRuns(lines [][]Run) [][]cell {
	out := make([][]cell, 0, len(lines))
	for _, runs := range lines {
		var line []cell
		for _, run := range runs {
			// Line breaks inside a run would silently split rows; drop them.
			text := strings.ReplaceAll(run.Text, "\n", "")
			line = append(line, cellsForText(text, run.Format)...)
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		out = append(out, nil)
	}
	return out
}

func cloneLines(lines [][]cell) [][]cell {
	out := make([][]cell, len(lines))
	for i, line := range lines {
		out[i] = append([]cell(nil), line...)
	}
	return out
}

func linesEqual(a, b [][]cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !cellsEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func cellsEqual(a, b []cell) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
