package buffer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBuffer_NewSplitsLines(t *testing.T) {
	b := New("ab\n\ncd", Options{})
	if got, want := b.LineCount(), 3; got != want {
		t.Fatalf("line count: got %d, want %d", got, want)
	}
	if got, want := b.Text(), "ab\n\ncd"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := b.Len(), 6; got != want {
		t.Fatalf("len: got %d, want %d", got, want)
	}
}

func TestBuffer_EmptyDocument(t *testing.T) {
	b := New("", Options{})
	if got := b.LineCount(); got != 1 {
		t.Fatalf("line count: got %d, want 1", got)
	}
	if got := b.Len(); got != 0 {
		t.Fatalf("len: got %d, want 0", got)
	}
	if got := b.TextRange(0, 10); got != "" {
		t.Fatalf("text range: got %q, want empty", got)
	}

	b = NewFromLines(nil, Options{})
	if got := b.LineCount(); got != 1 {
		t.Fatalf("line count from nil lines: got %d, want 1", got)
	}
}

func TestBuffer_NewFromLinesRoundTripsRuns(t *testing.T) {
	lines := [][]Run{
		{
			{Text: "Hi "},
			{Text: "@Bob", Format: Format{Bold: true, Mention: "Bob"}},
			{Text: " ", Format: Format{Bold: true}},
		},
		nil,
		{{Text: "end", Format: Format{Italic: true}}},
	}
	b := NewFromLines(lines, Options{})

	if diff := cmp.Diff(lines, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
	if got, want := b.Text(), "Hi @Bob \n\nend"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestBuffer_LinesMergesAdjacentEqualFormats(t *testing.T) {
	b := NewFromLines([][]Run{{
		{Text: "ab", Format: Format{Bold: true}},
		{Text: "cd", Format: Format{Bold: true}},
		{Text: "e"},
	}}, Options{})

	want := [][]Run{{
		{Text: "abcd", Format: Format{Bold: true}},
		{Text: "e"},
	}}
	if diff := cmp.Diff(want, b.Lines()); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestBuffer_OffsetAndPosAt(t *testing.T) {
	b := New("ab\ncde\n", Options{})

	cases := []struct {
		pos    Pos
		offset int
	}{
		{pos: Pos{Row: 0, Col: 0}, offset: 0},
		{pos: Pos{Row: 0, Col: 2}, offset: 2},
		{pos: Pos{Row: 1, Col: 0}, offset: 3},
		{pos: Pos{Row: 1, Col: 3}, offset: 6},
		{pos: Pos{Row: 2, Col: 0}, offset: 7},
	}
	for _, tc := range cases {
		if got := b.Offset(tc.pos); got != tc.offset {
			t.Fatalf("Offset(%v): got %d, want %d", tc.pos, got, tc.offset)
		}
		if got := b.PosAt(tc.offset); got != tc.pos {
			t.Fatalf("PosAt(%d): got %v, want %v", tc.offset, got, tc.pos)
		}
	}

	if got, want := b.PosAt(99), (Pos{Row: 2, Col: 0}); got != want {
		t.Fatalf("PosAt past end: got %v, want %v", got, want)
	}
	if got, want := b.PosAt(-3), (Pos{}); got != want {
		t.Fatalf("PosAt negative: got %v, want %v", got, want)
	}
	if got, want := b.Offset(Pos{Row: 0, Col: 99}), 2; got != want {
		t.Fatalf("Offset clamps col: got %d, want %d", got, want)
	}
}

func TestBuffer_TextRange(t *testing.T) {
	b := New("hello @al\nnext", Options{})

	cases := []struct {
		index, length int
		want          string
	}{
		{index: 0, length: 9, want: "hello @al"},
		{index: 6, length: 3, want: "@al"},
		{index: 0, length: 11, want: "hello @al\nn"},
		{index: 12, length: 100, want: "xt"},
		{index: -5, length: 10, want: "hello"},
		{index: 3, length: 0, want: ""},
		{index: 100, length: 2, want: ""},
	}
	for _, tc := range cases {
		if got := b.TextRange(tc.index, tc.length); got != tc.want {
			t.Fatalf("TextRange(%d, %d): got %q, want %q", tc.index, tc.length, got, tc.want)
		}
	}
}

func TestBuffer_SetCursorClampsAndBumpsVersion(t *testing.T) {
	b := New("ab\nc", Options{})
	v := b.Version()

	b.SetCursor(Pos{Row: 5, Col: 5})
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 1}); got != want {
		t.Fatalf("cursor: got %v, want %v", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version: got %d, want %d", got, v+1)
	}

	b.SetCursor(Pos{Row: 1, Col: 1})
	if got := b.Version(); got != v+1 {
		t.Fatalf("no-op SetCursor bumped version: got %d, want %d", got, v+1)
	}
	if _, ok := b.LastChange(); ok {
		t.Fatalf("cursor moves must not record a content change")
	}
}

func TestBuffer_SelectionLifecycle(t *testing.T) {
	b := New("hello", Options{})
	b.SetSelection(Range{Start: Pos{Col: 4}, End: Pos{Col: 1}})

	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected active selection")
	}
	if got, want := r, (Range{Start: Pos{Col: 1}, End: Pos{Col: 4}}); got != want {
		t.Fatalf("normalized selection: got %v, want %v", got, want)
	}
	raw, _ := b.SelectionRaw()
	if got, want := raw.Start, (Pos{Col: 4}); got != want {
		t.Fatalf("raw anchor: got %v, want %v", got, want)
	}

	v := b.Version()
	b.ClearSelection()
	if _, ok := b.Selection(); ok {
		t.Fatalf("selection should be cleared")
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version after clear: got %d, want %d", got, v+1)
	}

	b.SetSelection(Range{Start: Pos{Col: 2}, End: Pos{Col: 2}})
	if _, ok := b.Selection(); ok {
		t.Fatalf("empty selection should be inactive")
	}
}

func TestBuffer_FormatAt(t *testing.T) {
	b := NewFromLines([][]Run{{{Text: "a"}, {Text: "b", Format: Format{Bold: true}}}}, Options{})

	if f, ok := b.FormatAt(Pos{Col: 1}); !ok || !f.Bold {
		t.Fatalf("FormatAt(0,1): got %+v ok=%v, want bold", f, ok)
	}
	if _, ok := b.FormatAt(Pos{Col: 2}); ok {
		t.Fatalf("FormatAt at EOL should report no rune")
	}
}
