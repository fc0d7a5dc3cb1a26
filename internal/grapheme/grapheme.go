// Package grapheme holds the cell-width and character-class helpers shared by
// the buffer, editor and dropdown packages.
package grapheme

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the tab stop distance used when callers pass <= 0.
const DefaultTabWidth = 4

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// RuneWidth returns the terminal cell width of r when drawn at visualCol.
//
// Tabs expand to the next tab stop. Control runes are drawn as nothing.
func RuneWidth(r rune, visualCol, tabWidth int) int {
	if r == '\t' {
		return TabAdvance(visualCol, tabWidth)
	}
	if r < 0x20 || r == 0x7f {
		return 0
	}
	w := runewidth.RuneWidth(r)
	if w < 0 {
		return 0
	}
	return w
}

// Width returns the terminal cell width of a single-line string.
func Width(s string) int {
	if s == "" {
		return 0
	}
	w := runewidth.StringWidth(s)
	if w == 0 {
		// runewidth reports zero for some emoji sequences uniseg measures.
		w = uniseg.StringWidth(s)
	}
	return w
}

// TabAdvance returns the cells needed to reach the next tab stop.
func TabAdvance(visualCol, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	if visualCol < 0 {
		visualCol = 0
	}
	return tabWidth - visualCol%tabWidth
}

// IsSpace reports whether r is Unicode whitespace.
func IsSpace(r rune) bool { return unicode.IsSpace(r) }

// IsWord reports whether r belongs to the ASCII word class [0-9A-Za-z_].
//
// This is the class matched by `\w` in the mention token pattern, so word
// movement and token matching agree on what a word is.
func IsWord(r rune) bool {
	return r == '_' ||
		(r >= '0' && r <= '9') ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z')
}
