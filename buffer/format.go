package buffer

// Attr names one inline style that can be toggled on a range.
type Attr uint8

const (
	AttrBold Attr = iota
	AttrItalic
	AttrUnderline
	AttrStrike
)

// Format is the set of inline attributes carried by a rune.
//
// A non-empty Mention marks the rune as part of a mention annotation whose
// display value is Mention.
type Format struct {
	Bold      bool
	Italic    bool
	Underline bool
	Strike    bool

	Mention string
}

func (f Format) IsZero() bool { return f == Format{} }

// Has reports whether attribute a is set.
func (f Format) Has(a Attr) bool {
	switch a {
	case AttrBold:
		return f.Bold
	case AttrItalic:
		return f.Italic
	case AttrUnderline:
		return f.Underline
	case AttrStrike:
		return f.Strike
	default:
		return false
	}
}

// With returns f with attribute a set to on.
func (f Format) With(a Attr, on bool) Format {
	switch a {
	case AttrBold:
		f.Bold = on
	case AttrItalic:
		f.Italic = on
	case AttrUnderline:
		f.Underline = on
	case AttrStrike:
		f.Strike = on
	}
	return f
}

// Plain drops the styling attributes and keeps the mention annotation.
func (f Format) Plain() Format {
	return Format{Mention: f.Mention}
}

// typing is the format new text inherits from its neighbour: everything but
// the mention annotation, which only the mention flow may create.
func (f Format) typing() Format {
	f.Mention = ""
	return f
}

// Run is a maximal stretch of same-format text within one line.
type Run struct {
	Text   string
	Format Format
}

// PlainLines converts text into unformatted lines, one Run per non-empty line.
func PlainLines(text string) [][]Run {
	lines := splitLines(text, Format{})
	return runsFromCells(lines)
}

func runsFromCells(lines [][]cell) [][]Run {
	out := make([][]Run, 0, len(lines))
	for _, line := range lines {
		out = append(out, runsForLine(line))
	}
	return out
}

func runsForLine(line []cell) []Run {
	if len(line) == 0 {
		return nil
	}
	var runs []Run
	start := 0
	for i := 1; i <= len(line); i++ {
		if i < len(line) && line[i].f == line[start].f {
			continue
		}
		rs := make([]rune, 0, i-start)
		for _, c := range line[start:i] {
			rs = append(rs, c.r)
		}
		runs = append(runs, Run{Text: string(rs), Format: line[start].f})
		start = i
	}
	return runs
}
