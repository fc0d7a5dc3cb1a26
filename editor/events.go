package editor

import "github.com/iw2rmb/mentionpad/buffer"

// ChangeEvent describes the document after a content change.
type ChangeEvent struct {
	Version uint64
	Source  buffer.ChangeSource
	Cursor  buffer.Pos

	Selection struct {
		Range  buffer.Range
		Active bool
	}

	// HTML is the content value, as returned by Model.Value.
	HTML string
	// Text is the plain text, lines joined by "\n".
	Text string
	// Mentions are the distinct mention values in HTML, in order of first
	// appearance.
	Mentions []string
}

func buildChangeEvent(b *buffer.Buffer, source buffer.ChangeSource, html string, mentions []string) ChangeEvent {
	ev := ChangeEvent{
		Version:  b.Version(),
		Source:   source,
		Cursor:   b.Cursor(),
		HTML:     html,
		Text:     b.Text(),
		Mentions: append([]string(nil), mentions...),
	}
	if r, ok := b.Selection(); ok {
		ev.Selection.Active = true
		ev.Selection.Range = r
	}
	return ev
}
