package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/iw2rmb/mentionpad/buffer"
	"github.com/iw2rmb/mentionpad/mention"
)

// MentionState is a snapshot of the suggestion dropdown.
//
// Selected is an index into Items, or -1 when no row is highlighted.
type MentionState struct {
	Visible bool
	// Query is the fragment typed after "@".
	Query string
	// Anchor is the cursor position the token was detected at. The dropdown
	// is drawn one row below it, or above when there is no room below.
	Anchor   buffer.Pos
	Items    []mention.Candidate
	Selected int
}

func hiddenMentionState() MentionState {
	return MentionState{Selected: -1}
}

// MentionState returns the current dropdown state.
func (m Model) MentionState() MentionState {
	st := m.mention
	st.Items = append([]mention.Candidate(nil), st.Items...)
	return st
}

// Candidates returns the mentionable list.
func (m Model) Candidates() []mention.Candidate {
	return append([]mention.Candidate(nil), m.cfg.Candidates...)
}

// detectMention looks for a "@token" ending at the cursor and shows or hides
// the dropdown accordingly.
func (m *Model) detectMention() {
	cur := m.buf.Cursor()
	tok, ok := mention.MatchToken(m.buf.TextRange(0, m.buf.Offset(cur)))
	if !ok {
		m.hideMention()
		return
	}

	items := mention.Filter(m.cfg.Candidates, tok.Query)
	selected := 0
	if len(items) == 0 {
		selected = -1
	}
	m.mention = MentionState{
		Visible:  true,
		Query:    tok.Query,
		Anchor:   cur,
		Items:    items,
		Selected: selected,
	}
	m.dropdown = m.dropdown.SetItems(items).SetSelected(selected)
}

func (m *Model) hideMention() {
	m.mention = hiddenMentionState()
	m.dropdown = m.dropdown.SetItems(nil)
}

// moveMentionSelection cycles the highlight by one row, wrapping at both
// ends. From no highlight, down selects the first row and up the last.
func (m *Model) moveMentionSelection(delta int) {
	n := len(m.mention.Items)
	if n == 0 {
		return
	}
	sel := m.mention.Selected
	if delta < 0 {
		if sel > 0 {
			sel--
		} else {
			sel = n - 1
		}
	} else {
		if sel < n-1 {
			sel++
		} else {
			sel = 0
		}
	}
	m.mention.Selected = sel
	m.dropdown = m.dropdown.SetSelected(sel)
}

// ConfirmMention replaces the "@token" ending at the cursor with a mention of
// c: "@Value" in bold carrying the mention annotation, followed by a bold
// space. The cursor ends up after the space, the editor is focused and the
// dropdown is hidden.
//
// Without a token at the cursor nothing changes and false is returned.
func (m Model) ConfirmMention(c mention.Candidate) (Model, bool) {
	if m.buf == nil || m.cfg.ReadOnly {
		return m, false
	}

	cur := m.buf.Cursor()
	tok, ok := mention.MatchToken(m.buf.TextRange(0, m.buf.Offset(cur)))
	if !ok {
		return m, false
	}

	text := mention.InsertText(c)
	label := strings.TrimSuffix(text, " ")
	start := m.buf.PosAt(tok.Start)
	labelEnd := buffer.Pos{Row: start.Row, Col: start.Col + utf8.RuneCountInString(label)}

	m.buf.Apply(buffer.ChangeSourceAPI,
		buffer.Edit{
			Range:  buffer.Range{Start: start, End: cur},
			Text:   label,
			Format: buffer.Format{Bold: true, Mention: c.Value},
		},
		buffer.Edit{
			Range:  buffer.Range{Start: labelEnd, End: labelEnd},
			Text:   text[len(label):],
			Format: buffer.Format{Bold: true},
		},
	)

	m = m.Focus()
	m.hideMention()
	m.syncFromBuffer()
	return m, true
}

// confirmSelected confirms the highlighted row, if any.
func (m Model) confirmSelected() Model {
	sel := m.mention.Selected
	if sel < 0 || sel >= len(m.mention.Items) {
		return m
	}
	m, _ = m.ConfirmMention(m.mention.Items[sel])
	return m
}
