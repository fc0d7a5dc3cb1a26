package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/mentionpad/buffer"
	"github.com/iw2rmb/mentionpad/mention"
)

func TestMention_AtShowsAllCandidates(t *testing.T) {
	m := typeText(newEditor(Config{}), "hi @")

	st := m.MentionState()
	if !st.Visible {
		t.Fatalf("dropdown should be visible")
	}
	if st.Query != "" {
		t.Fatalf("query: got %q, want empty", st.Query)
	}
	if diff := cmp.Diff(mention.DefaultCandidates(), st.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if st.Selected != 0 {
		t.Fatalf("selected: got %d, want 0", st.Selected)
	}
	if want := (buffer.Pos{Row: 0, Col: 4}); st.Anchor != want {
		t.Fatalf("anchor: got %v, want %v", st.Anchor, want)
	}
}

func TestMention_FiltersByQuery(t *testing.T) {
	m := typeText(newEditor(Config{}), "@B")

	st := m.MentionState()
	want := []mention.Candidate{{ID: 2, Value: "Bob"}}
	if diff := cmp.Diff(want, st.Items); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
	if st.Query != "B" {
		t.Fatalf("query: got %q, want %q", st.Query, "B")
	}
}

func TestMention_NoMatchesKeepsDropdownWithoutSelection(t *testing.T) {
	m := typeText(newEditor(Config{}), "@z")

	st := m.MentionState()
	if !st.Visible || len(st.Items) != 0 || st.Selected != -1 {
		t.Fatalf("state: got %+v, want visible, empty, selected -1", st)
	}

	m = press(m, tea.KeyDown)
	if got := m.MentionState().Selected; got != -1 {
		t.Fatalf("selected after down: got %d, want -1", got)
	}

	m = press(m, tea.KeyEnter)
	if got, want := m.Buffer().Text(), "@z"; got != want {
		t.Fatalf("enter with no highlight must be consumed: got %q, want %q", got, want)
	}
}

func TestMention_SpaceEndsToken(t *testing.T) {
	m := typeText(newEditor(Config{}), "@al ")
	if m.MentionState().Visible {
		t.Fatalf("dropdown should hide once the token ends")
	}
	if got := m.MentionState().Selected; got != -1 {
		t.Fatalf("selected: got %d, want -1", got)
	}
}

func TestMention_BackspaceOverAtHides(t *testing.T) {
	m := typeText(newEditor(Config{}), "@")
	m = press(m, tea.KeyBackspace)
	if m.MentionState().Visible {
		t.Fatalf("dropdown should hide after deleting @")
	}
}

func TestMention_ConfirmReplacesToken(t *testing.T) {
	m := typeText(newEditor(Config{}), "hey @ali")
	if got := m.MentionState().Items; len(got) != 1 || got[0].Value != "Alice" {
		t.Fatalf("items: got %v, want [Alice]", got)
	}

	m = press(m, tea.KeyEnter)

	if got, want := m.Buffer().Text(), "hey @Alice "; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 0, Col: 11}); got != want {
		t.Fatalf("cursor: got %v, want %v", got, want)
	}

	wantRuns := [][]buffer.Run{{
		{Text: "hey "},
		{Text: "@Alice", Format: buffer.Format{Bold: true, Mention: "Alice"}},
		{Text: " ", Format: buffer.Format{Bold: true}},
	}}
	if diff := cmp.Diff(wantRuns, m.Buffer().Lines()); diff != "" {
		t.Fatalf("runs mismatch (-want +got):\n%s", diff)
	}

	wantValue := `<p>hey <span class="mention" data-value="Alice"><strong>@Alice</strong></span><strong> </strong></p>`
	if got := m.Value(); got != wantValue {
		t.Fatalf("value:\n got: %q\nwant: %q", got, wantValue)
	}
	if diff := cmp.Diff([]string{"Alice"}, m.Mentions()); diff != "" {
		t.Fatalf("mentions mismatch (-want +got):\n%s", diff)
	}

	st := m.MentionState()
	if st.Visible || st.Selected != -1 {
		t.Fatalf("dropdown after confirm: got %+v, want hidden with selected -1", st)
	}
	if !m.Focused() {
		t.Fatalf("editor should be focused after confirm")
	}
}

func TestMention_ConfirmOnLaterLine(t *testing.T) {
	m := newEditor(Config{Value: "<p>first</p>"})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlEnd})
	m = typeText(m, "\n@b")
	m = press(m, tea.KeyEnter)

	if got, want := m.Buffer().Text(), "first\n@Bob "; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 1, Col: 5}); got != want {
		t.Fatalf("cursor: got %v, want %v", got, want)
	}
}

func TestMention_ArrowKeysWrap(t *testing.T) {
	m := typeText(newEditor(Config{}), "@")

	m = press(m, tea.KeyUp)
	if got := m.MentionState().Selected; got != 2 {
		t.Fatalf("selected after up from 0: got %d, want 2", got)
	}
	m = press(m, tea.KeyDown)
	if got := m.MentionState().Selected; got != 0 {
		t.Fatalf("selected after down from 2: got %d, want 0", got)
	}
	m = press(m, tea.KeyDown)
	if got := m.MentionState().Selected; got != 1 {
		t.Fatalf("selected after down from 0: got %d, want 1", got)
	}

	// Arrows are consumed while the dropdown is open.
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 0, Col: 1}); got != want {
		t.Fatalf("cursor: got %v, want %v", got, want)
	}

	m = press(m, tea.KeyEnter)
	if got, want := m.Buffer().Text(), "@Bob "; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestMention_EscapeHidesAndEnterDoesNotConfirm(t *testing.T) {
	m := typeText(newEditor(Config{}), "@ali")

	m = press(m, tea.KeyEsc)
	st := m.MentionState()
	if st.Visible || st.Selected != -1 {
		t.Fatalf("state after esc: got %+v, want hidden with selected -1", st)
	}

	m = press(m, tea.KeyEnter)
	if got, want := m.Buffer().Text(), "@ali\n"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got := m.Mentions(); len(got) != 0 {
		t.Fatalf("mentions: got %v, want none", got)
	}
}

func TestMention_CursorMovesDoNotRedetect(t *testing.T) {
	m := typeText(newEditor(Config{}), "@al")
	m = press(m, tea.KeyEsc)

	m = press(m, tea.KeyLeft)
	m = press(m, tea.KeyRight)
	if m.MentionState().Visible {
		t.Fatalf("cursor movement reopened the dropdown")
	}

	m = typeText(newEditor(Config{}), "@al")
	m = press(m, tea.KeyLeft)
	if !m.MentionState().Visible {
		t.Fatalf("cursor movement closed the dropdown")
	}
}

func TestMention_APIChangesDoNotDetect(t *testing.T) {
	m := newEditor(Config{})
	m.Buffer().Apply(buffer.ChangeSourceAPI, buffer.Edit{Text: "@al"})
	m, _ = m.Update(nil)

	if m.MentionState().Visible {
		t.Fatalf("api change opened the dropdown")
	}
	if got, want := m.Value(), "<p>@al</p>"; got != want {
		t.Fatalf("value: got %q, want %q", got, want)
	}
}

func TestMention_ConfirmWithoutTokenIsNoOp(t *testing.T) {
	m := newEditor(Config{Value: "<p>hello</p>"})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	ver := m.Buffer().Version()
	value := m.Value()

	m, ok := m.ConfirmMention(mention.Candidate{ID: 1, Value: "Alice"})
	if ok {
		t.Fatalf("confirm without token reported success")
	}
	if got := m.Buffer().Version(); got != ver {
		t.Fatalf("version: got %d, want %d", got, ver)
	}
	if got := m.Value(); got != value {
		t.Fatalf("value: got %q, want %q", got, value)
	}

	// Confirming twice is equally inert.
	m, ok = m.ConfirmMention(mention.Candidate{ID: 1, Value: "Alice"})
	if ok || m.Buffer().Version() != ver {
		t.Fatalf("second confirm mutated the document")
	}
}

func TestMention_ConfirmDirectly(t *testing.T) {
	m := typeText(newEditor(Config{}), "@")

	m, ok := m.ConfirmMention(mention.Candidate{ID: 3, Value: "Charlie"})
	if !ok {
		t.Fatalf("confirm failed")
	}
	if got, want := m.Buffer().Text(), "@Charlie "; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}

	// Typing after a mention continues in bold but outside the annotation.
	m = typeText(m, "x")
	if diff := cmp.Diff([]string{"Charlie"}, m.Mentions()); diff != "" {
		t.Fatalf("mentions mismatch (-want +got):\n%s", diff)
	}
	f, ok := m.Buffer().FormatAt(buffer.Pos{Row: 0, Col: 9})
	if !ok || f != (buffer.Format{Bold: true}) {
		t.Fatalf("typed format: got %+v (%v), want bold only", f, ok)
	}
}

func TestMention_CustomCandidates(t *testing.T) {
	m := newEditor(Config{Candidates: []mention.Candidate{{ID: 7, Value: "Zed"}, {ID: 8, Value: "zoe"}}})
	m = typeText(m, "@z")

	if got := len(m.MentionState().Items); got != 2 {
		t.Fatalf("items: got %d, want 2", got)
	}
}
