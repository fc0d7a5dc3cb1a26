package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/mentionpad/buffer"
)

func TestPopup_RendersBelowAnchor(t *testing.T) {
	m := New(Config{}).SetSize(12, 4)
	m = typeText(m, "@")

	assertLines(t, viewLines(m), []string{"@", "  Alice", "  Bob", "  Charlie"})

	x, y, w, h, ok := m.SuggestionBounds()
	if !ok || x != 1 || y != 1 || w != 9 || h != 3 {
		t.Fatalf("bounds: got (%d,%d,%d,%d,%v), want (1,1,9,3,true)", x, y, w, h, ok)
	}
}

func TestPopup_FlipsAboveWhenNoSpaceBelow(t *testing.T) {
	m := New(Config{}).SetSize(12, 4)
	m = typeText(m, "\n\n\n@")

	assertLines(t, viewLines(m), []string{"  Alice", "  Bob", "  Charlie", "@"})
}

func TestPopup_ShrinksToAvailableRows(t *testing.T) {
	m := New(Config{}).SetSize(12, 3)
	m = typeText(m, "\n@")

	assertLines(t, viewLines(m), []string{"", "@", "  Alice"})

	// Selecting a row outside the shrunk window scrolls it into view.
	m = press(m, tea.KeyUp)
	assertLines(t, viewLines(m), []string{"", "@", "  Charlie"})
}

func TestPopup_AccountsForGutter(t *testing.T) {
	m := New(Config{ShowLineNums: true}).SetSize(12, 4)
	m = typeText(m, "@")

	assertLines(t, viewLines(m), []string{"1 @", "    Alice", "    Bob", "    Charlie"})
}

func TestPopup_EmptyListDrawsPlaceholder(t *testing.T) {
	m := New(Config{}).SetSize(40, 10)
	m = typeText(m, "line one\n@z")

	x, y, w, h, ok := m.SuggestionBounds()
	if !ok || x != 0 || y != 2 || w != 12 || h != 1 {
		t.Fatalf("bounds: got (%d,%d,%d,%d,%v), want (0,2,12,1,true)", x, y, w, h, ok)
	}
	got := viewLines(m)
	if got[2] != " No matches" {
		t.Fatalf("row 2: got %q, want %q", got[2], " No matches")
	}

	// The drawn list takes the dropdown keys.
	before := m.Buffer().Cursor()
	m = press(m, tea.KeyUp)
	m = press(m, tea.KeyEnter)
	if got := m.Buffer().Cursor(); got != before {
		t.Fatalf("cursor: got %v, want %v", got, before)
	}
	if got, want := m.Buffer().Text(), "line one\n@z"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}

	// Clicking the placeholder row confirms nothing.
	m, _ = m.Update(tea.MouseMsg{X: 2, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got, want := m.Buffer().Text(), "line one\n@z"; got != want {
		t.Fatalf("text after click: got %q, want %q", got, want)
	}
	if !m.MentionState().Visible {
		t.Fatalf("dropdown should stay open")
	}
}

func TestPopup_UndrawableListLetsKeysThrough(t *testing.T) {
	// openOffScreen leaves the dropdown open with its anchor scrolled out of
	// view and the cursor at the document start.
	openOffScreen := func(t *testing.T) Model {
		t.Helper()
		m := New(Config{Value: "<p>a</p><p>b</p><p>c</p><p>d</p>"}).SetSize(40, 2)
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlEnd})
		m = typeText(m, " @z")
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlHome})
		if !m.MentionState().Visible {
			t.Fatalf("dropdown state should be visible")
		}
		if _, _, _, _, ok := m.SuggestionBounds(); ok {
			t.Fatalf("dropdown should not be drawn with its anchor off screen")
		}
		return m
	}

	m := openOffScreen(t)
	m = press(m, tea.KeyDown)
	if got, want := m.Buffer().Cursor(), (buffer.Pos{Row: 1}); got != want {
		t.Fatalf("cursor after down: got %v, want %v", got, want)
	}
	m = press(m, tea.KeyEsc)
	if m.MentionState().Visible {
		t.Fatalf("esc should still hide the dropdown")
	}

	m = openOffScreen(t)
	m = press(m, tea.KeyEnter)
	if got, want := m.Buffer().Text(), "\na\nb\nc\nd @z"; got != want {
		t.Fatalf("text after enter: got %q, want %q", got, want)
	}
}

func TestPopup_ClickConfirmsRow(t *testing.T) {
	m := New(Config{}).SetSize(12, 4)
	m = typeText(m, "@")

	m, _ = m.Update(tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if got, want := m.Buffer().Text(), "@Bob "; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if m.MentionState().Visible {
		t.Fatalf("dropdown should hide after click")
	}
}

func TestPopup_ClickOutsideMovesCursorOnly(t *testing.T) {
	m := New(Config{}).SetSize(12, 4)
	m = typeText(m, "ab @")

	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})

	if got := m.Buffer().Text(); got != "ab @" {
		t.Fatalf("text: got %q", got)
	}
	if got := m.Buffer().Cursor().Col; got != 0 {
		t.Fatalf("cursor col: got %d, want 0", got)
	}
	if !m.MentionState().Visible {
		t.Fatalf("cursor moves must not close the dropdown")
	}
}

func TestPopup_WheelScrollsList(t *testing.T) {
	m := New(Config{MaxVisibleSuggestions: 2}).SetSize(12, 4)
	m = typeText(m, "@")
	assertLines(t, viewLines(m), []string{"@", "  Alice", "  Bob", ""})

	m, _ = m.Update(tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assertLines(t, viewLines(m), []string{"@", "  Bob", "  Charlie", ""})

	if got := m.MentionState().Selected; got != 0 {
		t.Fatalf("wheel changed the highlight: got %d", got)
	}

	m, _ = m.Update(tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if got, want := m.Buffer().Text(), "@Bob "; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}
