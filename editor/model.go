package editor

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/mentionpad/buffer"
	"github.com/iw2rmb/mentionpad/dropdown"
	"github.com/iw2rmb/mentionpad/internal/grapheme"
	"github.com/iw2rmb/mentionpad/markup"
)

// Model is a Bubble Tea component that renders and edits a formatted
// document, and offers @mention suggestions while the user types.
type Model struct {
	cfg Config
	buf *buffer.Buffer

	focused bool

	viewport viewport.Model
	xOffset  int

	lastBufVersion    uint64
	lastCursor        buffer.Pos
	lastChangeVersion uint64

	value    string
	mentions []string

	mention  MentionState
	dropdown dropdown.Model

	mouseAnchor   buffer.Pos
	mouseDragging bool
}

// New builds an editor around cfg.Value. Content that cannot be read as HTML
// is loaded as plain text.
func New(cfg Config) Model {
	cfg = normalizeConfig(cfg)

	var buf *buffer.Buffer
	if lines, err := markup.Parse(cfg.Value); err == nil {
		buf = buffer.NewFromLines(lines, cfg.BufferOptions)
	} else {
		buf = buffer.New(cfg.Value, cfg.BufferOptions)
	}

	m := Model{
		cfg:      cfg,
		buf:      buf,
		focused:  true,
		viewport: viewport.New(0, 0),
		mention:  hiddenMentionState(),
		dropdown: dropdown.New(cfg.MaxVisibleSuggestions).SetMaxWidth(cfg.MaxSuggestionWidth),
	}
	m.dropdown.Style = cfg.Style.Dropdown
	m.lastBufVersion = m.buf.Version()
	m.lastCursor = m.buf.Cursor()
	m.value = markup.Render(m.buf.Lines())
	m.mentions = markup.Mentions(m.value)
	m.rebuildContent()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Init() tea.Cmd { return nil }

// Value returns the content HTML.
func (m Model) Value() string { return m.value }

// Mentions returns the distinct mention values in the content, in order of
// first appearance.
func (m Model) Mentions() []string {
	return append([]string(nil), m.mentions...)
}

// SetValue replaces the document with content as an api change. Setting the
// current value again is a no-op. Mention detection does not run.
func (m Model) SetValue(content string) (Model, error) {
	lines, err := markup.Parse(content)
	if err != nil {
		return m, err
	}
	if m.buf.SetContent(lines) {
		m.syncFromBuffer()
	}
	return m, nil
}

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.viewport.Width = width
	m.viewport.Height = height

	m.followCursor()
	m.rebuildContent()
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.followCursor()
		m.rebuildContent()
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.rebuildContent()
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		m.syncFromBuffer()
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m, cmd = m.updateMouse(msg)
		// Don't force-follow the cursor on wheel scrolls.
		m.syncFromBuffer()
		return m, cmd
	default:
		// Hosts may mutate the buffer directly between messages.
		m.syncFromBuffer()
		return m, nil
	}
}

func (m Model) View() string {
	base := m.viewport.View()
	if popup, ok := m.renderPopup(base); ok {
		return popup
	}
	return base
}

// syncFromBuffer reacts to buffer mutations made since the last sync: it
// refreshes the value, runs mention detection for user edits, notifies the
// host and re-renders.
func (m *Model) syncFromBuffer() {
	if m.buf == nil {
		return
	}
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	if ver == m.lastBufVersion && cur == m.lastCursor {
		return
	}
	cursorChanged := cur != m.lastCursor
	m.lastBufVersion = ver
	m.lastCursor = cur

	change, ok := m.buf.LastChange()
	contentChanged := ok && change.VersionAfter != m.lastChangeVersion
	if contentChanged {
		m.lastChangeVersion = change.VersionAfter
		m.value = markup.Render(m.buf.Lines())
		m.mentions = markup.Mentions(m.value)
	}

	if cursorChanged || contentChanged {
		m.followCursor()
	}
	if contentChanged && change.Source == buffer.ChangeSourceUser {
		m.detectMention()
	}
	m.rebuildContent()

	if contentChanged && m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf, change.Source, m.value, m.mentions))
	}
}

func (m *Model) rebuildContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m *Model) followCursor() {
	if m.buf == nil {
		return
	}
	cur := m.buf.Cursor()

	if h := m.visibleRowCount(); h > 0 {
		y := m.viewport.YOffset
		switch {
		case cur.Row < y:
			m.viewport.SetYOffset(cur.Row)
		case cur.Row >= y+h:
			m.viewport.SetYOffset(cur.Row - h + 1)
		}
	}

	w := m.contentWidth()
	if w <= 0 {
		return
	}
	cell := m.cursorCell(cur)
	switch {
	case cell < m.xOffset:
		m.xOffset = cell
	case cell >= m.xOffset+w:
		m.xOffset = cell - w + 1
	}
}

func (m *Model) cursorCell(p buffer.Pos) int {
	return cellForCol(layoutLine(m.lineRuns(p.Row), m.tabWidth()), p.Col)
}

func (m Model) tabWidth() int {
	if m.cfg.TabWidth <= 0 {
		return grapheme.DefaultTabWidth
	}
	return m.cfg.TabWidth
}

func (m Model) lineRuns(row int) []buffer.Run {
	return m.buf.LineRuns(row)
}
