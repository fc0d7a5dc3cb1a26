// Package page hosts the mention editor: it owns the document content,
// tracks the mentions in it and shows the content as a styled preview or as
// raw markup.
package page

import (
	"io"
	"slices"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/mentionpad/buffer"
	"github.com/iw2rmb/mentionpad/editor"
	"github.com/iw2rmb/mentionpad/markup"
	"github.com/iw2rmb/mentionpad/mention"
)

// Pane selects what is shown below the editor.
type Pane uint8

const (
	PanePreview Pane = iota
	PaneSource
)

func (p Pane) String() string {
	if p == PaneSource {
		return "source"
	}
	return "preview"
}

// Options configures a page.
type Options struct {
	// Content is the initial content HTML.
	Content string
	// Candidates is the mentionable list. Nil selects the default list.
	Candidates []mention.Candidate

	ShowLineNums          bool
	TabWidth              int
	MaxVisibleSuggestions int
	NoFormatInheritance   bool

	// Nil selects DefaultKeyMap and DefaultStyles.
	KeyMap *KeyMap
	Styles *Styles

	// Logger receives debug entries about content changes. Nil discards them.
	Logger logrus.FieldLogger
}

// document is shared with the editor's change callback, so it outlives the
// Model copies Bubble Tea makes.
type document struct {
	content  string
	mentions []string
	version  uint64
	changes  int
}

type Model struct {
	id  uuid.UUID
	doc *document

	editor   editor.Model
	paneView viewport.Model
	pane     Pane

	width  int
	height int

	keys   KeyMap
	styles Styles
	log    logrus.FieldLogger
}

func New(opts Options) Model {
	keys := DefaultKeyMap()
	if opts.KeyMap != nil {
		keys = *opts.KeyMap
	}
	styles := DefaultStyles()
	if opts.Styles != nil {
		styles = *opts.Styles
	}

	id := uuid.New()
	log := opts.Logger
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	log = log.WithField("doc", id.String())

	doc := &document{}
	m := Model{
		id:       id,
		doc:      doc,
		paneView: viewport.New(0, 0),
		keys:     keys,
		styles:   styles,
		log:      log,
	}

	m.editor = editor.New(editor.Config{
		Value:                 opts.Content,
		Candidates:            opts.Candidates,
		OnChange:              m.handleChange,
		ShowLineNums:          opts.ShowLineNums,
		Style:                 editor.DefaultStyle(),
		TabWidth:              opts.TabWidth,
		MaxVisibleSuggestions: opts.MaxVisibleSuggestions,
		BufferOptions:         buffer.Options{NoFormatInheritance: opts.NoFormatInheritance},
	})

	doc.content = m.editor.Value()
	doc.mentions = markup.Mentions(doc.content)
	doc.version = m.editor.Buffer().Version()
	m.log.WithField("mentions", doc.mentions).Debug("document opened")

	m.refreshPane()
	return m
}

// handleChange is the editor's OnChange callback. The page keeps its own
// mention list, computed from the new content.
func (m Model) handleChange(ev editor.ChangeEvent) {
	prev := m.doc.mentions
	m.doc.content = ev.HTML
	m.doc.mentions = markup.Mentions(ev.HTML)
	m.doc.version = ev.Version
	m.doc.changes++

	entry := m.log.WithFields(logrus.Fields{
		"version": ev.Version,
		"source":  ev.Source.String(),
	})
	entry.Debug("content changed")
	if !slices.Equal(prev, m.doc.mentions) {
		entry.WithField("mentions", m.doc.mentions).Debug("mentions updated")
	}
}

func (m Model) ID() uuid.UUID { return m.id }

// Content returns the current content HTML.
func (m Model) Content() string { return m.doc.content }

// Mentions returns the distinct mention values in the content.
func (m Model) Mentions() []string {
	return append([]string(nil), m.doc.mentions...)
}

// Changes returns how many content changes the page has received.
func (m Model) Changes() int { return m.doc.changes }

func (m Model) Pane() Pane { return m.pane }

func (m Model) Editor() editor.Model { return m.editor }

// SetContent replaces the content. The editor reports the change back
// through its callback.
func (m Model) SetContent(content string) (Model, error) {
	ed, err := m.editor.SetValue(content)
	if err != nil {
		m.log.WithError(err).Debug("content rejected")
		return m, err
	}
	m.editor = ed
	m.refreshPane()
	return m, nil
}

func (m Model) Init() tea.Cmd { return nil }
