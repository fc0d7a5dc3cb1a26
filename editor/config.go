package editor

import (
	"github.com/iw2rmb/mentionpad/buffer"
	"github.com/iw2rmb/mentionpad/mention"
)

// Config configures the editor Model.
type Config struct {
	// Value is the initial content HTML.
	Value string

	// Candidates is the mentionable list. Nil selects
	// mention.DefaultCandidates().
	Candidates []mention.Candidate

	// OnChange is called after every content change, user or api.
	OnChange func(ChangeEvent)

	ReadOnly bool

	// Rendering options.
	ShowLineNums bool
	Style        Style
	TabWidth     int

	KeyMap        KeyMap
	MentionKeyMap MentionKeyMap

	// MaxVisibleSuggestions caps dropdown rows. <= 0 selects the dropdown
	// default.
	MaxVisibleSuggestions int
	// MaxSuggestionWidth caps dropdown width in cells. <= 0 selects the
	// dropdown default.
	MaxSuggestionWidth int

	ScrollPolicy ScrollPolicy

	// Forwarded to buffer.Options.
	BufferOptions buffer.Options
}

func normalizeConfig(cfg Config) Config {
	if cfg.Candidates == nil {
		cfg.Candidates = mention.DefaultCandidates()
	} else {
		cfg.Candidates = append([]mention.Candidate(nil), cfg.Candidates...)
	}
	cfg.KeyMap = normalizeKeyMap(cfg.KeyMap)
	cfg.MentionKeyMap = normalizeMentionKeyMap(cfg.MentionKeyMap)
	return cfg
}

// ScrollPolicy decides whether the mouse wheel may scroll the text away from
// the cursor. Wheel events over the suggestion dropdown always scroll the
// dropdown.
type ScrollPolicy int

const (
	// ScrollAllowManual lets the wheel scroll the text viewport.
	ScrollAllowManual ScrollPolicy = iota
	// ScrollFollowCursorOnly ignores the wheel; only cursor movement scrolls.
	ScrollFollowCursorOnly
)
