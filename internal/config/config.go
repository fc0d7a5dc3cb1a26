// Package config loads mentionpad settings: built-in defaults, then an
// optional TOML file, then MENTIONPAD_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"github.com/sethvargo/go-envconfig"
	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/mentionpad/mention"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "MENTIONPAD_"

// Log settings
type Log struct {
	// File receives debug logs. Empty discards them.
	File  string `toml:"file" env:"LOG_FILE, overwrite"`
	Level string `toml:"level" env:"LOG_LEVEL, overwrite"`
}

// Editor settings
type Editor struct {
	ShowLineNumbers     bool `toml:"show_line_numbers" env:"SHOW_LINE_NUMBERS, overwrite"`
	TabWidth            int  `toml:"tab_width" env:"TAB_WIDTH, overwrite"`
	NoFormatInheritance bool `toml:"no_format_inheritance" env:"NO_FORMAT_INHERITANCE, overwrite"`
}

// Candidate is one mentionable name.
type Candidate struct {
	ID    int    `toml:"id"`
	Value string `toml:"value"`
}

// Mentions settings
type Mentions struct {
	MaxVisible int         `toml:"max_visible" env:"MAX_VISIBLE_SUGGESTIONS, overwrite"`
	Candidates []Candidate `toml:"candidates"`

	// Names replaces Candidates when set from the environment, numbering the
	// names from 1 in order.
	Names []string `toml:"-" env:"CANDIDATES"`
}

// Config is the main configuration struct
type Config struct {
	Log      Log      `toml:"log"`
	Editor   Editor   `toml:"editor"`
	Mentions Mentions `toml:"mentions"`
}

// Default returns the default configuration.
func Default() *Config {
	defaults := mention.DefaultCandidates()
	candidates := make([]Candidate, 0, len(defaults))
	for _, c := range defaults {
		candidates = append(candidates, Candidate{ID: c.ID, Value: c.Value})
	}

	return &Config{
		Log: Log{
			Level: "info",
		},
		Editor: Editor{
			ShowLineNumbers: false,
			TabWidth:        4,
		},
		Mentions: Mentions{
			MaxVisible: 5,
			Candidates: candidates,
		},
	}
}

// configDir returns the configuration directory path.
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "mentionpad"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load builds the configuration. An empty path selects ConfigPath() and
// tolerates a missing file; an explicit path must exist. A nil lookuper reads
// the process environment.
func Load(ctx context.Context, path string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := ConfigPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := decodeTOML(path, cfg); err != nil {
				return nil, fmt.Errorf("loading config from %s: %w", path, err)
			}
		} else if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, lookuper),
	}); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	cfg.applyNames()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decodeTOML layers the file over cfg: keys present in the file replace the
// defaults, absent keys keep them.
func decodeTOML(path string, cfg *Config) error {
	// A candidate list in the file replaces the defaults as a whole.
	defaults := cfg.Mentions.Candidates
	cfg.Mentions.Candidates = nil

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("parsing config TOML: %w", err)
	}
	if !md.IsDefined("mentions", "candidates") {
		cfg.Mentions.Candidates = defaults
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyNames() {
	if len(c.Mentions.Names) == 0 {
		return
	}
	out := make([]Candidate, 0, len(c.Mentions.Names))
	for i, name := range c.Mentions.Names {
		out = append(out, Candidate{ID: i + 1, Value: strings.TrimSpace(name)})
	}
	c.Mentions.Candidates = out
	c.Mentions.Names = nil
}

// Validate reports every problem in c at once.
func (c *Config) Validate() error {
	merr := new(multierror.Error)

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		merr.Errors = append(merr.Errors, fmt.Errorf("log.level: %w", err))
	}
	if c.Editor.TabWidth < 0 {
		merr.Errors = append(merr.Errors, fmt.Errorf("editor.tab_width: must not be negative, got %d", c.Editor.TabWidth))
	}
	if c.Mentions.MaxVisible < 0 {
		merr.Errors = append(merr.Errors, fmt.Errorf("mentions.max_visible: must not be negative, got %d", c.Mentions.MaxVisible))
	}

	ids := make(map[int]struct{}, len(c.Mentions.Candidates))
	values := make(map[string]struct{}, len(c.Mentions.Candidates))
	for i, cand := range c.Mentions.Candidates {
		if cand.Value == "" {
			merr.Errors = append(merr.Errors, fmt.Errorf("mentions.candidates[%d]: empty value", i))
			continue
		}
		key := strings.ToLower(cand.Value)
		if _, dup := values[key]; dup {
			merr.Errors = append(merr.Errors, fmt.Errorf("mentions.candidates[%d]: duplicate value %q", i, cand.Value))
		}
		values[key] = struct{}{}
		if _, dup := ids[cand.ID]; dup {
			merr.Errors = append(merr.Errors, fmt.Errorf("mentions.candidates[%d]: duplicate id %d", i, cand.ID))
		}
		ids[cand.ID] = struct{}{}
	}

	return merr.ErrorOrNil()
}

// LogLevel returns the parsed log level, or info when it does not parse.
func (c *Config) LogLevel() logrus.Level {
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}

// MentionCandidates converts the configured candidates for the editor.
func (c *Config) MentionCandidates() []mention.Candidate {
	out := make([]mention.Candidate, 0, len(c.Mentions.Candidates))
	for _, cand := range c.Mentions.Candidates {
		out = append(out, mention.Candidate{ID: cand.ID, Value: cand.Value})
	}
	return out
}
