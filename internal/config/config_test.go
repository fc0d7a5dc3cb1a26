package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"github.com/sethvargo/go-envconfig"
	"github.com/sirupsen/logrus"

	"github.com/iw2rmb/mentionpad/mention"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %s", err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %s", err)
	}
	if diff := cmp.Diff(mention.DefaultCandidates(), cfg.MentionCandidates()); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
	if got := cfg.LogLevel(); got != logrus.InfoLevel {
		t.Fatalf("log level: got %v, want %v", got, logrus.InfoLevel)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
[log]
level = "debug"

[editor]
show_line_numbers = true

[[mentions.candidates]]
id = 10
value = "Dana"

[[mentions.candidates]]
id = 11
value = "Eli"
`)

	cfg, err := Load(context.Background(), path, envconfig.MapLookuper(nil))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if got := cfg.LogLevel(); got != logrus.DebugLevel {
		t.Fatalf("log level: got %v, want debug", got)
	}
	if !cfg.Editor.ShowLineNumbers {
		t.Fatalf("show_line_numbers not applied")
	}
	if got := cfg.Editor.TabWidth; got != 4 {
		t.Fatalf("tab width default lost: got %d", got)
	}
	want := []mention.Candidate{{ID: 10, Value: "Dana"}, {ID: 11, Value: "Eli"}}
	if diff := cmp.Diff(want, cfg.MentionCandidates()); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "[mentions]\nmax_visible = 3\n")

	cfg, err := Load(context.Background(), path, envconfig.MapLookuper(map[string]string{
		"MENTIONPAD_MAX_VISIBLE_SUGGESTIONS": "7",
		"MENTIONPAD_LOG_FILE":                "/tmp/mentionpad.log",
		"MENTIONPAD_CANDIDATES":              "Ann, Ben",
	}))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if got := cfg.Mentions.MaxVisible; got != 7 {
		t.Fatalf("max visible: got %d, want 7", got)
	}
	if got := cfg.Log.File; got != "/tmp/mentionpad.log" {
		t.Fatalf("log file: got %q", got)
	}
	want := []mention.Candidate{{ID: 1, Value: "Ann"}, {ID: 2, Value: "Ben"}}
	if diff := cmp.Diff(want, cfg.MentionCandidates()); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	if _, err := Load(context.Background(), path, envconfig.MapLookuper(nil)); err == nil {
		t.Fatalf("Load: expected error for missing explicit file")
	}
}

func TestLoad_UnknownKeysFail(t *testing.T) {
	path := writeFile(t, "[editor]\nline_numbers = true\n")
	if _, err := Load(context.Background(), path, envconfig.MapLookuper(nil)); err == nil {
		t.Fatalf("Load: expected error for unknown key")
	}
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	cfg.Mentions.MaxVisible = -1
	cfg.Mentions.Candidates = []Candidate{
		{ID: 1, Value: "Alice"},
		{ID: 1, Value: "alice"},
		{ID: 2, Value: ""},
	}

	err := cfg.Validate()
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		t.Fatalf("Validate: got %T (%v), want *multierror.Error", err, err)
	}
	// level, max_visible, duplicate value, duplicate id, empty value
	if got := len(merr.Errors); got != 5 {
		t.Fatalf("error count: got %d, want 5: %v", got, err)
	}
}

func TestLoad_FileWithoutCandidatesKeepsDefaults(t *testing.T) {
	path := writeFile(t, "[mentions]\nmax_visible = 2\n")

	cfg, err := Load(context.Background(), path, envconfig.MapLookuper(nil))
	if err != nil {
		t.Fatalf("Load: %s", err)
	}
	if diff := cmp.Diff(mention.DefaultCandidates(), cfg.MentionCandidates()); diff != "" {
		t.Fatalf("candidates mismatch (-want +got):\n%s", diff)
	}
}
