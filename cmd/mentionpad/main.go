package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/mentionpad"
	"github.com/iw2rmb/mentionpad/internal/config"
	"github.com/iw2rmb/mentionpad/internal/page"
	"github.com/iw2rmb/mentionpad/markup"
	"github.com/iw2rmb/mentionpad/mention"
)

type flags struct {
	configPath   string
	markdownPath string
	htmlPath     string
	print        bool
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:           "mentionpad",
		Short:         "Edit formatted text with @mention suggestions",
		Version:       mentionpad.Version(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f, cmd.OutOrStdout())
		},
	}
	cmd.SetVersionTemplate(mentionpad.UserAgent() + "\n")

	fl := cmd.Flags()
	{
		fl.StringVar(&f.configPath, "config", "", "Path to the TOML config file (default ~/.config/mentionpad/config.toml)")
		fl.StringVar(&f.markdownPath, "markdown", "", "Load the initial content from a Markdown file")
		fl.StringVar(&f.htmlPath, "html", "", "Load the initial content from an HTML file")
		fl.BoolVar(&f.print, "print", false, "Write the content HTML to stdout on exit")
	}
	cmd.MarkFlagsMutuallyExclusive("markdown", "html")

	return cmd
}

func run(ctx context.Context, f flags, out io.Writer) error {
	cfg, err := config.Load(ctx, f.configPath, nil)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	candidates := cfg.MentionCandidates()
	content, err := initialContent(f, candidates)
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"candidates": len(candidates),
		"bytes":      len(content),
	}).Debug("starting")

	pm := page.New(page.Options{
		Content:               content,
		Candidates:            candidates,
		ShowLineNums:          cfg.Editor.ShowLineNumbers,
		TabWidth:              cfg.Editor.TabWidth,
		MaxVisibleSuggestions: cfg.Mentions.MaxVisible,
		NoFormatInheritance:   cfg.Editor.NoFormatInheritance,
		Logger:                logger,
	})

	p := tea.NewProgram(pm, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if f.print {
		if pm, ok := final.(page.Model); ok {
			fmt.Fprintln(out, pm.Content())
		}
	}
	return nil
}

// initialContent reads the content named by the --markdown or --html flag.
// Without either, the document starts empty.
func initialContent(f flags, candidates []mention.Candidate) (string, error) {
	switch {
	case f.markdownPath != "" && f.htmlPath != "":
		return "", errors.New("--markdown and --html are mutually exclusive")

	case f.markdownPath != "":
		src, err := os.ReadFile(f.markdownPath)
		if err != nil {
			return "", fmt.Errorf("reading markdown: %w", err)
		}
		return markup.FromMarkdown(src, candidates)

	case f.htmlPath != "":
		src, err := os.ReadFile(f.htmlPath)
		if err != nil {
			return "", fmt.Errorf("reading html: %w", err)
		}
		lines, err := markup.Parse(string(src))
		if err != nil {
			return "", err
		}
		return markup.Render(lines), nil
	}

	return markup.Empty, nil
}

// newLogger writes debug logs to the configured file. The terminal belongs to
// the program, so without a file the logs are dropped.
func newLogger(cfg *config.Config) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})

	if cfg.Log.File == "" {
		logger.SetOutput(io.Discard)
		return logger, func() {}, nil
	}

	fh, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetOutput(fh)
	return logger, func() { _ = fh.Close() }, nil
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		logrus.Fatal(err)
	}
}
