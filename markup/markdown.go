package markup

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/iw2rmb/mentionpad/internal/markdown/mentions"
	"github.com/iw2rmb/mentionpad/mention"
)

// FromMarkdown converts Markdown into content HTML. "@name" tokens naming one
// of candidates become mention annotations; everything else keeps only the
// formatting the content form can carry.
func FromMarkdown(src []byte, candidates []mention.Candidate) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			&mentions.Extender{
				Resolver: mentions.CandidateResolver(candidates),
			},
		),
	)

	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	lines, err := Parse(buf.String())
	if err != nil {
		return "", err
	}
	return Render(lines), nil
}
