package markup

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/iw2rmb/mentionpad/buffer"
	"github.com/iw2rmb/mentionpad/mention"
)

// Empty is the content of an empty document.
const Empty = "<p><br></p>"

// Render serialises formatted lines into content HTML.
func Render(lines [][]buffer.Run) string {
	if len(lines) == 0 {
		return Empty
	}

	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString("<p>")
		wrote := false
		for _, run := range line {
			if run.Text == "" {
				continue
			}
			writeRun(&sb, run)
			wrote = true
		}
		if !wrote {
			sb.WriteString("<br>")
		}
		sb.WriteString("</p>")
	}
	return sb.String()
}

type inlineTag struct {
	name string
	on   func(buffer.Format) bool
}

// Nesting order, outermost first.
var inlineTags = []inlineTag{
	{name: "strong", on: func(f buffer.Format) bool { return f.Bold }},
	{name: "em", on: func(f buffer.Format) bool { return f.Italic }},
	{name: "u", on: func(f buffer.Format) bool { return f.Underline }},
	{name: "s", on: func(f buffer.Format) bool { return f.Strike }},
}

func writeRun(sb *strings.Builder, run buffer.Run) {
	f := run.Format
	if f.Mention != "" {
		sb.WriteString(`<span class="` + mention.HTMLClass + `" ` + mention.HTMLValueAttr + `="`)
		sb.WriteString(html.EscapeString(f.Mention))
		sb.WriteString(`">`)
	}
	for _, tag := range inlineTags {
		if tag.on(f) {
			sb.WriteString("<" + tag.name + ">")
		}
	}

	sb.WriteString(html.EscapeString(run.Text))

	for i := len(inlineTags) - 1; i >= 0; i-- {
		if inlineTags[i].on(f) {
			sb.WriteString("</" + inlineTags[i].name + ">")
		}
	}
	if f.Mention != "" {
		sb.WriteString("</span>")
	}
}
