package markup

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/iw2rmb/mentionpad/buffer"
	"github.com/iw2rmb/mentionpad/mention"
)

// Parse reads content HTML into formatted lines.
//
// Block elements start a new line, <br> breaks a line unless it is the last
// child of its block (the empty-line placeholder), and unknown elements are
// transparent. Parse never fails on malformed markup; errors only come from
// the underlying reader.
func Parse(src string) ([][]buffer.Run, error) {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parsing content html: %w", err)
	}

	root := findElement(doc, atom.Body)
	if root == nil {
		root = doc
	}

	p := &lineParser{}
	p.walkChildren(root, buffer.Format{})
	if p.started {
		p.endLine()
	}
	if len(p.lines) == 0 {
		p.lines = [][]buffer.Run{nil}
	}
	return p.lines, nil
}

type lineParser struct {
	lines   [][]buffer.Run
	cur     []buffer.Run
	started bool
	pre     int
}

func (p *lineParser) endLine() {
	p.lines = append(p.lines, p.cur)
	p.cur = nil
	p.started = false
}

func (p *lineParser) appendText(text string, f buffer.Format) {
	if text == "" {
		return
	}
	p.started = true
	if n := len(p.cur); n > 0 && p.cur[n-1].Format == f {
		p.cur[n-1].Text += text
		return
	}
	p.cur = append(p.cur, buffer.Run{Text: text, Format: f})
}

func (p *lineParser) walkChildren(n *html.Node, f buffer.Format) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c, f)
	}
}

func (p *lineParser) walk(n *html.Node, f buffer.Format) {
	switch n.Type {
	case html.TextNode:
		p.text(n, f)
	case html.ElementNode:
		p.element(n, f)
	case html.DocumentNode:
		p.walkChildren(n, f)
	}
}

func (p *lineParser) text(n *html.Node, f buffer.Format) {
	data := n.Data
	if p.pre > 0 {
		parts := strings.Split(data, "\n")
		for i, part := range parts {
			if i > 0 {
				p.endLine()
				p.started = true
			}
			p.appendText(part, f)
		}
		return
	}

	if !p.started && strings.TrimSpace(data) == "" && betweenBlocks(n) {
		return
	}
	p.appendText(strings.ReplaceAll(data, "\n", " "), f)
}

func (p *lineParser) element(n *html.Node, f buffer.Format) {
	switch n.DataAtom {
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Li, atom.Blockquote, atom.Tr, atom.Pre:
		if p.started {
			p.endLine()
		}
		if n.DataAtom == atom.Pre {
			p.pre++
			defer func() { p.pre-- }()
		}
		p.walkChildren(n, f)
		if p.started {
			p.endLine()
		}
		return
	case atom.Ul, atom.Ol, atom.Table, atom.Tbody, atom.Thead:
		// Containers of blocks: their own whitespace never starts a line.
		if p.started {
			p.endLine()
		}
		p.walkChildren(n, f)
		return
	case atom.Br:
		if isBlockPlaceholder(n) {
			p.started = true
			return
		}
		p.endLine()
		p.started = true
		return
	case atom.Strong, atom.B:
		f.Bold = true
	case atom.Em, atom.I:
		f.Italic = true
	case atom.U:
		f.Underline = true
	case atom.S, atom.Strike, atom.Del:
		f.Strike = true
	case atom.Span:
		if hasClass(n, mention.HTMLClass) {
			if v, ok := attr(n, mention.HTMLValueAttr); ok && v != "" {
				f.Mention = v
			}
		}
	case atom.A:
		// Link text only; there is no link format.
	case atom.Img, atom.Script, atom.Style, atom.Head:
		return
	}
	p.walkChildren(n, f)
}

func isBlock(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Li, atom.Blockquote, atom.Tr, atom.Pre,
		atom.Ul, atom.Ol, atom.Table, atom.Tbody, atom.Thead:
		return true
	}
	return false
}

// betweenBlocks reports whether the text node t sits where whitespace only
// indents the markup: directly in a container of blocks, or next to a block
// sibling. A block holding nothing but spaces keeps them.
func betweenBlocks(t *html.Node) bool {
	parent := t.Parent
	if parent == nil || parent.Type != html.ElementNode {
		return true
	}
	switch parent.DataAtom {
	case atom.Html, atom.Body, atom.Ul, atom.Ol, atom.Table, atom.Tbody, atom.Thead, atom.Tr:
		return true
	}
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && isBlock(c.DataAtom) {
			return true
		}
	}
	return false
}

// isBlockPlaceholder reports whether br is the last thing in its block.
func isBlockPlaceholder(br *html.Node) bool {
	for s := br.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.TextNode && strings.TrimSpace(s.Data) == "" {
			continue
		}
		return false
	}
	parent := br.Parent
	for parent != nil && parent.Type == html.ElementNode {
		switch parent.DataAtom {
		case atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Li, atom.Blockquote:
			return true
		case atom.Strong, atom.B, atom.Em, atom.I, atom.U, atom.S, atom.Strike, atom.Del, atom.Span:
			if parent.NextSibling != nil {
				return false
			}
			parent = parent.Parent
			continue
		}
		return false
	}
	return false
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}
