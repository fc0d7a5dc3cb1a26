package mentions

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/iw2rmb/mentionpad/internal/grapheme"
)

type Parser struct {
	Resolver Resolver
}

func (*Parser) Trigger() []byte {
	return []byte{'@'}
}

func (p *Parser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	// "mail@example" is not a mention.
	if prev := block.PrecendingCharacter(); grapheme.IsWord(prev) {
		return nil
	}

	line, seg := block.PeekLine()
	if len(line) < 2 || line[0] != '@' {
		return nil
	}

	end := getSpan(line[1:])
	if end == 0 || p.Resolver == nil {
		return nil
	}

	tag := line[1 : end+1]
	c, ok := p.Resolver.ResolveMention(string(tag))
	if !ok {
		return nil
	}

	seg = seg.WithStop(seg.Start + end + 1) // + '@'
	block.Advance(seg.Len())

	return &Node{
		Tag:       append([]byte(nil), tag...),
		Candidate: c,
	}
}

// getSpan returns the length of the leading word-character run in line.
func getSpan(line []byte) int {
	for i, b := range line {
		if !grapheme.IsWord(rune(b)) {
			return i
		}
	}
	return len(line)
}

var _ parser.InlineParser = (*Parser)(nil)
