// Package mentions is a goldmark extension turning "@name" into mention
// annotations for names a Resolver knows.
package mentions

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/iw2rmb/mentionpad/mention"
)

type Resolver interface {
	ResolveMention(tag string) (mention.Candidate, bool)
}

type ResolverFunc func(tag string) (mention.Candidate, bool)

func (fn ResolverFunc) ResolveMention(tag string) (mention.Candidate, bool) {
	return fn(tag)
}

// CandidateResolver resolves tags against candidates by case-insensitive
// value.
func CandidateResolver(candidates []mention.Candidate) Resolver {
	list := append([]mention.Candidate(nil), candidates...)
	return ResolverFunc(func(tag string) (mention.Candidate, bool) {
		return mention.Find(list, tag)
	})
}

type Extender struct {
	Resolver Resolver
}

func (e *Extender) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(&Parser{Resolver: e.Resolver}, 999),
		),
	)

	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&Renderer{}, 999),
		),
	)
}

var _ goldmark.Extender = (*Extender)(nil)
