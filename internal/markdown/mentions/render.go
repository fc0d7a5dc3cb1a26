package mentions

import (
	"fmt"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/iw2rmb/mentionpad/mention"
)

type Renderer struct{}

func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(Kind, r.Render)
}

func (r *Renderer) Render(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n, ok := node.(*Node)
	if !ok {
		return ast.WalkStop, fmt.Errorf("unexpected node %T, expected *Node", node)
	}

	if !entering {
		return ast.WalkContinue, nil
	}

	value := util.EscapeHTML([]byte(n.Candidate.Value))

	// Same shape the editor produces when a mention is confirmed.
	_, _ = w.WriteString(`<span class="` + mention.HTMLClass + `" ` + mention.HTMLValueAttr + `="`)
	_, _ = w.Write(value)
	_, _ = w.WriteString(`"><strong>@`)
	_, _ = w.Write(value)
	_, _ = w.WriteString(`</strong></span>`)

	return ast.WalkContinue, nil
}
