package mentions

import (
	"github.com/yuin/goldmark/ast"

	"github.com/iw2rmb/mentionpad/mention"
)

var Kind = ast.NewNodeKind("Mention")

// Node is a resolved @mention inline.
type Node struct {
	ast.BaseInline

	Tag       []byte
	Candidate mention.Candidate
}

func (*Node) Kind() ast.NodeKind {
	return Kind
}

func (n *Node) Dump(src []byte, level int) {
	ast.DumpHelper(n, src, level, map[string]string{
		"Tag":   string(n.Tag),
		"Value": n.Candidate.Value,
	}, nil)
}
