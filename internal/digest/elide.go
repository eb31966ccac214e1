package digest

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

const elisionComment = "// ..."

// placeholder replaces an elided body.
func (r *Registry) placeholder() string {
	return " {\n" + r.indent.String() + elisionComment + "\n}"
}

// RenderElided renders node with its block-like child replaced by the placeholder.
//
// Every other child contributes its raw text, preceded by a single space unless its
// kind is tight. A node without a block-like child is returned as its raw text.
// Continuation lines are dedented by the node's start column, which leaves text of
// top-level nodes untouched.
func RenderElided(node *sitter.Node, source []byte, reg *Registry) string {
	column := node.StartPosition().Column
	if !hasBlockChild(node, reg) {
		return dedent(node.Utf8Text(source), column, nil)
	}

	var sb strings.Builder
	sb.Grow(int(node.EndByte() - node.StartByte()))
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		kind := child.Kind()
		if reg.isBlock(kind) {
			sb.WriteString(reg.placeholder())
			continue
		}
		if !reg.isTight(kind) {
			sb.WriteByte(' ')
		}
		sb.WriteString(dedent(child.Utf8Text(source), column, nil))
	}
	return strings.TrimSpace(sb.String())
}

func hasBlockChild(node *sitter.Node, reg *Registry) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil && reg.isBlock(child.Kind()) {
			return true
		}
	}
	return false
}
