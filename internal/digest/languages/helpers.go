package languages

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/mvp-joe/code-digest/internal/digest"
)

// children returns every direct child of node, named or not.
func children(node *sitter.Node) []*sitter.Node {
	if node == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, node.ChildCount())
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// findChildrenByType finds all direct children with the given kind.
func findChildrenByType(node *sitter.Node, kind string) []*sitter.Node {
	var results []*sitter.Node
	for _, child := range children(node) {
		if child.Kind() == kind {
			results = append(results, child)
		}
	}
	return results
}

// textBetween returns the trimmed source between the start of from and the start of to.
func textBetween(source []byte, from, to *sitter.Node) string {
	return strings.TrimSpace(string(source[from.StartByte():to.StartByte()]))
}

func verbatim(node *sitter.Node, source []byte) string {
	return strings.TrimSpace(node.Utf8Text(source))
}

// bodyRule merges a declaration header with the captures of its body's children.
//
// With braces the header gets " {" appended and the merged fragment ends with "}",
// because brace tokens inside the body are never registered and so never emitted.
func bodyRule(bodyField string, braces bool) digest.Rule {
	return func(node *sitter.Node, source []byte, tc *digest.Context) (string, error) {
		return accumulateBody(node, node, bodyField, "", braces, source, tc)
	}
}

// accumulateBody is bodyRule with an explicit header start and prefix, for wrappers such as
// decorators and export statements whose text precedes the declaration itself.
func accumulateBody(start, decl *sitter.Node, bodyField, prefix string, braces bool, source []byte, tc *digest.Context) (string, error) {
	body := decl.ChildByFieldName(bodyField)
	if body == nil {
		return "", digest.Failf(decl, "missing %s", bodyField)
	}

	header := textBetween(source, start, body)
	if prefix != "" {
		header = prefix + "\n" + header
	}
	footer := ""
	if braces {
		header += " {"
		footer = "}"
	}
	return tc.Accumulate(header, footer, children(body))
}
