package languages

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	ruby "github.com/tree-sitter/tree-sitter-ruby/bindings/go"

	"github.com/mvp-joe/code-digest/internal/digest"
)

func newRubyRegistry() *digest.Registry {
	grammar := digest.NewGrammar("ruby", sitter.NewLanguage(ruby.Language()))
	reg := digest.NewRegistry(grammar, digest.Spaces(2))

	reg.Register("program", digest.SelectOnly())
	reg.Register("call", digest.Custom(rubyCall))
	reg.Register("assignment", digest.Custom(rubyConstant))
	reg.Register("class", digest.Custom(rubyContainer))
	reg.Register("module", digest.Custom(rubyContainer))
	reg.Register("singleton_class", digest.Custom(rubyContainer))
	reg.Register("method", digest.Custom(rubyMethod))
	reg.Register("singleton_method", digest.Custom(rubyMethod))

	return reg
}

// rubyLoadCalls are kept wherever they appear.
var rubyLoadCalls = map[string]bool{
	"require":          true,
	"require_relative": true,
}

// rubyClassMacros are kept only directly inside a class or module body.
var rubyClassMacros = map[string]bool{
	"include":       true,
	"extend":        true,
	"prepend":       true,
	"attr_reader":   true,
	"attr_writer":   true,
	"attr_accessor": true,
}

// rubyCall keeps require lines and the class-level macros that shape an API.
// Every other call is pruned.
func rubyCall(node *sitter.Node, source []byte, tc *digest.Context) (string, error) {
	if node.ChildByFieldName("receiver") != nil {
		return "", digest.SkipNode
	}
	method := node.ChildByFieldName("method")
	if method == nil {
		return "", digest.SkipNode
	}
	name := method.Utf8Text(source)
	if rubyLoadCalls[name] || (tc.Accumulating() && rubyClassMacros[name]) {
		return tc.Verbatim(node), nil
	}
	return "", digest.SkipNode
}

// rubyConstant keeps constant assignments such as VERSION = "1.0".
func rubyConstant(node *sitter.Node, source []byte, tc *digest.Context) (string, error) {
	left := node.ChildByFieldName("left")
	if left == nil || left.Kind() != "constant" {
		return "", digest.SkipNode
	}
	return tc.Verbatim(node), nil
}

// rubyContainer merges a class or module header with the captures of its body.
// An empty body is kept as written.
func rubyContainer(node *sitter.Node, source []byte, tc *digest.Context) (string, error) {
	body := node.ChildByFieldName("body")
	if body == nil {
		return tc.Verbatim(node), nil
	}
	return tc.Accumulate(textBetween(source, node, body), "end", children(body))
}

// rubyMethod replaces a method body with a comment placeholder. Endless and empty
// methods are kept as written.
func rubyMethod(node *sitter.Node, source []byte, tc *digest.Context) (string, error) {
	body := node.ChildByFieldName("body")
	if body == nil || body.Kind() != "body_statement" {
		return tc.Verbatim(node), nil
	}
	indent := tc.Registry().Indent().String()
	return textBetween(source, node, body) + "\n" + indent + "# ...\nend", nil
}
