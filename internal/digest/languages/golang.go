package languages

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	golang "github.com/tree-sitter/tree-sitter-go/bindings/go"

	"github.com/mvp-joe/code-digest/internal/digest"
)

func newGoRegistry() *digest.Registry {
	grammar := digest.NewGrammar("go", sitter.NewLanguage(golang.Language()))
	reg := digest.NewRegistry(grammar, digest.Tabs())

	reg.Register("source_file", digest.SelectOnly())
	reg.Register("import_declaration", digest.CaptureVerbatim())
	reg.Register("function_declaration", digest.CaptureElided())
	reg.Register("method_declaration", digest.CaptureElided())
	reg.Register("type_declaration", digest.Custom(goTypeDeclaration))

	return reg
}

// goTypeDeclaration keeps struct and interface declarations whole. Any other type
// declaration still yields one, empty, fragment.
//
// type_declaration -> [type, type_spec...] -> type_spec.type is struct_type or interface_type
func goTypeDeclaration(node *sitter.Node, source []byte, _ *digest.Context) (string, error) {
	found := false
	for _, child := range children(node) {
		switch child.Kind() {
		case "type_spec":
			found = true
			typ := child.ChildByFieldName("type")
			if typ == nil {
				return "", digest.Failf(node, "type_spec without a type")
			}
			if kind := typ.Kind(); kind == "struct_type" || kind == "interface_type" {
				return node.Utf8Text(source), nil
			}
		case "type_alias":
			found = true
		}
	}
	if !found {
		return "", digest.Failf(node, "no type_spec found")
	}
	return "", nil
}
