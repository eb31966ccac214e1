package languages

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/mvp-joe/code-digest/internal/digest"
)

func newTypeScriptRegistry() *digest.Registry {
	grammar := digest.NewGrammar("typescript", sitter.NewLanguage(typescript.LanguageTypescript()))
	reg := digest.NewRegistry(grammar, digest.Spaces(2))
	reg.SetBlockKinds("statement_block")
	reg.AddTightKinds("formal_parameters", "type_annotation")

	reg.Register("program", digest.SelectOnly())
	reg.Register("import_statement", digest.CaptureVerbatim())
	reg.Register("export_statement", digest.Custom(typeScriptExport))
	reg.Register("function_declaration", digest.CaptureElided())
	reg.Register("class_declaration", digest.Custom(bodyRule("body", true)))
	reg.Register("abstract_class_declaration", digest.Custom(bodyRule("body", true)))
	reg.Register("interface_declaration", digest.CaptureVerbatim())
	reg.Register("type_alias_declaration", digest.CaptureVerbatim())
	reg.Register("enum_declaration", digest.CaptureVerbatim())
	reg.Register("method_definition", digest.CaptureElided())
	reg.Register("abstract_method_signature", digest.CaptureVerbatim())
	reg.Register("public_field_definition", digest.CaptureVerbatim())

	return reg
}

// typeScriptExport keeps the "export" keyword in front of whatever the exported
// declaration renders to. Exports of unregistered kinds are pruned.
func typeScriptExport(node *sitter.Node, source []byte, tc *digest.Context) (string, error) {
	decl := node.ChildByFieldName("declaration")
	if decl == nil {
		// export { a, b } from "./mod"
		return tc.Verbatim(node), nil
	}

	switch decl.Kind() {
	case "class_declaration", "abstract_class_declaration":
		return accumulateBody(node, decl, "body", "", true, source, tc)
	}

	action, ok := tc.Registry().Lookup(decl.Kind())
	if !ok {
		return "", digest.SkipNode
	}
	switch action.Kind {
	case digest.KindCaptureElided:
		return textBetween(source, node, decl) + " " + tc.Elide(decl), nil
	default:
		return tc.Verbatim(node), nil
	}
}
