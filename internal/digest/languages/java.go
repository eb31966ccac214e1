package languages

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/mvp-joe/code-digest/internal/digest"
)

func newJavaRegistry() *digest.Registry {
	grammar := digest.NewGrammar("java", sitter.NewLanguage(java.Language()))
	reg := digest.NewRegistry(grammar, digest.Spaces(4))
	reg.SetBlockKinds("block", "constructor_body")
	reg.AddTightKinds("formal_parameters")

	reg.Register("program", digest.SelectOnly())
	reg.Register("package_declaration", digest.CaptureVerbatim())
	reg.Register("import_declaration", digest.CaptureVerbatim())
	reg.Register("class_declaration", digest.Custom(bodyRule("body", true)))
	reg.Register("interface_declaration", digest.CaptureVerbatim())
	reg.Register("enum_declaration", digest.CaptureVerbatim())
	reg.Register("record_declaration", digest.CaptureVerbatim())
	reg.Register("field_declaration", digest.CaptureVerbatim())
	reg.Register("method_declaration", digest.CaptureElided())
	reg.Register("constructor_declaration", digest.CaptureElided())

	return reg
}
