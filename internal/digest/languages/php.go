package languages

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	php "github.com/tree-sitter/tree-sitter-php/bindings/go"

	"github.com/mvp-joe/code-digest/internal/digest"
)

func newPHPRegistry() *digest.Registry {
	grammar := digest.NewGrammar("php", sitter.NewLanguage(php.LanguagePHP()))
	reg := digest.NewRegistry(grammar, digest.Spaces(4))
	reg.SetBlockKinds("compound_statement")
	reg.AddTightKinds("formal_parameters")

	reg.Register("program", digest.SelectOnly())
	reg.Register("namespace_definition", digest.CaptureVerbatim())
	reg.Register("namespace_use_declaration", digest.CaptureVerbatim())
	reg.Register("function_definition", digest.CaptureElided())
	reg.Register("class_declaration", digest.Custom(bodyRule("body", true)))
	reg.Register("interface_declaration", digest.CaptureVerbatim())
	reg.Register("method_declaration", digest.CaptureElided())
	reg.Register("property_declaration", digest.CaptureVerbatim())
	reg.Register("const_declaration", digest.CaptureVerbatim())

	return reg
}
