package languages

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	c "github.com/tree-sitter/tree-sitter-c/bindings/go"

	"github.com/mvp-joe/code-digest/internal/digest"
)

func newCRegistry() *digest.Registry {
	grammar := digest.NewGrammar("c", sitter.NewLanguage(c.Language()))
	reg := digest.NewRegistry(grammar, digest.Spaces(4))
	reg.SetBlockKinds("compound_statement")

	reg.Register("translation_unit", digest.SelectOnly())
	// Header guards wrap the whole file.
	reg.Register("preproc_ifdef", digest.SelectOnly())
	reg.Register("preproc_if", digest.SelectOnly())

	reg.Register("preproc_include", digest.CaptureVerbatim())
	reg.Register("preproc_def", digest.CaptureVerbatim())
	reg.Register("preproc_function_def", digest.CaptureVerbatim())
	reg.Register("type_definition", digest.CaptureVerbatim())
	reg.Register("struct_specifier", digest.CaptureVerbatim())
	reg.Register("enum_specifier", digest.CaptureVerbatim())
	reg.Register("declaration", digest.CaptureVerbatim())
	reg.Register("function_definition", digest.CaptureElided())

	return reg
}
