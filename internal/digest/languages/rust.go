package languages

import (
	sitter "github.com/tree-sitter/go-tree-sitter"
	rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/mvp-joe/code-digest/internal/digest"
)

func newRustRegistry() *digest.Registry {
	grammar := digest.NewGrammar("rust", sitter.NewLanguage(rust.Language()))
	reg := digest.NewRegistry(grammar, digest.Spaces(4))

	reg.Register("source_file", digest.SelectOnly())
	reg.Register("use_declaration", digest.CaptureVerbatim())
	reg.Register("struct_item", digest.CaptureVerbatim())
	reg.Register("enum_item", digest.CaptureVerbatim())
	reg.Register("type_item", digest.CaptureVerbatim())
	reg.Register("function_item", digest.CaptureElided())
	reg.Register("function_signature_item", digest.CaptureElided())

	// impl and trait blocks merge their header with their elided members.
	reg.Register("impl_item", digest.Custom(bodyRule("body", true)))
	reg.Register("trait_item", digest.Custom(bodyRule("body", true)))

	return reg
}
