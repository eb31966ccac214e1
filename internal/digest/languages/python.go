package languages

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/mvp-joe/code-digest/internal/digest"
)

func newPythonRegistry() *digest.Registry {
	grammar := digest.NewGrammar("python", sitter.NewLanguage(python.Language()))
	reg := digest.NewRegistry(grammar, digest.Spaces(4))

	reg.Register("module", digest.SelectOnly())
	reg.Register("import_statement", digest.CaptureVerbatim())
	reg.Register("import_from_statement", digest.CaptureVerbatim())
	reg.Register("future_import_statement", digest.CaptureVerbatim())
	reg.Register("function_definition", digest.CaptureElided())
	reg.Register("class_definition", digest.Custom(pythonClass))
	reg.Register("decorated_definition", digest.Custom(pythonDecoratedDefinition))
	reg.Register("expression_statement", digest.Custom(pythonClassAttribute))

	return reg
}

// pythonClass merges "class Name(Base):" with the captures of its body.
func pythonClass(node *sitter.Node, source []byte, tc *digest.Context) (string, error) {
	return accumulateBody(node, node, "body", "", false, source, tc)
}

// pythonClassAttribute keeps assignments and docstrings that live directly in a class
// body. Module-level expression statements are skipped.
func pythonClassAttribute(node *sitter.Node, source []byte, tc *digest.Context) (string, error) {
	if !tc.Accumulating() {
		return "", digest.SkipNode
	}
	return tc.Verbatim(node), nil
}

// pythonDecoratedDefinition renders decorator lines followed by the decorated function
// (body elided) or class (merged).
func pythonDecoratedDefinition(node *sitter.Node, source []byte, tc *digest.Context) (string, error) {
	definition := node.ChildByFieldName("definition")
	if definition == nil {
		return "", digest.Failf(node, "decorated_definition without a definition")
	}

	var decorators []string
	for _, decorator := range findChildrenByType(node, "decorator") {
		decorators = append(decorators, verbatim(decorator, source))
	}
	prefix := strings.Join(decorators, "\n")

	switch definition.Kind() {
	case "function_definition":
		if prefix == "" {
			return tc.Elide(definition), nil
		}
		return prefix + "\n" + tc.Elide(definition), nil
	case "class_definition":
		return accumulateBody(definition, definition, "body", prefix, false, source, tc)
	default:
		return tc.Verbatim(node), nil
	}
}
