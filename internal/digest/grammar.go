package digest

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Grammar adapts a compiled tree-sitter language.
type Grammar struct {
	name     string
	language *sitter.Language
}

// NewGrammar wraps a tree-sitter language under a display name.
func NewGrammar(name string, language *sitter.Language) *Grammar {
	return &Grammar{name: name, language: language}
}

// Name returns the grammar's display name.
func (g *Grammar) Name() string { return g.name }

// Language returns the underlying tree-sitter language.
func (g *Grammar) Language() *sitter.Language { return g.language }

// Check verifies that the tree-sitter runtime accepts the grammar.
// Call it once per grammar before starting parallel work.
func (g *Grammar) Check() error {
	parser := sitter.NewParser()
	defer parser.Close()
	return g.setLanguage(parser)
}

// Parse turns source into a syntax tree. Malformed source still produces a best-effort tree.
// The caller owns the returned tree and must Close it.
func (g *Grammar) Parse(source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := g.setLanguage(parser); err != nil {
		return nil, err
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse %s source", g.name)
	}
	return tree, nil
}

func (g *Grammar) setLanguage(parser *sitter.Parser) error {
	if g.language == nil {
		return fmt.Errorf("%w: %s: no language linked", ErrGrammarIncompatible, g.name)
	}
	if err := parser.SetLanguage(g.language); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrGrammarIncompatible, g.name, err)
	}
	return nil
}

// IsGrammarIncompatible reports whether err comes from a grammar version mismatch.
func IsGrammarIncompatible(err error) bool {
	return errors.Is(err, ErrGrammarIncompatible)
}
