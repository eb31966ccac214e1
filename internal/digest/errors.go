package digest

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

var (
	// ErrGrammarIncompatible indicates the tree-sitter runtime rejected a grammar's ABI version.
	// No file of that language can be processed, so callers treat it as fatal.
	ErrGrammarIncompatible = errors.New("incompatible tree-sitter grammar")

	// ErrCustomActionFailed indicates a custom rule found a tree shape it does not understand.
	// It aborts extraction of the current file only.
	ErrCustomActionFailed = errors.New("custom selector action failed")

	// SkipNode is returned by a Rule that wants nothing emitted for its node.
	// It is never returned as an error by Extract or Walk.
	SkipNode = errors.New("skip this node")
)

// RuleError describes a failed custom rule.
type RuleError struct {
	Kind   string // node kind the rule was registered for
	Reason string
	Err    error // underlying cause, may be nil
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCustomActionFailed, e.Kind, e.Reason)
}

// Unwrap lets errors.Is match both ErrCustomActionFailed and the cause.
func (e *RuleError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrCustomActionFailed}
	}
	return []error{ErrCustomActionFailed, e.Err}
}

// Failf builds a RuleError for node. Rules use it when the tree does not have the expected shape.
func Failf(node *sitter.Node, format string, args ...any) error {
	return &RuleError{
		Kind:   node.Kind(),
		Reason: fmt.Sprintf(format, args...),
	}
}

// wrapRuleError normalizes any error returned by a rule into a *RuleError.
func wrapRuleError(node *sitter.Node, err error) error {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr
	}
	return &RuleError{
		Kind:   node.Kind(),
		Reason: err.Error(),
		Err:    err,
	}
}
