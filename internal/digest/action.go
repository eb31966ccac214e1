package digest

import sitter "github.com/tree-sitter/go-tree-sitter"

// ActionKind selects what the engine does with a node of a registered kind.
type ActionKind int

const (
	// KindSelectOnly descends into the node's children without emitting the node.
	KindSelectOnly ActionKind = iota
	// KindCaptureVerbatim emits the node's trimmed source text.
	KindCaptureVerbatim
	// KindCaptureElided emits the node's text with its body block replaced by a placeholder.
	KindCaptureElided
	// KindCustom runs the action's Rule.
	KindCustom
)

func (k ActionKind) String() string {
	switch k {
	case KindSelectOnly:
		return "select-only"
	case KindCaptureVerbatim:
		return "capture-verbatim"
	case KindCaptureElided:
		return "capture-elided"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Rule is a custom extraction step. It may emit a string (routed like any capture),
// return SkipNode to emit nothing, and enqueue more work through tc.
// Any other error aborts extraction of the file.
type Rule func(node *sitter.Node, source []byte, tc *Context) (string, error)

// Action is the registry entry for one node kind.
type Action struct {
	Kind ActionKind
	Rule Rule // only set for KindCustom
}

// SelectOnly returns an action that descends into children.
func SelectOnly() Action { return Action{Kind: KindSelectOnly} }

// CaptureVerbatim returns an action that emits the node text as is.
func CaptureVerbatim() Action { return Action{Kind: KindCaptureVerbatim} }

// CaptureElided returns an action that emits the node text with its body elided.
func CaptureElided() Action { return Action{Kind: KindCaptureElided} }

// Custom returns an action that runs rule.
func Custom(rule Rule) Action { return Action{Kind: KindCustom, Rule: rule} }
