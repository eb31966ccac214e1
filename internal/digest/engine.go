// Package digest implements selective syntax-tree extraction.
//
// A Registry maps node kinds to actions. Walk visits a parsed tree breadth-first,
// starting at the root, and for each node either descends into its children, captures
// its text (optionally with the body elided), or runs a custom rule. Kinds without an
// action are pruned together with their subtree. Custom rules can merge a node with
// some of its descendants into one fragment through Context.Accumulate.
package digest

import (
	"errors"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// Extract parses source with the registry's grammar and walks the resulting tree.
func Extract(source []byte, reg *Registry) ([]Fragment, error) {
	tree, err := reg.Grammar().Parse(source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return Walk(tree.RootNode(), source, reg)
}

// Walk runs the registry's actions over the tree rooted at root and returns the
// fragments in extraction order.
func Walk(root *sitter.Node, source []byte, reg *Registry) ([]Fragment, error) {
	tc := newContext(reg, source)
	tc.queue.pushBack(item{node: root})

	for {
		it, ok := tc.queue.pop()
		if !ok {
			break
		}
		if it.sentinel {
			tc.closeAccumulator()
			continue
		}

		node := it.node
		tc.accumulating = it.accumulating

		action, ok := reg.Lookup(node.Kind())
		if !ok {
			continue
		}

		switch action.Kind {
		case KindSelectOnly:
			for i := uint(0); i < node.ChildCount(); i++ {
				if child := node.Child(i); child != nil {
					tc.queue.pushBack(item{node: child})
				}
			}
		case KindCaptureVerbatim:
			tc.emit(tc.Verbatim(node))
		case KindCaptureElided:
			tc.emit(RenderElided(node, source, reg))
		case KindCustom:
			if action.Rule == nil {
				return nil, Failf(node, "custom action has no rule")
			}
			content, err := action.Rule(node, source, tc)
			if errors.Is(err, SkipNode) {
				continue
			}
			if err != nil {
				return nil, wrapRuleError(node, err)
			}
			tc.emit(content)
		}
	}

	return tc.fragments, nil
}
