package digest

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// accumulator collects the parts of one merged fragment.
type accumulator struct {
	header string
	footer string
	parts  []string
}

func (a *accumulator) merge(indent Indent) string {
	var sb strings.Builder
	sb.WriteString(a.header)
	for _, part := range a.parts {
		if part == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(indent.Apply(part))
	}
	if a.footer != "" {
		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(a.footer)
	}
	return sb.String()
}

// Context is the mutable state of a single Walk. It is handed to every custom rule
// and must not be shared between walks.
type Context struct {
	registry     *Registry
	source       []byte
	queue        workQueue
	accumulators []*accumulator
	fragments    []Fragment
	accumulating bool
}

func newContext(registry *Registry, source []byte) *Context {
	return &Context{
		registry: registry,
		source:   source,
	}
}

// Accumulating reports whether the node being processed belongs to an open accumulation.
func (c *Context) Accumulating() bool { return c.accumulating }

// Registry returns the registry driving the walk.
func (c *Context) Registry() *Registry { return c.registry }

// Source returns the source buffer the tree was parsed from.
func (c *Context) Source() []byte { return c.source }

// Elide renders node with its body replaced by the placeholder.
func (c *Context) Elide(node *sitter.Node) string {
	return RenderElided(node, c.source, c.registry)
}

// Verbatim returns the trimmed source text of node. Inside an accumulation, continuation
// lines lose the node's original indentation so the merged fragment can re-indent them.
// Lines within a multi-line string literal keep their exact text.
func (c *Context) Verbatim(node *sitter.Node) string {
	text := strings.TrimSpace(node.Utf8Text(c.source))
	if c.accumulating {
		return dedent(text, node.StartPosition().Column, literalLines(node))
	}
	return text
}

// Enqueue appends nodes to the back of the queue as ordinary, non-accumulating work.
func (c *Context) Enqueue(nodes ...*sitter.Node) {
	for _, node := range nodes {
		if node != nil {
			c.queue.pushBack(item{node: node})
		}
	}
}

// Descend pushes nodes to the front of the queue so they are processed next, in order.
func (c *Context) Descend(accumulating bool, nodes ...*sitter.Node) {
	items := make([]item, 0, len(nodes))
	for _, node := range nodes {
		if node != nil {
			items = append(items, item{node: node, accumulating: accumulating})
		}
	}
	c.queue.pushFront(items...)
}

// Accumulate merges header, the output of children and footer into one fragment.
//
// It opens an accumulator seeded with header and pushes the children (as accumulating
// work) followed by a sentinel to the front of the queue. The children are therefore
// processed immediately, before any queued sibling, and the sentinel closes the
// fragment once they are done. Rules return its result directly:
//
//	return tc.Accumulate(header, "}", children)
func (c *Context) Accumulate(header, footer string, children []*sitter.Node) (string, error) {
	c.accumulators = append(c.accumulators, &accumulator{header: header, footer: footer})

	items := make([]item, 0, len(children)+1)
	for _, child := range children {
		if child != nil {
			items = append(items, item{node: child, accumulating: true})
		}
	}
	items = append(items, item{sentinel: true})
	c.queue.pushFront(items...)

	return "", SkipNode
}

// emit routes content into the innermost accumulator when the current node is
// accumulating, otherwise straight to the fragment list.
func (c *Context) emit(content string) {
	if c.accumulating && len(c.accumulators) > 0 {
		top := c.accumulators[len(c.accumulators)-1]
		top.parts = append(top.parts, content)
		return
	}
	c.fragments = append(c.fragments, Fragment{Content: unmark(content)})
}

// closeAccumulator handles a sentinel. The merged text becomes one fragment, or a part of
// the enclosing accumulator when accumulations are nested.
func (c *Context) closeAccumulator() {
	n := len(c.accumulators)
	if n == 0 {
		c.fragments = append(c.fragments, Fragment{})
		return
	}
	top := c.accumulators[n-1]
	c.accumulators = c.accumulators[:n-1]

	merged := top.merge(c.registry.indent)
	if n > 1 {
		parent := c.accumulators[n-2]
		parent.parts = append(parent.parts, merged)
		return
	}
	c.fragments = append(c.fragments, Fragment{Content: unmark(merged)})
}

// rawLine prefixes a line inside a multi-line string literal while a fragment is being
// merged. Marked lines are neither dedented nor indented.
const rawLine = "\x00"

// dedent strips up to column leading blanks from every line after the first. Text taken
// from a nested node keeps its original indentation on continuation lines only. Lines
// whose offset is in raw are marked instead.
func dedent(text string, column uint, raw map[int]bool) string {
	if !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		if raw[i] {
			lines[i] = rawLine + line
			continue
		}
		cut := 0
		for cut < len(line) && uint(cut) < column && (line[cut] == ' ' || line[cut] == '\t') {
			cut++
		}
		lines[i] = line[cut:]
	}
	return strings.Join(lines, "\n")
}

func unmark(text string) string {
	return strings.ReplaceAll(text, rawLine, "")
}

// literalLines returns the line offsets, counted from node's first row, that continue a
// multi-line string literal somewhere below node.
func literalLines(node *sitter.Node) map[int]bool {
	first := node.StartPosition().Row
	var lines map[int]bool

	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		start, end := n.StartPosition().Row, n.EndPosition().Row
		if start == end {
			return
		}
		if isStringLiteral(n.Kind()) {
			if lines == nil {
				lines = make(map[int]bool)
			}
			for row := start + 1; row <= end; row++ {
				lines[int(row-first)] = true
			}
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			if child := n.Child(i); child != nil {
				visit(child)
			}
		}
	}
	visit(node)
	return lines
}

// isStringLiteral matches the multi-line literal kinds of the supported grammars. A C
// concatenated_string only joins separate literals, so its line breaks are code.
func isStringLiteral(kind string) bool {
	switch {
	case kind == "concatenated_string":
		return false
	case kind == "text_block", kind == "nowdoc":
		return true
	}
	return strings.Contains(kind, "string") || strings.Contains(kind, "heredoc")
}
