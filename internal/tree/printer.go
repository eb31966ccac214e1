// Package tree prints an indented file and directory tree.
package tree

import (
	"io"
	"strings"

	"github.com/mvp-joe/code-digest/internal/files"
)

const (
	branch    = "├── "
	lastEntry = "└── "
	pipe      = "│   "
	blank     = "    "
)

// Print writes entries as an ASCII tree. entries must be in walk order with the root first;
// the root is printed as ".".
func Print(w io.Writer, entries []files.Entry) error {
	_, err := io.WriteString(w, Render(entries))
	return err
}

// Render returns the tree for entries, one line per entry.
func Render(entries []files.Entry) string {
	if len(entries) == 0 {
		return ""
	}

	last := lastSiblings(entries)

	var sb strings.Builder
	sb.WriteString(".\n")

	// ancestorLast[d] is whether the most recent entry at depth d was the last of its siblings
	var ancestorLast []bool
	for i := 1; i < len(entries); i++ {
		depth := entries[i].Depth
		if depth < 1 {
			continue
		}
		for d := 1; d < depth; d++ {
			if d < len(ancestorLast) && ancestorLast[d] {
				sb.WriteString(blank)
			} else {
				sb.WriteString(pipe)
			}
		}
		if last[i] {
			sb.WriteString(lastEntry)
		} else {
			sb.WriteString(branch)
		}
		sb.WriteString(entries[i].Name())
		sb.WriteByte('\n')

		for len(ancestorLast) <= depth {
			ancestorLast = append(ancestorLast, false)
		}
		ancestorLast[depth] = last[i]
	}
	return sb.String()
}

// lastSiblings marks each entry that has no later sibling. Scanning backwards, an entry is
// last unless an entry at the same depth was seen since the last shallower one.
func lastSiblings(entries []files.Entry) []bool {
	last := make([]bool, len(entries))
	var seen []bool
	for i := len(entries) - 1; i >= 1; i-- {
		depth := entries[i].Depth
		for len(seen) <= depth {
			seen = append(seen, false)
		}
		last[i] = !seen[depth]
		seen[depth] = true
		// deeper levels start over under a new parent
		for d := depth + 1; d < len(seen); d++ {
			seen[d] = false
		}
	}
	return last
}
