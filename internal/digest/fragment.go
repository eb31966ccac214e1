package digest

import "strings"

// Fragment is one completed unit of extracted text.
type Fragment struct {
	Content string
}

func (f Fragment) String() string { return f.Content }

// Contents returns the text of each fragment, in order.
func Contents(fragments []Fragment) []string {
	out := make([]string, len(fragments))
	for i, f := range fragments {
		out[i] = f.Content
	}
	return out
}

// Join joins fragments with one blank line between them.
func Join(fragments []Fragment) string {
	return strings.Join(Contents(fragments), "\n\n")
}
