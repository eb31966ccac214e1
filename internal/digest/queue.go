package digest

import sitter "github.com/tree-sitter/go-tree-sitter"

// item is one unit of pending traversal work: a node, or a sentinel that closes
// the innermost open accumulator.
type item struct {
	node         *sitter.Node
	accumulating bool
	sentinel     bool
}

// workQueue merges two disciplines behind pop:
//   - siblings: FIFO, appended at the back, gives breadth order across siblings.
//   - immediate: LIFO, prepended at the front, always drained before siblings.
type workQueue struct {
	immediate []item
	siblings  []item
	head      int
}

// pushBack appends to the sibling FIFO.
func (q *workQueue) pushBack(it item) {
	q.siblings = append(q.siblings, it)
}

// pushFront prepends items so that items[0] is popped next, followed by items[1], and so on.
func (q *workQueue) pushFront(items ...item) {
	for i := len(items) - 1; i >= 0; i-- {
		q.immediate = append(q.immediate, items[i])
	}
}

func (q *workQueue) pop() (item, bool) {
	if n := len(q.immediate); n > 0 {
		it := q.immediate[n-1]
		q.immediate = q.immediate[:n-1]
		return it, true
	}
	if q.head < len(q.siblings) {
		it := q.siblings[q.head]
		q.siblings[q.head] = item{}
		q.head++
		if q.head == len(q.siblings) {
			q.siblings = q.siblings[:0]
			q.head = 0
		}
		return it, true
	}
	return item{}, false
}

func (q *workQueue) len() int {
	return len(q.immediate) + len(q.siblings) - q.head
}
