// Package watcher reports debounced batches of source file changes.
package watcher

// Filter decides which paths below the watched root are observed. *files.Walker
// satisfies it, so a watch sees exactly the directories a walk would visit.
type Filter interface {
	Excluded(path string, isDir bool) bool
}
