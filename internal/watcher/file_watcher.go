package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Options.Debounce is zero.
const DefaultDebounce = 500 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Extensions to monitor (e.g. ".go", ".rs"). Empty means every file.
	Extensions []string

	// Debounce is the quiet period before a batch is delivered.
	Debounce time.Duration

	// Filter excludes directories from being watched and files from being reported.
	// Nil excludes hidden entries only.
	Filter Filter
}

// Watcher reports changed files below a root directory in sorted, debounced batches.
// Directories created while it runs are watched as soon as they appear.
type Watcher struct {
	root       string
	fsw        *fsnotify.Watcher
	extensions map[string]bool
	debounce   time.Duration
	filter     Filter

	mu      sync.Mutex
	watched map[string]bool
}

// New watches root and every directory below it that opts.Filter keeps.
func New(root string, opts Options) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot watch %s: not a directory", root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	extensions := make(map[string]bool, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		extensions[strings.ToLower(ext)] = true
	}

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		root:       filepath.Clean(root),
		fsw:        fsw,
		extensions: extensions,
		debounce:   debounce,
		filter:     opts.Filter,
		watched:    make(map[string]bool),
	}

	if err := w.addTree(w.root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run delivers batches to onChange until ctx is done. onChange runs on the calling
// goroutine, so events arriving during a callback land in the next batch.
func (w *Watcher) Run(ctx context.Context, onChange func(files []string)) error {
	pending := make(map[string]bool)
	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.handle(event) {
				continue
			}
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for name := range pending {
				batch = append(batch, name)
			}
			clear(pending)
			sort.Strings(batch)
			onChange(batch)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// Close releases the underlying watches.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Watched returns the watched directories, sorted.
func (w *Watcher) Watched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	dirs := make([]string, 0, len(w.watched))
	for dir := range w.watched {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return dirs
}

// handle updates the watch set for directory events and reports whether event is a
// change to a file worth reporting.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				log.Printf("Warning: failed to watch new directory %s: %v", event.Name, err)
			}
			return false
		}
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		if w.forget(event.Name) {
			return false
		}
	}

	return w.relevant(event)
}

// relevant reports whether event changes a monitored file.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	// Editors often save through a rename, so RENAME counts as a change
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if w.excluded(event.Name, false) {
		return false
	}
	if len(w.extensions) == 0 {
		return true
	}
	return w.extensions[strings.ToLower(filepath.Ext(event.Name))]
}

func (w *Watcher) excluded(path string, isDir bool) bool {
	if w.filter != nil {
		return w.filter.Excluded(path, isDir)
	}
	return strings.HasPrefix(filepath.Base(path), ".")
}

// addTree watches dir and the directories below it, pruning excluded subtrees.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			log.Printf("Warning: error accessing %s: %v", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.excluded(path, true) {
			return filepath.SkipDir
		}
		w.add(path)
		return nil
	})
}

func (w *Watcher) add(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watched[dir] {
		return
	}
	if err := w.fsw.Add(dir); err != nil {
		log.Printf("Warning: failed to watch directory %s: %v", dir, err)
		return
	}
	w.watched[dir] = true
}

// forget drops a removed or renamed directory and everything watched below it. It
// reports whether path was a watched directory.
func (w *Watcher) forget(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.watched[path] {
		return false
	}
	prefix := path + string(filepath.Separator)
	for dir := range w.watched {
		if dir == path || strings.HasPrefix(dir, prefix) {
			// fsnotify drops watches of deleted directories itself
			_ = w.fsw.Remove(dir)
			delete(w.watched, dir)
		}
	}
	return true
}
