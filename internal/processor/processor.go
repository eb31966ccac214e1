// Package processor turns walked files into fenced, path-labelled digest blocks.
package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/mvp-joe/code-digest/internal/cache"
	"github.com/mvp-joe/code-digest/internal/digest"
	"github.com/mvp-joe/code-digest/internal/digest/languages"
	"github.com/mvp-joe/code-digest/internal/files"
	"github.com/mvp-joe/code-digest/internal/tree"
)

// Options configures a Processor.
type Options struct {
	Languages *languages.Set     // required
	Include   *files.GlobMatcher // files emitted verbatim, may be nil
	Cache     *cache.Cache       // may be nil
	Workers   int                // <= 0 means runtime.NumCPU()
	Reporter  ProgressReporter   // may be nil
}

// Result is the outcome of processing one file.
type Result struct {
	Entry    files.Entry
	Language languages.Language // empty for verbatim and skipped files
	Output   string             // rendered block, empty when skipped or failed
	Verbatim bool
	Skipped  bool // no include match and no language for the extension
	Cached   bool
	Err      error
}

// Stats summarizes one run.
type Stats struct {
	Files     int
	Digested  int
	Verbatim  int
	Skipped   int
	Failed    int
	CacheHits int
	Duration  time.Duration
}

// Processor digests files. It is safe for concurrent use.
type Processor struct {
	langs    *languages.Set
	include  *files.GlobMatcher
	cache    *cache.Cache
	workers  int
	reporter ProgressReporter
}

// New creates a processor.
func New(opts Options) *Processor {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = NoOpProgressReporter{}
	}
	return &Processor{
		langs:    opts.Languages,
		include:  opts.Include,
		cache:    opts.Cache,
		workers:  workers,
		reporter: reporter,
	}
}

// ProcessFile reads and renders a single file. Glob-matched files are rendered verbatim
// before any language lookup; files with an unknown extension are skipped.
func (p *Processor) ProcessFile(entry files.Entry) Result {
	result := Result{Entry: entry}

	content, err := os.ReadFile(entry.Path)
	if err != nil {
		result.Err = fmt.Errorf("failed to read file: %w", err)
		return result
	}

	if p.include.Matches(entry.RelPath) {
		result.Verbatim = true
		result.Output = renderBlock(entry.Path, "", strings.TrimRight(string(content), "\n"))
		return result
	}

	lang, reg, ok := p.langs.ForPath(entry.Path)
	if !ok {
		result.Skipped = true
		return result
	}
	result.Language = lang

	body, cached, err := p.digest(lang, reg, content)
	if err != nil {
		result.Err = err
		return result
	}
	result.Cached = cached
	result.Output = renderBlock(entry.Path, lang.Fence(), body)
	return result
}

// digest returns the joined fragments for content, consulting the cache first.
func (p *Processor) digest(lang languages.Language, reg *digest.Registry, content []byte) (string, bool, error) {
	if body, ok := p.cache.Get(string(lang), content); ok {
		return body, true, nil
	}

	fragments, err := digest.Extract(content, reg)
	if err != nil {
		return "", false, err
	}
	body := digest.Join(fragments)
	p.cache.Put(string(lang), content, body)
	return body, false, nil
}

// Process digests the file entries in parallel and returns one Result per file, in the
// order the entries were given. Directory entries are ignored.
func (p *Processor) Process(ctx context.Context, entries []files.Entry) []Result {
	fileEntries := files.Files(entries)
	results := make([]Result, len(fileEntries))

	sem := make(chan struct{}, p.workers)
	var wg sync.WaitGroup

	for i, entry := range fileEntries {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Entry: entry, Err: err}
			continue
		}

		wg.Add(1)
		go func(i int, entry files.Entry) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			if err := ctx.Err(); err != nil {
				results[i] = Result{Entry: entry, Err: err}
				return
			}
			results[i] = p.ProcessFile(entry)
			p.reporter.OnFileProcessed(entry.Path)
		}(i, entry)
	}

	wg.Wait()
	return results
}

// Render writes the rendered blocks separated by blank lines. Failed files are reported
// on the standard logger and left out.
func (p *Processor) Render(w io.Writer, results []Result) (Stats, error) {
	var stats Stats
	first := true
	for _, r := range results {
		stats.Files++
		switch {
		case r.Err != nil:
			stats.Failed++
			log.Printf("Error processing file %s: %v", r.Entry.Path, r.Err)
			continue
		case r.Skipped:
			stats.Skipped++
			continue
		case r.Verbatim:
			stats.Verbatim++
		default:
			stats.Digested++
		}
		if r.Cached {
			stats.CacheHits++
		}

		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return stats, err
			}
		}
		first = false
		if _, err := io.WriteString(w, r.Output+"\n"); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// Run walks the tree, optionally prints it, and writes the digest of every file to w.
// Per-file failures are logged and do not stop the run; a fatal grammar problem does.
func (p *Processor) Run(ctx context.Context, w io.Writer, walker *files.Walker, withTree bool) (Stats, error) {
	start := time.Now()

	entries, err := walker.Walk()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to walk %s: %w", walker.Root(), err)
	}
	p.reporter.OnDiscoveryComplete(len(files.Files(entries)))

	if withTree {
		if err := tree.Print(w, entries); err != nil {
			return Stats{}, err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return Stats{}, err
		}
	}

	results := p.Process(ctx, entries)
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	for _, r := range results {
		if errors.Is(r.Err, digest.ErrGrammarIncompatible) {
			return Stats{}, r.Err
		}
	}

	stats, err := p.Render(w, results)
	if err != nil {
		return stats, err
	}
	stats.Duration = time.Since(start)
	p.reporter.OnComplete(stats)
	return stats, nil
}

// renderBlock formats one file: a backquoted path line, then a fence tagged with fence
// (untagged when empty) around body.
func renderBlock(path, fence, body string) string {
	var sb strings.Builder
	sb.WriteString("`" + path + "`\n")
	sb.WriteString("```" + fence + "\n")
	if body != "" {
		sb.WriteString(body)
		sb.WriteByte('\n')
	}
	sb.WriteString("```")
	return sb.String()
}
