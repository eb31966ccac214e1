package cli

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mvp-joe/code-digest/internal/processor"
	"github.com/mvp-joe/code-digest/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Print the digest and re-print it whenever source files change",
	Long: `Print the digest of a directory, then watch it and print a fresh digest
after every burst of changes. Unchanged files are served from the in-memory
digest cache, so only edited files are parsed again.

Example:
  code-digest watch ./internal`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	return watchDir(cmd.Context(), cmd.OutOrStdout(), targetDir(args), cmd.Flags())
}

// watchDir prints the digest of dir and re-prints it on change until ctx is done.
func watchDir(ctx context.Context, w io.Writer, dir string, flags *pflag.FlagSet) error {
	quiet, _ := flags.GetBool("quiet")

	p, err := newPipeline(dir, flags, processor.NoOpProgressReporter{})
	if err != nil {
		return err
	}
	defer p.Close()

	walker, err := p.Walker(dir)
	if err != nil {
		return err
	}

	render := func() error {
		stats, err := p.proc.Run(ctx, w, walker, p.cfg.Output.Tree)
		if err != nil {
			return err
		}
		if !quiet {
			cs := p.cache.Stats()
			log.Printf("Digested %d files (%d from cache, %d cached digests, %d hits, %d misses)",
				stats.Digested, stats.CacheHits, cs.Entries, cs.Hits, cs.Misses)
		}
		return nil
	}

	if err := render(); err != nil {
		return err
	}

	fw, err := watcher.New(dir, watcher.Options{
		Extensions: p.WatchExtensions(),
		Debounce:   p.cfg.DebounceDuration(),
		Filter:     walker,
	})
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	if !quiet {
		log.Printf("Watching %s for changes (Ctrl+C to stop)...", dir)
	}

	// Batches are delivered on this goroutine, so renders never overlap
	return fw.Run(ctx, func(changed []string) {
		if !quiet {
			log.Printf("Detected %d changed files, re-rendering...", len(changed))
		}
		fmt.Fprintln(w)
		if err := render(); err != nil && ctx.Err() == nil {
			log.Printf("Error rendering digest: %v", err)
		}
	})
}
