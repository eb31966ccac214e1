package cli

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/mvp-joe/code-digest/internal/processor"
)

// CLIProgressReporter shows a progress bar on stderr while files are digested.
type CLIProgressReporter struct {
	out     io.Writer
	fileBar *progressbar.ProgressBar
}

// newProgressReporter returns a silent reporter when quiet is set or stderr is not a terminal.
func newProgressReporter(quiet bool) processor.ProgressReporter {
	if quiet || !term.IsTerminal(int(os.Stderr.Fd())) {
		return processor.NoOpProgressReporter{}
	}
	return NewCLIProgressReporter(os.Stderr)
}

// NewCLIProgressReporter creates a reporter that draws on out.
func NewCLIProgressReporter(out io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{out: out}
}

func (c *CLIProgressReporter) OnDiscoveryComplete(totalFiles int) {
	log.Printf("Digesting %d files\n", totalFiles)

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Digesting files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

// OnFileProcessed is called from worker goroutines; the bar serializes updates itself.
func (c *CLIProgressReporter) OnFileProcessed(path string) {
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnComplete(stats processor.Stats) {
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}

	fmt.Fprintf(c.out, "✓ Digest complete: %d files in %.1fs\n", stats.Files, stats.Duration.Seconds())
	fmt.Fprintf(c.out, "  Digested: %d  Verbatim: %d  Skipped: %d  Failed: %d  Cached: %d\n",
		stats.Digested, stats.Verbatim, stats.Skipped, stats.Failed, stats.CacheHits)
}
