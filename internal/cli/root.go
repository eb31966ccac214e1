package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "code-digest [directory]",
	Short: "Print a structural digest of a source tree",
	Long: `code-digest walks a directory and prints, for every supported source file,
its imports, type declarations and signatures with function bodies elided.

Files matching --include globs are printed verbatim. Go and Rust are enabled
by default; map more extensions with --lang or .code-digest/config.yml.

Examples:
  code-digest
  code-digest ./internal --tree
  code-digest -I '**/*.md' --lang py=python .`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDigest,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func init() {
	registerDigestFlags(rootCmd.PersistentFlags())
}

// registerDigestFlags defines the flags shared by every command that builds a pipeline.
func registerDigestFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default is <directory>/.code-digest/config.yml)")
	fs.StringSliceP("ignore", "i", nil, "directory to ignore (repeatable)")
	fs.StringSliceP("include", "I", nil, "glob of files to print verbatim (repeatable)")
	fs.BoolP("tree", "t", false, "print the file tree before the digest")
	fs.StringSlice("lang", nil, "extra extension mapping as ext=language (repeatable)")
	fs.Int("workers", 0, "number of files digested in parallel (0 = one per CPU)")
	fs.BoolP("quiet", "q", false, "suppress progress output")
}

func runDigest(cmd *cobra.Command, args []string) error {
	return digestDir(cmd.Context(), cmd.OutOrStdout(), targetDir(args), cmd.Flags())
}

// digestDir prints the digest of dir to w.
func digestDir(ctx context.Context, w io.Writer, dir string, flags *pflag.FlagSet) error {
	quiet, _ := flags.GetBool("quiet")

	p, err := newPipeline(dir, flags, newProgressReporter(quiet))
	if err != nil {
		return err
	}
	defer p.Close()

	walker, err := p.Walker(dir)
	if err != nil {
		return err
	}
	if _, err := p.proc.Run(ctx, w, walker, p.cfg.Output.Tree); err != nil {
		return err
	}
	return nil
}

func targetDir(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return "."
}
