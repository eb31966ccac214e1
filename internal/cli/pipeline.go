package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/mvp-joe/code-digest/internal/cache"
	"github.com/mvp-joe/code-digest/internal/config"
	"github.com/mvp-joe/code-digest/internal/digest/languages"
	"github.com/mvp-joe/code-digest/internal/files"
	"github.com/mvp-joe/code-digest/internal/processor"
)

// ErrInvalidLangMapping indicates a --lang value that is not ext=language.
var ErrInvalidLangMapping = errors.New("invalid --lang mapping")

// pipeline is everything a command needs to digest a directory.
type pipeline struct {
	cfg   *config.Config
	langs *languages.Set
	cache *cache.Cache
	proc  *processor.Processor
}

// newPipeline loads configuration for dir, applies flag overrides and builds the processor.
// Every configured grammar is checked here, before any file is read.
func newPipeline(dir string, flags *pflag.FlagSet, reporter processor.ProgressReporter) (*pipeline, error) {
	configFile, _ := flags.GetString("config")

	cfg, err := config.NewFileLoader(dir, configFile).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := applyFlagOverrides(cfg, flags); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	table, err := cfg.ExtensionTable()
	if err != nil {
		return nil, err
	}
	langs, err := languages.NewSet(table)
	if err != nil {
		return nil, err
	}

	include, err := files.NewGlobMatcher(cfg.Paths.Include)
	if err != nil {
		return nil, err
	}

	c, err := cache.New(cfg.Cache.MaxEntries)
	if err != nil {
		return nil, err
	}

	proc := processor.New(processor.Options{
		Languages: langs,
		Include:   include,
		Cache:     c,
		Workers:   cfg.Processing.Workers,
		Reporter:  reporter,
	})

	return &pipeline{cfg: cfg, langs: langs, cache: c, proc: proc}, nil
}

// Walker creates a walker for dir using the configured ignore rules.
func (p *pipeline) Walker(dir string) (*files.Walker, error) {
	return files.NewWalker(dir, p.cfg.Paths.IgnoreDirs, p.cfg.Paths.Ignore)
}

// WatchExtensions returns the extensions whose changes affect the digest. Include globs
// can match any file, so they widen the set to everything.
func (p *pipeline) WatchExtensions() []string {
	if len(p.cfg.Paths.Include) > 0 {
		return nil
	}
	return p.langs.Extensions()
}

// Close releases the cache.
func (p *pipeline) Close() {
	p.cache.Close()
}

// applyFlagOverrides layers command-line flags over the loaded configuration.
// List flags extend the configured lists; scalar flags replace values only when set.
func applyFlagOverrides(cfg *config.Config, flags *pflag.FlagSet) error {
	if dirs, _ := flags.GetStringSlice("ignore"); len(dirs) > 0 {
		cfg.Paths.IgnoreDirs = append(cfg.Paths.IgnoreDirs, dirs...)
	}
	if globs, _ := flags.GetStringSlice("include"); len(globs) > 0 {
		cfg.Paths.Include = append(cfg.Paths.Include, globs...)
	}
	if flags.Changed("tree") {
		cfg.Output.Tree, _ = flags.GetBool("tree")
	}
	if flags.Changed("workers") {
		cfg.Processing.Workers, _ = flags.GetInt("workers")
	}

	mappings, _ := flags.GetStringSlice("lang")
	parsed, err := parseLangMappings(mappings)
	if err != nil {
		return err
	}
	if len(parsed) > 0 && cfg.Languages.Extensions == nil {
		cfg.Languages.Extensions = map[string]string{}
	}
	for ext, lang := range parsed {
		cfg.Languages.Extensions[ext] = lang
	}
	return nil
}

// parseLangMappings parses ext=language pairs. A leading dot on ext is dropped.
func parseLangMappings(mappings []string) (map[string]string, error) {
	parsed := make(map[string]string, len(mappings))
	for _, m := range mappings {
		ext, lang, ok := strings.Cut(m, "=")
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		lang = strings.TrimSpace(lang)
		if !ok || ext == "" || lang == "" {
			return nil, fmt.Errorf("%w: %q (want ext=language)", ErrInvalidLangMapping, m)
		}
		parsed[ext] = lang
	}
	return parsed, nil
}
