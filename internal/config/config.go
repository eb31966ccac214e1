package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/mvp-joe/code-digest/internal/cache"
	"github.com/mvp-joe/code-digest/internal/digest/languages"
)

// Config represents the complete code-digest configuration.
// It can be loaded from .code-digest/config.yml with environment variable overrides.
type Config struct {
	Paths      PathsConfig      `yaml:"paths" mapstructure:"paths"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Languages  LanguagesConfig  `yaml:"languages" mapstructure:"languages"`
	Processing ProcessingConfig `yaml:"processing" mapstructure:"processing"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Watch      WatchConfig      `yaml:"watch" mapstructure:"watch"`
}

// PathsConfig defines which files to skip and which to emit verbatim.
type PathsConfig struct {
	Ignore     []string `yaml:"ignore" mapstructure:"ignore"`           // glob patterns to ignore
	IgnoreDirs []string `yaml:"ignore_dirs" mapstructure:"ignore_dirs"` // directories to ignore, "~" expanded
	Include    []string `yaml:"include" mapstructure:"include"`         // glob patterns emitted verbatim
}

// OutputConfig controls presentation.
type OutputConfig struct {
	Tree bool `yaml:"tree" mapstructure:"tree"` // print the file tree before the digest
}

// LanguagesConfig maps file extensions (without the leading dot) to language names.
// Entries are added to, and may override, the built-in go and rs mappings.
type LanguagesConfig struct {
	Extensions map[string]string `yaml:"extensions" mapstructure:"extensions"`
}

// ProcessingConfig controls the worker pool.
type ProcessingConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // 0 means one per CPU
}

// CacheConfig sizes the in-memory digest cache.
type CacheConfig struct {
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"` // quiet period before re-rendering
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				"target/**",
				"dist/**",
				"build/**",
			},
			IgnoreDirs: []string{},
			Include:    []string{},
		},
		Output: OutputConfig{
			Tree: false,
		},
		Languages: LanguagesConfig{
			Extensions: map[string]string{},
		},
		Processing: ProcessingConfig{
			Workers: 0,
		},
		Cache: CacheConfig{
			MaxEntries: cache.DefaultMaxEntries,
		},
		Watch: WatchConfig{
			DebounceMS: 500,
		},
	}
}

// ExtensionTable returns the built-in extension table merged with the configured one.
func (c *Config) ExtensionTable() (map[string]languages.Language, error) {
	table := languages.DefaultExtensions()

	// Sorted so that the first reported error is stable
	exts := make([]string, 0, len(c.Languages.Extensions))
	for ext := range c.Languages.Extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	for _, ext := range exts {
		lang, err := languages.Parse(c.Languages.Extensions[ext])
		if err != nil {
			return nil, fmt.Errorf("extension %q: %w", ext, err)
		}
		table[normalizeExt(ext)] = lang
	}
	return table, nil
}

// DebounceDuration returns the watch debounce period.
func (c *Config) DebounceDuration() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
