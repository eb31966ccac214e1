package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DirName is the per-project configuration directory.
const DirName = ".code-digest"

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewFileLoader creates a configuration loader for rootDir. A non-empty configFile is read
// instead of searching rootDir/.code-digest for config.yml or config.yaml.
func NewFileLoader(rootDir, configFile string) Loader {
	return &loader{
		rootDir:    rootDir,
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (CODE_DIGEST_*)
// 2. Config file (.code-digest/config.yml or .code-digest/config.yaml, or the explicit file)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(filepath.Join(l.rootDir, DirName))
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("CODE_DIGEST")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., CODE_DIGEST_PROCESSING_WORKERS)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindEnvVars(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable unless it was asked for explicitly
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || l.configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Languages.Extensions == nil {
		cfg.Languages.Extensions = map[string]string{}
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// bindEnvVars binds environment variables to config keys.
func bindEnvVars(v *viper.Viper) {
	// Paths (comma-separated lists)
	v.BindEnv("paths.ignore")
	v.BindEnv("paths.ignore_dirs")
	v.BindEnv("paths.include")

	v.BindEnv("output.tree")
	v.BindEnv("processing.workers")
	v.BindEnv("cache.max_entries")
	v.BindEnv("watch.debounce_ms")
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("paths.ignore_dirs", defaults.Paths.IgnoreDirs)
	v.SetDefault("paths.include", defaults.Paths.Include)

	v.SetDefault("output.tree", defaults.Output.Tree)
	v.SetDefault("processing.workers", defaults.Processing.Workers)
	v.SetDefault("cache.max_entries", defaults.Cache.MaxEntries)
	v.SetDefault("watch.debounce_ms", defaults.Watch.DebounceMS)
}
