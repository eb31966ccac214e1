package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/mvp-joe/code-digest/internal/digest/languages"
)

var (
	// ErrInvalidPattern indicates a glob pattern that does not compile
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrInvalidExtension indicates a malformed extension key
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrUnknownLanguage indicates an extension mapped to a language without a registry
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrInvalidWorkers indicates a negative worker count
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrInvalidCacheSettings indicates invalid cache configuration
	ErrInvalidCacheSettings = errors.New("invalid cache settings")

	// ErrInvalidDebounce indicates a non-positive watch debounce
	ErrInvalidDebounce = errors.New("invalid debounce")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validatePaths(&cfg.Paths); err != nil {
		errs = append(errs, err)
	}

	if err := validateLanguages(&cfg.Languages); err != nil {
		errs = append(errs, err)
	}

	if cfg.Processing.Workers < 0 {
		errs = append(errs, fmt.Errorf("%w: workers cannot be negative, got %d", ErrInvalidWorkers, cfg.Processing.Workers))
	}

	if cfg.Cache.MaxEntries <= 0 {
		errs = append(errs, fmt.Errorf("%w: max_entries must be positive, got %d", ErrInvalidCacheSettings, cfg.Cache.MaxEntries))
	}

	if cfg.Watch.DebounceMS <= 0 {
		errs = append(errs, fmt.Errorf("%w: debounce_ms must be positive, got %d", ErrInvalidDebounce, cfg.Watch.DebounceMS))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validatePaths(cfg *PathsConfig) error {
	var errs []error

	for _, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: ignore pattern '%s': %v", ErrInvalidPattern, pattern, err))
		}
	}
	for _, pattern := range cfg.Include {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: include pattern '%s': %v", ErrInvalidPattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateLanguages(cfg *LanguagesConfig) error {
	var errs []error

	for ext, name := range cfg.Extensions {
		if normalizeExt(ext) == "" || strings.ContainsAny(ext, "/\\") {
			errs = append(errs, fmt.Errorf("%w: '%s'", ErrInvalidExtension, ext))
			continue
		}
		if _, err := languages.Parse(name); err != nil {
			errs = append(errs, fmt.Errorf("%w: '%s' for extension '%s' (valid: %s)", ErrUnknownLanguage, name, ext, validLanguages()))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validLanguages() string {
	all := languages.All()
	names := make([]string, len(all))
	for i, lang := range all {
		names[i] = string(lang)
	}
	return strings.Join(names, ", ")
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// joinErrors combines multiple errors into a single error with clear formatting.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}

	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
