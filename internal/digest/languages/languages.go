// Package languages holds the default extraction registries for each supported
// language and the extension table that selects them.
package languages

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mvp-joe/code-digest/internal/digest"
)

// Language identifies a configured grammar.
type Language string

const (
	Go         Language = "go"
	Rust       Language = "rust"
	Python     Language = "python"
	Java       Language = "java"
	C          Language = "c"
	TypeScript Language = "typescript"
	PHP        Language = "php"
	Ruby       Language = "ruby"
)

// ErrUnknownLanguage indicates a language name with no registry.
var ErrUnknownLanguage = errors.New("unknown language")

var builders = map[Language]func() *digest.Registry{
	Go:         newGoRegistry,
	Rust:       newRustRegistry,
	Python:     newPythonRegistry,
	Java:       newJavaRegistry,
	C:          newCRegistry,
	TypeScript: newTypeScriptRegistry,
	PHP:        newPHPRegistry,
	Ruby:       newRubyRegistry,
}

// All returns every language with a default registry, sorted by name.
func All() []Language {
	langs := make([]Language, 0, len(builders))
	for lang := range builders {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

// Parse resolves a language name such as "rust".
func Parse(name string) (Language, error) {
	lang := Language(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := builders[lang]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
	}
	return lang, nil
}

// Fence returns the identifier used to tag fenced code blocks.
func (l Language) Fence() string {
	return string(l)
}

// DefaultRegistry builds the default registry for lang.
func DefaultRegistry(lang Language) (*digest.Registry, error) {
	build, ok := builders[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, lang)
	}
	return build(), nil
}

// DefaultExtensions is the extension table used when nothing else is configured.
// Keys carry no leading dot.
func DefaultExtensions() map[string]Language {
	return map[string]Language{
		"go": Go,
		"rs": Rust,
	}
}

// Set holds one shared registry per language reachable from an extension table.
type Set struct {
	extensions map[string]Language
	registries map[Language]*digest.Registry
}

// NewSet builds the registries for every language in extensions and checks each grammar
// once. A grammar the runtime rejects yields an error wrapping digest.ErrGrammarIncompatible.
func NewSet(extensions map[string]Language) (*Set, error) {
	s := &Set{
		extensions: make(map[string]Language, len(extensions)),
		registries: make(map[Language]*digest.Registry),
	}
	for ext, lang := range extensions {
		s.extensions[normalizeExt(ext)] = lang
		if _, ok := s.registries[lang]; ok {
			continue
		}
		reg, err := DefaultRegistry(lang)
		if err != nil {
			return nil, err
		}
		if err := reg.Grammar().Check(); err != nil {
			return nil, err
		}
		s.registries[lang] = reg
	}
	return s, nil
}

// ForPath selects the language and registry for a file path by extension.
// ok is false for unrecognized extensions.
func (s *Set) ForPath(path string) (lang Language, reg *digest.Registry, ok bool) {
	lang, ok = s.extensions[normalizeExt(filepath.Ext(path))]
	if !ok {
		return "", nil, false
	}
	return lang, s.registries[lang], true
}

// Extensions returns the configured extensions with a leading dot, sorted.
func (s *Set) Extensions() []string {
	exts := make([]string, 0, len(s.extensions))
	for ext := range s.extensions {
		exts = append(exts, "."+ext)
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
