package languages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/code-digest/internal/digest"
)

// Test Plan for language selection:
// - Parse accepts known names case-insensitively and rejects unknown ones
// - Every default registry's grammar passes the runtime check
// - NewSet maps extensions with or without a leading dot
// - ForPath selects by extension and reports unknown extensions
// - Languages sharing a Set share one registry

// extract is a test helper running the default registry for lang over source.
func extract(t *testing.T, lang Language, source string) []string {
	t.Helper()
	reg, err := DefaultRegistry(lang)
	require.NoError(t, err)
	fragments, err := digest.Extract([]byte(source), reg)
	require.NoError(t, err)
	return digest.Contents(fragments)
}

func TestParse(t *testing.T) {
	t.Parallel()

	lang, err := Parse("Rust")
	require.NoError(t, err)
	assert.Equal(t, Rust, lang)
	assert.Equal(t, "rust", lang.Fence())

	_, err = Parse("cobol")
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	_, err = DefaultRegistry("cobol")
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestAll_GrammarsLoad(t *testing.T) {
	t.Parallel()

	all := All()
	require.Len(t, all, 8)
	assert.Equal(t, C, all[0])

	for _, lang := range all {
		reg, err := DefaultRegistry(lang)
		require.NoError(t, err, lang)
		assert.Equal(t, string(lang), reg.Grammar().Name())
		assert.NoError(t, reg.Grammar().Check(), lang)
	}
}

func TestSet_ForPath(t *testing.T) {
	t.Parallel()

	set, err := NewSet(map[string]Language{"go": Go, ".RS": Rust, "py": Python, "pyi": Python})
	require.NoError(t, err)

	lang, reg, ok := set.ForPath("src/main.rs")
	require.True(t, ok)
	assert.Equal(t, Rust, lang)
	assert.Equal(t, "rust", reg.Grammar().Name())

	lang, _, ok = set.ForPath("cmd/tool/MAIN.GO")
	require.True(t, ok)
	assert.Equal(t, Go, lang)

	_, pyReg, ok := set.ForPath("a.py")
	require.True(t, ok)
	_, pyiReg, ok := set.ForPath("a.pyi")
	require.True(t, ok)
	assert.Same(t, pyReg, pyiReg)

	_, _, ok = set.ForPath("README.md")
	assert.False(t, ok)
	_, _, ok = set.ForPath("Makefile")
	assert.False(t, ok)

	assert.Equal(t, []string{".go", ".py", ".pyi", ".rs"}, set.Extensions())
}

func TestNewSet_UnknownLanguage(t *testing.T) {
	t.Parallel()

	_, err := NewSet(map[string]Language{"x": "klingon"})
	assert.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, map[string]Language{"go": Go, "rs": Rust}, DefaultExtensions())
}
