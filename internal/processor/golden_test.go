package processor

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/code-digest/internal/files"
)

// Test Plan for golden output:
// - testdata/sample renders, tree first, exactly as testdata/sample.golden

func TestRun_Golden(t *testing.T) {
	t.Parallel()

	want, err := os.ReadFile("testdata/sample.golden")
	require.NoError(t, err)

	p := newTestProcessor(t, []string{"**/*.md"}, nil, nil)
	w, err := files.NewWalker("testdata/sample", nil, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = p.Run(context.Background(), &buf, w, true)
	require.NoError(t, err)

	assert.Equal(t, string(want), buf.String())
}
