package fstools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	root := newSandbox(t)

	s, err := Summarize(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, Summary{
		Files:    4,
		Dirs:     3,
		Symlinks: 4,
		Bytes:    sandboxBytes(),
	}, s)
	assert.EqualValues(t, 11, s.Total())
}

func TestSummarizeMissingRoot(t *testing.T) {
	s, err := Summarize(context.Background(), filepath.Join(t.TempDir(), "missing"))

	require.NoError(t, err)
	assert.Zero(t, s)
}

func TestSummarizeFileRoot(t *testing.T) {
	root := newSandbox(t)

	s, err := Summarize(context.Background(), filepath.Join(root, "foo", "file"))
	require.NoError(t, err)

	assert.Equal(t, Summary{Files: 1, Bytes: 3}, s)
}

func TestSummarizeRootCounting(t *testing.T) {
	root := newSandbox(t)

	empty := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))
	s, err := Summarize(context.Background(), empty)
	require.NoError(t, err)
	assert.Zero(t, s, "a directory root is not counted")

	s, err = Summarize(context.Background(), filepath.Join(root, "link"))
	require.NoError(t, err)
	assert.Equal(t, Summary{Symlinks: 1}, s, "a symlink root counts as itself")
}

func TestSummarizeCancelled(t *testing.T) {
	root := newSandbox(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Summarize(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
