package fstools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyTree(t *testing.T) {
	src := newSandbox(t)
	require.NoError(t, os.Chmod(filepath.Join(src, "foo", "file"), 0o640))
	require.NoError(t, os.Chmod(filepath.Join(src, "foo", "bar"), 0o750))

	dst := filepath.Join(t.TempDir(), "copy")
	stats := &Stats{}
	opts := NewOptions()
	opts.Stats = stats

	require.NoError(t, CopyWithOptions(context.Background(), src, dst, opts))

	for rel, content := range sandboxFiles {
		got, err := os.ReadFile(filepath.Join(dst, rel))
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	}
	for rel, target := range sandboxLinks {
		got, err := os.Readlink(filepath.Join(dst, rel))
		require.NoError(t, err, rel)
		assert.Equal(t, target, got)
	}

	info, err := os.Stat(filepath.Join(dst, "foo", "file"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(dst, "foo", "bar"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o750), info.Mode().Perm())

	assert.EqualValues(t, 4, stats.FilesCopied)
	assert.EqualValues(t, 4, stats.LinksCreated)
	assert.EqualValues(t, 4, stats.DirsCreated)
	assert.EqualValues(t, sandboxBytes(), stats.BytesCopied)
}

func TestCopyMergesIntoExistingDirectory(t *testing.T) {
	src := newSandbox(t)
	dst := filepath.Join(t.TempDir(), "copy")
	writeFile(t, filepath.Join(dst, "extra"), "extra", 0o644)
	writeFile(t, filepath.Join(dst, "file"), "stale contents", 0o644)

	require.NoError(t, Copy(context.Background(), src, dst))

	assert.FileExists(t, filepath.Join(dst, "extra"))
	got, err := os.ReadFile(filepath.Join(dst, "file"))
	require.NoError(t, err)
	assert.Equal(t, "root", string(got))
}

func TestCopyReplacesExistingLink(t *testing.T) {
	src := newSandbox(t)
	dst := filepath.Join(t.TempDir(), "link")
	writeFile(t, dst, "in the way", 0o644)

	require.NoError(t, Copy(context.Background(), filepath.Join(src, "link"), dst))

	target, err := os.Readlink(dst)
	require.NoError(t, err)
	assert.Equal(t, "foo", target)
}

func TestCopyFileCreatesParents(t *testing.T) {
	src := newSandbox(t)
	dst := filepath.Join(t.TempDir(), "deep", "er", "file")

	require.NoError(t, Copy(context.Background(), filepath.Join(src, "foo", "bar", "file"), dst))

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "bar", string(got))
}

func TestCopySamePathIsNoop(t *testing.T) {
	src := newSandbox(t)

	require.NoError(t, Copy(context.Background(), src, src+string(os.PathSeparator)))
	require.NoError(t, Copy(context.Background(), filepath.Join(src, "file"), filepath.Join(src, ".", "file")))

	got, err := os.ReadFile(filepath.Join(src, "file"))
	require.NoError(t, err)
	assert.Equal(t, "root", string(got))
}

func TestCopyIntoItself(t *testing.T) {
	src := newSandbox(t)

	err := Copy(context.Background(), src, filepath.Join(src, "foo", "inner"))

	assert.ErrorIs(t, err, ErrCopyIntoSelf)
	assert.NoDirExists(t, filepath.Join(src, "foo", "inner"))
}

func TestCopyIntoItselfRelativeSource(t *testing.T) {
	src := newSandbox(t)
	chdir(t, filepath.Dir(src))
	inner := filepath.Join(src, "foo", "inner")

	err := Copy(context.Background(), filepath.Base(src), inner)

	assert.ErrorIs(t, err, ErrCopyIntoSelf)
	assert.NoDirExists(t, inner)
}

func TestCopySamePathRelativeAndAbsolute(t *testing.T) {
	src := newSandbox(t)
	chdir(t, src)
	stats := &Stats{}

	opts := NewOptions()
	opts.Stats = stats
	require.NoError(t, CopyWithOptions(context.Background(), ".", src, opts))

	assert.Zero(t, stats.FilesCopied)
	assert.Zero(t, stats.DirsCreated)
}

func TestCopyFileReplacesDestinationLink(t *testing.T) {
	src := newSandbox(t)
	outside := filepath.Join(t.TempDir(), "outside")
	writeFile(t, outside, "keep me", 0o644)

	dst := filepath.Join(t.TempDir(), "dst")
	require.NoError(t, os.Symlink(outside, dst))

	require.NoError(t, Copy(context.Background(), filepath.Join(src, "foo", "file"), dst))

	got, err := os.ReadFile(outside)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(got))

	st, err := Probe(dst)
	require.NoError(t, err)
	assert.Equal(t, KindFile, st.Kind)
	got, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "foo", string(got))
}

func TestCopyMissingSource(t *testing.T) {
	dir := t.TempDir()

	err := Copy(context.Background(), filepath.Join(dir, "missing"), filepath.Join(dir, "dst"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopyReadOnlySource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "ro")
	writeFile(t, filepath.Join(src, "sub", "file"), "data", 0o444)
	require.NoError(t, os.Chmod(filepath.Join(src, "sub"), 0o555))
	t.Cleanup(func() { _ = os.Chmod(filepath.Join(src, "sub"), 0o755) })

	dst := filepath.Join(t.TempDir(), "copy")
	t.Cleanup(func() { _ = os.Chmod(filepath.Join(dst, "sub"), 0o755) })

	require.NoError(t, Copy(context.Background(), src, dst))

	info, err := os.Stat(filepath.Join(dst, "sub"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o555), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(dst, "sub", "file"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o444), info.Mode().Perm())
}

func TestCopyVerify(t *testing.T) {
	src := newSandbox(t)
	dst := filepath.Join(t.TempDir(), "copy")

	opts := NewOptions()
	opts.Verify = true
	require.NoError(t, CopyWithOptions(context.Background(), src, dst, opts))

	for rel := range sandboxFiles {
		want, err := Checksum(filepath.Join(src, rel))
		require.NoError(t, err)
		got, err := Checksum(filepath.Join(dst, rel))
		require.NoError(t, err)
		assert.Equal(t, want, got, rel)
	}
}
