package fstools

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// sandboxFiles maps regular files of the sandbox tree to their contents.
var sandboxFiles = map[string]string{
	"file":             "root",
	"foo/file":         "foo",
	"foo/bar/file":     "bar",
	"foo/bar/baz/file": "baz",
}

// sandboxLinks maps symlinks of the sandbox tree to their targets. The last one
// points back up the tree, so anything following links would never terminate.
var sandboxLinks = map[string]string{
	"link":             "foo",
	"foo/link":         "bar/baz",
	"foo/bar/link":     "baz",
	"foo/bar/baz/link": "..",
}

// newSandbox builds the tree below a fresh temporary directory and returns its root:
//
//	root/{file, link->foo, foo/{file, link->bar/baz, bar/{file, link->baz, baz/{file, link->..}}}}
func newSandbox(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "root")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "foo", "bar", "baz"), 0o755))

	for rel, content := range sandboxFiles {
		require.NoError(t, os.WriteFile(filepath.Join(root, rel), []byte(content), 0o644))
	}
	for rel, target := range sandboxLinks {
		require.NoError(t, os.Symlink(target, filepath.Join(root, rel)))
	}
	return root
}

func sandboxBytes() int64 {
	var n int64
	for _, content := range sandboxFiles {
		n += int64(len(content))
	}
	return n
}

// writeFile creates path with content, parents included.
func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
}

func isRoot() bool {
	return os.Geteuid() == 0
}
