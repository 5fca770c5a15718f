package fstools

import (
	"os"
	"path/filepath"
	"strings"
)

// Clean normalizes a path: redundant separators, "." elements and trailing
// separators are removed so prefix comparisons are reliable.
func Clean(path string) string {
	return filepath.Clean(path)
}

// rebase maps child, a path under src, to the corresponding path under dst.
// All three are expected to be cleaned.
func rebase(src, dst, child string) string {
	return dst + strings.TrimPrefix(child, src)
}

// overlap resolves src and dst against the working directory and reports whether
// they name the same location or dst lies strictly below src.
func overlap(src, dst string) (same, nested bool, err error) {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return false, false, err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return false, false, err
	}
	return absSrc == absDst, within(absSrc, absDst), nil
}

// within reports whether path lies strictly below dir.
func within(dir, path string) bool {
	if dir == string(os.PathSeparator) {
		return path != dir && strings.HasPrefix(path, dir)
	}
	return strings.HasPrefix(path, dir+string(os.PathSeparator))
}
