package fstools

import (
	"io/fs"
	"os"

	"github.com/karrick/godirwalk"
)

// SyncVisitFunc is the visitor of WalkSync.
type SyncVisitFunc func(path string, st EntryStat) error

// WalkSync is the blocking, single-goroutine counterpart of Walk. Entries are
// visited in lexical order, one filesystem call at a time. The tree shape, the
// missing-root rule and the error policy are the same as Walk's.
func WalkSync(root string, match Matcher, visit SyncVisitFunc) error {
	root = Clean(root)
	match = resolveMatcher(match)

	st, err := Probe(root)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}
	if !st.IsDir() {
		if !match.Match(root) {
			return nil
		}
		return visit(root, st)
	}

	return godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() || !match.Match(path) {
				return nil
			}
			st, err := Probe(path)
			if err != nil {
				return err
			}
			return visit(path, st)
		},
	})
}

// RemoveSync is the blocking counterpart of Remove. Directories are deleted after
// their children through godirwalk's post-children callback.
func RemoveSync(path string) error {
	path = Clean(path)

	info, err := os.Lstat(path)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return removeIfExists(path)
	}

	return godirwalk.Walk(path, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}
			return removeIfExists(path)
		},
		PostChildrenCallback: func(path string, _ *godirwalk.Dirent) error {
			return removeIfExists(path)
		},
	})
}

// MakeDirsSync is the blocking counterpart of MakeDirs with the same policy.
func MakeDirsSync(path string, mode fs.FileMode) error {
	return makeDirs(Clean(path), mode, func(fn func() error) error { return fn() }, func() {})
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !isNotExist(err) {
		return err
	}
	return nil
}
