package fstools

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
)

// Remove deletes path and, for directories, everything below it.
// It's a convenience wrapper around RemoveWithOptions.
func Remove(ctx context.Context, path string) error {
	return RemoveWithOptions(ctx, path, NewOptions())
}

// RemoveWithOptions deletes path recursively. A missing path is success, so the
// operation is idempotent. Non-directories, symlinks included, are unlinked
// without being followed. Directory children are removed concurrently and the
// directory itself only after all of them are gone.
//
// On failure the first error is returned; entries already deleted stay deleted.
func RemoveWithOptions(ctx context.Context, path string, opts Options) error {
	e, finish := newEngine(opts)
	defer finish()

	path = Clean(path)
	e.logger.Debug("starting remove", zap.String("path", path))
	return e.remove(ctx, path)
}

func (e *engine) remove(ctx context.Context, path string) error {
	st, err := e.probe(ctx, path)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}

	if st.IsDir() {
		names, err := e.readDir(ctx, path)
		if err != nil {
			return err
		}
		err = e.fanOut(ctx, names, func(ctx context.Context, name string) error {
			return e.remove(ctx, filepath.Join(path, name))
		})
		if err != nil {
			return err
		}
	}

	return e.unlink(ctx, path)
}

// unlink removes a single file, symlink or empty directory. An entry that
// vanished in the meantime counts as removed.
func (e *engine) unlink(ctx context.Context, path string) error {
	err := e.do(ctx, func() error {
		return os.Remove(path)
	})
	if err != nil && !isNotExist(err) {
		return err
	}
	atomic.AddInt64(&e.stats.EntriesRemoved, 1)
	return nil
}
