package fstools

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
)

// MakeDirs creates path and any missing parents.
// It's a convenience wrapper around MakeDirsWithOptions.
func MakeDirs(ctx context.Context, path string, mode fs.FileMode) error {
	return MakeDirsWithOptions(ctx, path, mode, NewOptions())
}

// MakeDirsWithOptions creates path with mode, parents first. An existing path of
// any kind is success and nothing is changed. If another actor creates the
// directory between the existence check and the mkdir call, the resulting
// "already exists" failure is treated as success.
//
// The requested bits are applied with an explicit chmod so the umask does not
// reduce them. Missing parents get mode plus owner write and search permission
// so the chain below them can still be created.
func MakeDirsWithOptions(ctx context.Context, path string, mode fs.FileMode, opts Options) error {
	e, finish := newEngine(opts)
	defer finish()

	path = Clean(path)
	e.logger.Debug("starting mkdir", zap.String("path", path), zap.Stringer("mode", mode))
	return e.makeDirs(ctx, path, mode)
}

func (e *engine) makeDirs(ctx context.Context, path string, mode fs.FileMode) error {
	return makeDirs(path, mode, func(fn func() error) error {
		return e.do(ctx, fn)
	}, func() {
		atomic.AddInt64(&e.stats.DirsCreated, 1)
	})
}

// makeDirs holds the policy shared by the concurrent and synchronous variants.
// run executes one filesystem call; created is invoked per directory made.
func makeDirs(path string, mode fs.FileMode, run func(func() error) error, created func()) error {
	err := run(func() error {
		_, err := os.Lstat(path)
		return err
	})
	if err == nil {
		return nil
	}
	if !isNotExist(err) {
		return err
	}

	parent := filepath.Dir(path)
	if parent != path {
		if err := makeDirs(parent, mode|0o300, run, created); err != nil {
			return err
		}
	}

	err = run(func() error {
		return os.Mkdir(path, mode.Perm())
	})
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	created()

	return run(func() error {
		return os.Chmod(path, mode)
	})
}
