package fstools

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

var (
	// ErrUnsupportedType is returned when Copy meets a device, socket or fifo.
	ErrUnsupportedType = errors.New("unsupported source type")

	// ErrCopyIntoSelf is returned when the destination lies inside the source tree.
	ErrCopyIntoSelf = errors.New("cannot copy a directory into itself")

	// ErrVerifyMismatch is returned when a copied file does not read back identically.
	ErrVerifyMismatch = errors.New("copied content does not match source")
)

// Copy duplicates src at dst.
// It's a convenience wrapper around CopyWithOptions.
func Copy(ctx context.Context, src, dst string) error {
	return CopyWithOptions(ctx, src, dst, NewOptions())
}

// CopyWithOptions copies src to dst preserving entry kind and permission bits,
// and ownership on a best-effort basis when opts.PreserveOwner is set.
//
//   - Regular files are streamed; dst's parent is created first.
//   - Symlinks are recreated with the same target; an existing dst is removed first.
//   - Directories are created (an existing directory at dst is merged into) and
//     their children copied concurrently; permission bits are applied last.
//   - Anything else fails with ErrUnsupportedType.
//
// Copying a path onto itself is a no-op. On failure the first error is returned
// and dst may be partially populated.
func CopyWithOptions(ctx context.Context, src, dst string, opts Options) error {
	e, finish := newEngine(opts)
	defer finish()

	src, dst = Clean(src), Clean(dst)
	same, nested, err := overlap(src, dst)
	if err != nil {
		return err
	}
	if same {
		return nil
	}
	if nested {
		return &fs.PathError{Op: "copy", Path: dst, Err: ErrCopyIntoSelf}
	}

	e.logger.Debug("starting copy", zap.String("src", src), zap.String("dst", dst))
	return e.copy(ctx, src, dst)
}

func (e *engine) copy(ctx context.Context, src, dst string) error {
	st, err := e.probe(ctx, src)
	if err != nil {
		return err
	}

	switch st.Kind {
	case KindFile:
		return e.copyFile(ctx, st, dst)
	case KindSymlink:
		return e.copySymlink(ctx, st, dst)
	case KindDir:
		return e.copyDir(ctx, st, dst)
	default:
		return &fs.PathError{Op: "copy", Path: src, Err: ErrUnsupportedType}
	}
}

func (e *engine) copyFile(ctx context.Context, st EntryStat, dst string) error {
	if err := e.makeDirs(ctx, filepath.Dir(dst), DefaultDirMode); err != nil {
		return err
	}

	// A symlink at dst is replaced, never written through.
	existing, err := e.probe(ctx, dst)
	switch {
	case err == nil && existing.IsSymlink():
		if err := e.unlink(ctx, dst); err != nil {
			return err
		}
	case err != nil && !isNotExist(err):
		return err
	}

	var sum uint64
	err = e.do(ctx, func() error {
		var err error
		sum, err = streamFile(st.Path, dst, st.Perm(), e.opts.Verify, &e.stats.BytesCopied)
		return err
	})
	if err != nil {
		return err
	}

	if e.opts.Verify {
		var got uint64
		err := e.do(ctx, func() error {
			var err error
			got, err = Checksum(dst)
			return err
		})
		if err != nil {
			return err
		}
		if got != sum {
			return &fs.PathError{Op: "verify", Path: dst, Err: ErrVerifyMismatch}
		}
	}

	// chown may clear setuid/setgid, so ownership goes first.
	e.preserveOwner(ctx, st, dst)
	if err := e.do(ctx, func() error { return os.Chmod(dst, st.Perm()) }); err != nil {
		return err
	}
	atomic.AddInt64(&e.stats.FilesCopied, 1)
	return nil
}

// streamFile copies the bytes of src into dst, truncating dst if it exists.
// When hash is set the xxhash digest of the streamed bytes is returned.
func streamFile(src, dst string, perm fs.FileMode, hash bool, counter *int64) (uint64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm|0o200)
	if err != nil {
		return 0, err
	}

	var w io.Writer = out
	var digest *xxhash.Digest
	if hash {
		digest = xxhash.New()
		w = io.MultiWriter(out, digest)
	}

	n, err := io.Copy(w, in)
	atomic.AddInt64(counter, n)
	if err != nil {
		out.Close()
		return 0, fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return 0, err
	}
	if digest == nil {
		return 0, nil
	}
	return digest.Sum64(), nil
}

func (e *engine) copySymlink(ctx context.Context, st EntryStat, dst string) error {
	_, err := e.probe(ctx, dst)
	switch {
	case err == nil:
		if err := e.remove(ctx, dst); err != nil {
			return err
		}
	case !isNotExist(err):
		return err
	}

	if err := e.do(ctx, func() error { return os.Symlink(st.LinkTarget, dst) }); err != nil {
		return err
	}

	// Not every platform can chmod a link itself.
	if err := e.do(ctx, func() error { return lchmod(dst, st.Perm()) }); err != nil {
		e.logger.Debug("symlink mode not applied", zap.String("path", dst), zap.Error(err))
	}
	e.preserveOwner(ctx, st, dst)
	atomic.AddInt64(&e.stats.LinksCreated, 1)
	return nil
}

func (e *engine) copyDir(ctx context.Context, st EntryStat, dst string) error {
	if err := e.makeDirs(ctx, filepath.Dir(dst), DefaultDirMode); err != nil {
		return err
	}

	// Owner rwx while populating, so read-only sources can be copied.
	err := e.do(ctx, func() error { return os.Mkdir(dst, st.Perm()|0o700) })
	switch {
	case err == nil:
		atomic.AddInt64(&e.stats.DirsCreated, 1)
	case errors.Is(err, fs.ErrExist):
		existing, perr := e.probe(ctx, dst)
		if perr != nil {
			return perr
		}
		if !existing.IsDir() {
			return err
		}
	default:
		return err
	}

	names, err := e.readDir(ctx, st.Path)
	if err != nil {
		return err
	}
	err = e.fanOut(ctx, names, func(ctx context.Context, name string) error {
		child := filepath.Join(st.Path, name)
		return e.copy(ctx, child, rebase(st.Path, dst, child))
	})
	if err != nil {
		return err
	}

	e.preserveOwner(ctx, st, dst)
	return e.do(ctx, func() error { return os.Chmod(dst, st.Perm()) })
}

// preserveOwner copies uid/gid from st to dst. Failures, typically from running
// without the privilege to chown, are logged and counted but never fatal.
func (e *engine) preserveOwner(ctx context.Context, st EntryStat, dst string) {
	if !e.opts.PreserveOwner || !st.HasOwner {
		return
	}
	err := e.do(ctx, func() error { return e.chown(dst, st.UID, st.GID) })
	if err != nil {
		atomic.AddInt64(&e.stats.OwnershipSkipped, 1)
		e.logger.Debug("ownership not preserved",
			zap.String("path", dst),
			zap.Uint32("uid", st.UID),
			zap.Uint32("gid", st.GID),
			zap.Error(err),
		)
	}
}
