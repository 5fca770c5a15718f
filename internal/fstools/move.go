package fstools

import (
	"context"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Move renames src to dst with default options.
func Move(ctx context.Context, src, dst string) error {
	return MoveWithOptions(ctx, src, dst, NewOptions())
}

// MoveWithOptions renames src to dst, creating dst's parent first. When src and
// dst live on different filesystems the tree is copied and then the source removed.
// A failure during that fallback can leave both trees partially populated.
func MoveWithOptions(ctx context.Context, src, dst string, opts Options) error {
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
		return &os.PathError{Op: "move", Path: dst, Err: ErrCopyIntoSelf}
	}

	if _, err := e.probe(ctx, src); err != nil {
		return err
	}
	if err := e.makeDirs(ctx, filepath.Dir(dst), DefaultDirMode); err != nil {
		return err
	}

	err = e.do(ctx, func() error { return os.Rename(src, dst) })
	if err == nil || !isCrossDevice(err) {
		return err
	}

	e.logger.Debug("rename crosses devices, copying instead", zap.String("src", src), zap.String("dst", dst))
	if err := e.copy(ctx, src, dst); err != nil {
		return err
	}
	return e.remove(ctx, src)
}
