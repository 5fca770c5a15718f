package fstools

import (
	"context"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/charlievieth/fastwalk"
)

// Summary holds aggregate counts for a tree.
type Summary struct {
	Files    int64
	Dirs     int64
	Symlinks int64
	Others   int64
	Bytes    int64
}

// Total returns the number of entries below the root.
func (s Summary) Total() int64 {
	return s.Files + s.Dirs + s.Symlinks + s.Others
}

// Summarize counts the entries under root without following symlinks. Bytes is
// the sum of regular file sizes. A directory root is not counted; a
// non-directory root counts as itself. A missing root yields a zero Summary.
func Summarize(ctx context.Context, root string) (Summary, error) {
	root = Clean(root)

	info, err := os.Lstat(root)
	if err != nil {
		if isNotExist(err) {
			return Summary{}, nil
		}
		return Summary{}, err
	}
	if !info.IsDir() {
		var s Summary
		s.add(info.Mode(), info.Size())
		return s, nil
	}

	var files, dirs, links, others, bytes int64
	conf := fastwalk.Config{Follow: false}
	err = fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if p == root {
			return nil
		}

		switch t := d.Type(); {
		case t.IsDir():
			atomic.AddInt64(&dirs, 1)
		case t&fs.ModeSymlink != 0:
			atomic.AddInt64(&links, 1)
		case t.IsRegular():
			atomic.AddInt64(&files, 1)
			fi, err := d.Info()
			if err != nil {
				return err
			}
			atomic.AddInt64(&bytes, fi.Size())
		default:
			atomic.AddInt64(&others, 1)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	return Summary{Files: files, Dirs: dirs, Symlinks: links, Others: others, Bytes: bytes}, nil
}

func (s *Summary) add(mode fs.FileMode, size int64) {
	switch kindOf(mode) {
	case KindFile:
		s.Files++
		s.Bytes += size
	case KindDir:
		s.Dirs++
	case KindSymlink:
		s.Symlinks++
	default:
		s.Others++
	}
}
