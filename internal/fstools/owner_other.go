//go:build !unix

package fstools

import (
	"errors"
	"io/fs"
)

var errNoOwnership = errors.New("ownership is not supported on this platform")

func ownerOf(fs.FileInfo) (uid, gid uint32, ok bool) {
	return 0, 0, false
}

func lchown(path string, _, _ uint32) error {
	return &fs.PathError{Op: "lchown", Path: path, Err: errNoOwnership}
}

func lchmod(path string, _ fs.FileMode) error {
	return &fs.PathError{Op: "lchmod", Path: path, Err: errors.ErrUnsupported}
}

func isCrossDevice(error) bool {
	return false
}
