package fstools

import (
	"io/fs"
	"os"
	"time"
)

// Kind classifies a filesystem entry.
type Kind int

const (
	KindOther Kind = iota // Devices, sockets, fifos
	KindFile
	KindDir
	KindSymlink
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// kindOf maps a file mode to its Kind.
func kindOf(mode fs.FileMode) Kind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

// EntryStat is a snapshot of an entry's metadata at lookup time. Two probes of the
// same path may disagree if the filesystem changed in between.
type EntryStat struct {
	Path       string
	Kind       Kind
	Mode       fs.FileMode // Full mode, including type bits
	UID        uint32
	GID        uint32
	HasOwner   bool // UID and GID are meaningful
	Size       int64
	ModTime    time.Time
	LinkTarget string // Set for symlinks only
}

// Perm returns the permission bits, including setuid, setgid and sticky.
func (s EntryStat) Perm() fs.FileMode {
	return s.Mode & (fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky)
}

func (s EntryStat) IsDir() bool     { return s.Kind == KindDir }
func (s EntryStat) IsRegular() bool { return s.Kind == KindFile }
func (s EntryStat) IsSymlink() bool { return s.Kind == KindSymlink }

// Probe returns the metadata of path without following a trailing symlink.
// For symlinks the link target is read as well.
func Probe(path string) (EntryStat, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return EntryStat{}, err
	}
	st := statFromInfo(path, info)
	if st.Kind == KindSymlink {
		target, err := os.Readlink(path)
		if err != nil {
			return EntryStat{}, err
		}
		st.LinkTarget = target
	}
	return st, nil
}

// ProbeFollow is like Probe but follows symlinks.
func ProbeFollow(path string) (EntryStat, error) {
	info, err := os.Stat(path)
	if err != nil {
		return EntryStat{}, err
	}
	return statFromInfo(path, info), nil
}

func statFromInfo(path string, info fs.FileInfo) EntryStat {
	st := EntryStat{
		Path:    path,
		Kind:    kindOf(info.Mode()),
		Mode:    info.Mode(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	st.UID, st.GID, st.HasOwner = ownerOf(info)
	return st
}
