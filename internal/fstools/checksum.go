package fstools

import (
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Checksum returns the xxhash64 digest of the file at path.
func Checksum(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}
