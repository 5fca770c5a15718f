package fstools

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidTemplate is returned by TempPath when the template has no X run.
var ErrInvalidTemplate = errors.New("template must contain at least one X")

// DefaultTempTemplate is used when TempPath receives an empty template.
const DefaultTempTemplate = "fstools.XXXXXXXX"

// TempPath returns a fresh path built from template by replacing its first run
// of 'X' characters with random hex digits. An empty template yields a name in
// os.TempDir(). Nothing is created on disk.
func TempPath(template string) (string, error) {
	if template == "" {
		template = filepath.Join(os.TempDir(), DefaultTempTemplate)
	}

	start := strings.IndexByte(template, 'X')
	if start < 0 {
		return "", ErrInvalidTemplate
	}
	end := start
	for end < len(template) && template[end] == 'X' {
		end++
	}

	return template[:start] + randomHex(end-start) + template[end:], nil
}

func randomHex(n int) string {
	var b strings.Builder
	for b.Len() < n {
		id := uuid.New()
		b.WriteString(hex.EncodeToString(id[:]))
	}
	return b.String()[:n]
}
