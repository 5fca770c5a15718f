package fstools

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// chdir changes the working directory to dir and restores it when the test
// finishes (stand-in for testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
