package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/TFMV/fstools/fstools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var walkCmd = &cobra.Command{
	Use:   "walk [options] <path>",
	Short: "List every non-directory entry below a path",
	Long: `Walk lists a directory tree concurrently and prints every file, symlink
and special entry it finds. Directories are traversed but not printed and
symlinks are never followed.

Examples:
  fstools walk /path/to/tree
  fstools walk --glob="**/*.go" /path/to/tree
  fstools walk --format=json --workers=8 /path/to/tree`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWalk(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(walkCmd)
	addMatchFlags(walkCmd)
	walkCmd.Flags().Bool("sync", false, "Walk sequentially in lexical order")
}

func runWalk(cmd *cobra.Command, root string) error {
	opts, err := optionsFromConfig()
	if err != nil {
		return err
	}
	match, err := matcherFromFlags(cmd, root)
	if err != nil {
		return err
	}

	defer opts.Logger.Sync()

	var mu sync.Mutex
	emit := func(path string, st fstools.EntryStat) error {
		mu.Lock()
		defer mu.Unlock()
		if viper.GetString("format") == "json" {
			return printJSON(map[string]interface{}{
				"path":          path,
				"kind":          st.Kind.String(),
				"size":          st.Size,
				"mode":          st.Mode.String(),
				"last_modified": st.ModTime.Format(time.RFC3339),
				"link_target":   st.LinkTarget,
			})
		}
		if !quiet() && !viper.GetBool("progress") {
			relPath, _ := filepath.Rel(root, path)
			fmt.Printf("%s (%d bytes)\n", relPath, st.Size)
		}
		return nil
	}

	if sequential, _ := cmd.Flags().GetBool("sync"); sequential {
		return fstools.WalkSync(root, match, emit)
	}

	visit := fstools.LoggingVisitor(opts.Logger, func(_ context.Context, path string, st fstools.EntryStat) error {
		return emit(path, st)
	})
	return fstools.WalkWithOptions(cmd.Context(), root, match, visit, opts)
}
