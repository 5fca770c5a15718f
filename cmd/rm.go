package cmd

import (
	"fmt"
	"os"

	"github.com/TFMV/fstools/fstools"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm [options] <path>...",
	Short: "Remove files and directory trees",
	Long: `Remove deletes each path recursively. Missing paths are not an error.
Symlinks are removed, never followed.

Examples:
  fstools rm /tmp/build
  fstools rm --workers=16 /srv/cache/a /srv/cache/b`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromConfig()
		if err != nil {
			return err
		}
		stats := &fstools.Stats{}
		opts.Stats = stats

		sequential, _ := cmd.Flags().GetBool("sync")
		for _, path := range args {
			if sequential {
				err = fstools.RemoveSync(path)
			} else {
				err = fstools.RemoveWithOptions(cmd.Context(), path, opts)
			}
			if err != nil {
				return fmt.Errorf("remove %s: %w", path, err)
			}
		}

		if !quiet() && !sequential {
			fmt.Fprintf(os.Stderr, "Removed %d entries\n", stats.EntriesRemoved)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rmCmd.Flags().Bool("sync", false, "Remove sequentially")
}
