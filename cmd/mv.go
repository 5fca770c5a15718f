package cmd

import (
	"github.com/TFMV/fstools/fstools"
	"github.com/spf13/cobra"
)

var mvCmd = &cobra.Command{
	Use:   "mv [options] <src> <dst>",
	Short: "Move a file or directory tree",
	Long: `Move renames src to dst, creating dst's parent first. When the two are on
different filesystems the tree is copied and the source removed afterwards.

Examples:
  fstools mv ./build /srv/releases/build-42`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := optionsFromConfig()
		if err != nil {
			return err
		}
		return fstools.MoveWithOptions(cmd.Context(), args[0], args[1], opts)
	},
}

func init() {
	rootCmd.AddCommand(mvCmd)
}
