package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/TFMV/fstools/fstools"
	"github.com/spf13/cobra"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir [options] <path>...",
	Short: "Create directories and their parents",
	Long: `Mkdir creates each path with the requested mode, creating parents as
needed. Paths that already exist are left alone.

Examples:
  fstools mkdir /srv/data/a/b/c
  fstools mkdir --mode=0700 ~/.secrets/keys`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		modeStr, _ := cmd.Flags().GetString("mode")
		mode, err := parseMode(modeStr)
		if err != nil {
			return err
		}
		opts, err := optionsFromConfig()
		if err != nil {
			return err
		}

		sequential, _ := cmd.Flags().GetBool("sync")
		for _, path := range args {
			if sequential {
				err = fstools.MakeDirsSync(path, mode)
			} else {
				err = fstools.MakeDirsWithOptions(cmd.Context(), path, mode, opts)
			}
			if err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mkdirCmd)
	mkdirCmd.Flags().StringP("mode", "m", "0755", "Permission bits (octal)")
	mkdirCmd.Flags().Bool("sync", false, "Create sequentially")
}

// parseMode parses an octal permission string such as 0755.
func parseMode(s string) (os.FileMode, error) {
	perm, err := strconv.ParseUint(s, 8, 32)
	if err != nil || perm > 0o7777 {
		return 0, fmt.Errorf("invalid mode value: %s (should be octal, e.g. 0755)", s)
	}
	mode := os.FileMode(perm & 0o777)
	if perm&0o4000 != 0 {
		mode |= os.ModeSetuid
	}
	if perm&0o2000 != 0 {
		mode |= os.ModeSetgid
	}
	if perm&0o1000 != 0 {
		mode |= os.ModeSticky
	}
	return mode, nil
}
