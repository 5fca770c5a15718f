package cmd

import (
	"fmt"

	"github.com/TFMV/fstools/fstools"
	"github.com/spf13/cobra"
)

var tmpCmd = &cobra.Command{
	Use:   "tmp [template]",
	Short: "Print a fresh temporary path",
	Long: `Tmp prints a path built from template by replacing its first run of X
characters with random hex digits. Nothing is created. Without a template the
path is placed in the system temporary directory.

Examples:
  fstools tmp
  fstools tmp /var/tmp/build-XXXXXX`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		template := ""
		if len(args) == 1 {
			template = args[0]
		}
		path, err := fstools.TempPath(template)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tmpCmd)
}
