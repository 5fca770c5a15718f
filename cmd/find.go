package cmd

import (
	"fmt"

	"github.com/TFMV/fstools/fstools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var findCmd = &cobra.Command{
	Use:   "find [options] <path>",
	Short: "Find entries and print them in sorted order",
	Long: `Find walks a tree concurrently and prints the matching non-directory
paths once the walk has completed, sorted lexically.

Examples:
  fstools find /path/to/search --glob="**/*.go"
  fstools find /path/to/search --regex=".*\\.txt$"
  fstools find /path/to/search --suffix=.log --count`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFind(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	addMatchFlags(findCmd)
	findCmd.Flags().BoolP("count", "c", false, "Print only the number of matches")
}

func runFind(cmd *cobra.Command, root string) error {
	opts, err := optionsFromConfig()
	if err != nil {
		return err
	}
	match, err := matcherFromFlags(cmd, root)
	if err != nil {
		return err
	}

	paths, err := fstools.FindSortedWithOptions(cmd.Context(), root, match, opts)
	if err != nil {
		return err
	}

	count, _ := cmd.Flags().GetBool("count")
	switch {
	case viper.GetString("format") == "json" && count:
		return printJSON(map[string]int{"count": len(paths)})
	case viper.GetString("format") == "json":
		return printJSON(paths)
	case count:
		fmt.Println(len(paths))
	default:
		for _, p := range paths {
			fmt.Println(p)
		}
	}
	return nil
}
