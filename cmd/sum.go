package cmd

import (
	"fmt"

	"github.com/TFMV/fstools/fstools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var sumCmd = &cobra.Command{
	Use:   "sum <file>...",
	Short: "Print xxhash64 checksums of files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			sum, err := fstools.Checksum(path)
			if err != nil {
				return err
			}
			if viper.GetString("format") == "json" {
				if err := printJSON(map[string]string{"path": path, "xxh64": fmt.Sprintf("%016x", sum)}); err != nil {
					return err
				}
				continue
			}
			fmt.Printf("%016x  %s\n", sum, path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sumCmd)
}
