package cmd

import (
	"fmt"
	"os"

	"github.com/TFMV/fstools/fstools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var duCmd = &cobra.Command{
	Use:   "du [path]...",
	Short: "Summarize entry counts and sizes",
	Long: `Du counts the files, directories, symlinks and other entries below each
path and sums the sizes of regular files. Symlinks are not followed.

Examples:
  fstools du
  fstools du --format=json /srv/data /srv/cache`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			wd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("error getting current directory: %w", err)
			}
			args = []string{wd}
		}

		for _, root := range args {
			s, err := fstools.Summarize(cmd.Context(), root)
			if err != nil {
				return err
			}
			if viper.GetString("format") == "json" {
				if err := printJSON(map[string]interface{}{
					"path":     root,
					"files":    s.Files,
					"dirs":     s.Dirs,
					"symlinks": s.Symlinks,
					"others":   s.Others,
					"bytes":    s.Bytes,
				}); err != nil {
					return err
				}
				continue
			}
			fmt.Printf("%s\t%d files\t%d dirs\t%d symlinks\t%d others\t%s\n",
				root, s.Files, s.Dirs, s.Symlinks, s.Others, formatSize(s.Bytes))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(duCmd)
}

// formatSize formats a byte count using binary units.
func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
