package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/TFMV/fstools/fstools"
	"github.com/spf13/cobra"
)

// addMatchFlags registers the entry selection flags shared by walk and find.
func addMatchFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("glob", "g", "", "Match paths relative to the root with a glob (supports **)")
	cmd.Flags().StringP("regex", "r", "", "Match full paths with a regular expression")
	cmd.Flags().StringP("suffix", "s", "", "Match paths ending with this suffix")
}

// matcherFromFlags combines the selection flags; an entry must satisfy all of them.
func matcherFromFlags(cmd *cobra.Command, root string) (fstools.Matcher, error) {
	var matchers []fstools.Matcher

	if pattern, _ := cmd.Flags().GetString("glob"); pattern != "" {
		m, err := fstools.Glob(pattern)
		if err != nil {
			return nil, err
		}
		root = fstools.Clean(root)
		matchers = append(matchers, fstools.MatchFunc(func(path string) bool {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return false
			}
			if rel == "." {
				rel = filepath.Base(path)
			}
			return m.Match(rel)
		}))
	}

	if pattern, _ := cmd.Flags().GetString("regex"); pattern != "" {
		m, err := fstools.Regexp(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern: %w", err)
		}
		matchers = append(matchers, m)
	}

	if suffix, _ := cmd.Flags().GetString("suffix"); suffix != "" {
		matchers = append(matchers, fstools.Suffix(suffix))
	}

	switch len(matchers) {
	case 0:
		return fstools.MatchAll(), nil
	case 1:
		return matchers[0], nil
	}
	return fstools.MatchFunc(func(path string) bool {
		for _, m := range matchers {
			if !m.Match(path) {
				return false
			}
		}
		return true
	}), nil
}
