package fstools

import (
	"context"
	"sort"
	"sync"
)

// FindSorted walks root and returns every matching non-directory path in
// lexical order. A missing root yields an empty result.
func FindSorted(ctx context.Context, root string, match Matcher) ([]string, error) {
	return FindSortedWithOptions(ctx, root, match, NewOptions())
}

// FindSortedWithOptions is FindSorted with explicit options.
func FindSortedWithOptions(ctx context.Context, root string, match Matcher, opts Options) ([]string, error) {
	var mu sync.Mutex
	var paths []string

	err := WalkWithOptions(ctx, root, match, func(_ context.Context, path string, _ EntryStat) error {
		mu.Lock()
		paths = append(paths, path)
		mu.Unlock()
		return nil
	}, opts)
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}
