package fstools

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
)

// VisitFunc is called once for every matching non-directory entry. The returned
// error is the entry's completion signal: nil on success, anything else aborts
// the enclosing traversal. VisitFunc is called concurrently and must be safe for
// concurrent use.
type VisitFunc func(ctx context.Context, path string, st EntryStat) error

// --------------------------------------------------------------------------
// Primary API functions
// --------------------------------------------------------------------------

// Walk traverses the tree rooted at root with default options.
// It's a convenience wrapper around WalkWithOptions.
func Walk(ctx context.Context, root string, match Matcher, visit VisitFunc) error {
	return WalkWithOptions(ctx, root, match, visit, NewOptions())
}

// WalkWithOptions lists root, probes every child concurrently and recurses into
// subdirectories. Matching non-directory entries are passed to visit; directories
// never are. Symlinks are reported, not followed, so link cycles terminate.
//
// A missing root is not an error and yields zero visits. A root that is not a
// directory is visited itself when it matches. The call returns once every
// subtree has completed, with nil or the first error observed.
func WalkWithOptions(ctx context.Context, root string, match Matcher, visit VisitFunc, opts Options) error {
	e, finish := newEngine(opts)
	defer finish()

	root = Clean(root)
	e.logger.Debug("starting walk", zap.String("root", root), zap.Int("concurrency", e.opts.Concurrency))

	err := e.walk(ctx, root, resolveMatcher(match), visit)
	if err != nil {
		e.logger.Debug("walk failed", zap.String("root", root), zap.Error(err))
	}
	return err
}

func (e *engine) walk(ctx context.Context, root string, match Matcher, visit VisitFunc) error {
	st, err := e.probe(ctx, root)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}
	if !st.IsDir() {
		return e.visit(ctx, root, st, match, visit)
	}
	return e.walkDir(ctx, root, match, visit)
}

// walkDir is one level of the traversal: a fan-out over dir's children where
// each subdirectory is itself a unit of work, so dir completes only after every
// descendant has.
func (e *engine) walkDir(ctx context.Context, dir string, match Matcher, visit VisitFunc) error {
	names, err := e.readDir(ctx, dir)
	if err != nil {
		return err
	}

	return e.fanOut(ctx, names, func(ctx context.Context, name string) error {
		path := filepath.Join(dir, name)
		st, err := e.probe(ctx, path)
		if err != nil {
			return err
		}
		if st.IsDir() {
			return e.walkDir(ctx, path, match, visit)
		}
		return e.visit(ctx, path, st, match, visit)
	})
}

func (e *engine) visit(ctx context.Context, path string, st EntryStat, match Matcher, visit VisitFunc) error {
	if !match.Match(path) {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	atomic.AddInt64(&e.stats.EntriesVisited, 1)
	return visit(ctx, path, st)
}
