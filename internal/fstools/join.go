package fstools

import (
	"context"
	"errors"
	"io/fs"
	"sync/atomic"
	"time"

	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// engine carries the per-call state shared by every level of a recursive operation.
type engine struct {
	opts   Options
	sem    *semaphore.Weighted
	logger *zap.Logger
	stats  *Stats
	start  time.Time

	// chown is swapped out in tests to simulate missing privileges.
	chown func(path string, uid, gid uint32) error
}

// newEngine resolves defaults and returns the engine plus a function to call when
// the top-level operation finishes.
func newEngine(opts Options) (*engine, func()) {
	if opts.Concurrency < 1 {
		opts.Concurrency = DefaultConcurrency
	}

	logger := opts.Logger
	ownLogger := false
	if logger == nil {
		logger = NewLogger(opts.LogLevel)
		ownLogger = true
	}

	stats := opts.Stats
	if stats == nil {
		stats = &Stats{}
	}

	e := &engine{
		opts:   opts,
		sem:    semaphore.NewWeighted(int64(opts.Concurrency)),
		logger: logger,
		stats:  stats,
		start:  time.Now(),
		chown:  lchown,
	}

	stopProgress := startProgress(opts.Progress, stats, e.start)
	return e, func() {
		stopProgress()
		if ownLogger {
			_ = logger.Sync()
		}
	}
}

// do runs a single filesystem call under the concurrency limit. The slot is held
// only for the duration of fn, never while waiting on other units of work.
func (e *engine) do(ctx context.Context, fn func() error) error {
	if err := e.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer e.sem.Release(1)
	return fn()
}

// fanOut starts one unit of work per item and joins them. It returns nil when all
// units succeed, otherwise the first error observed; later errors are discarded.
// With CancelOnError the context handed to the units is cancelled at the first
// error so pending filesystem calls are not started.
func (e *engine) fanOut(ctx context.Context, items []string, fn func(ctx context.Context, item string) error) error {
	if len(items) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if !e.opts.CancelOnError {
		gctx = ctx
	}
	for _, item := range items {
		item := item
		g.Go(func() error {
			err := fn(gctx, item)
			if err != nil {
				atomic.AddInt64(&e.stats.ErrorCount, 1)
			}
			return err
		})
	}
	return g.Wait()
}

// probe is Probe under the concurrency limit.
func (e *engine) probe(ctx context.Context, path string) (EntryStat, error) {
	var st EntryStat
	err := e.do(ctx, func() error {
		var err error
		st, err = Probe(path)
		return err
	})
	return st, err
}

// readDir lists the names of dir's direct children.
func (e *engine) readDir(ctx context.Context, dir string) ([]string, error) {
	var names []string
	err := e.do(ctx, func() error {
		var err error
		names, err = godirwalk.ReadDirnames(dir, nil)
		return err
	})
	return names, err
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
