package fstools

import (
	"context"
	"io/fs"
	"time"

	internal "github.com/TFMV/fstools/internal/fstools"
	"go.uber.org/zap"
)

// Re-export the types of the internal package
type (
	// Options configures a single operation.
	Options = internal.Options

	// Stats holds operation counters that are updated atomically while work runs.
	Stats = internal.Stats

	// ProgressFn is called periodically with operation statistics.
	ProgressFn = internal.ProgressFn

	// LogLevel defines the verbosity of logging.
	LogLevel = internal.LogLevel

	// EntryStat is a snapshot of an entry's metadata.
	EntryStat = internal.EntryStat

	// Kind classifies a filesystem entry.
	Kind = internal.Kind

	// Matcher decides whether a non-directory entry is visited.
	Matcher = internal.Matcher

	// MatchFunc adapts a predicate to a Matcher.
	MatchFunc = internal.MatchFunc

	// VisitFunc is called for every matching non-directory entry.
	VisitFunc = internal.VisitFunc

	// SyncVisitFunc is the visitor of WalkSync.
	SyncVisitFunc = internal.SyncVisitFunc

	// Summary holds aggregate counts for a tree.
	Summary = internal.Summary
)

const (
	KindOther   = internal.KindOther
	KindFile    = internal.KindFile
	KindDir     = internal.KindDir
	KindSymlink = internal.KindSymlink

	LogLevelError = internal.LogLevelError
	LogLevelWarn  = internal.LogLevelWarn
	LogLevelInfo  = internal.LogLevelInfo
	LogLevelDebug = internal.LogLevelDebug

	DefaultConcurrency  = internal.DefaultConcurrency
	DefaultTempTemplate = internal.DefaultTempTemplate
)

var (
	ErrUnsupportedType = internal.ErrUnsupportedType
	ErrCopyIntoSelf    = internal.ErrCopyIntoSelf
	ErrVerifyMismatch  = internal.ErrVerifyMismatch
	ErrInvalidTemplate = internal.ErrInvalidTemplate
)

// NewOptions returns Options with default values: DefaultConcurrency, cancel on
// first error and best-effort ownership preservation.
func NewOptions() Options {
	return internal.NewOptions()
}

// NewLogger creates a zap logger for the given level, the same one operations
// build when Options.Logger is nil.
func NewLogger(level LogLevel) *zap.Logger {
	return internal.NewLogger(level)
}

// Walk visits every matching non-directory entry below root concurrently.
func Walk(ctx context.Context, root string, match Matcher, visit VisitFunc) error {
	return internal.Walk(ctx, root, match, visit)
}

// WalkWithOptions is Walk with explicit options.
func WalkWithOptions(ctx context.Context, root string, match Matcher, visit VisitFunc, opts Options) error {
	return internal.WalkWithOptions(ctx, root, match, visit, opts)
}

// WalkSync is the blocking counterpart of Walk.
func WalkSync(root string, match Matcher, visit SyncVisitFunc) error {
	return internal.WalkSync(root, match, visit)
}

// Remove deletes path recursively. A missing path is success.
func Remove(ctx context.Context, path string) error {
	return internal.Remove(ctx, path)
}

// RemoveWithOptions is Remove with explicit options.
func RemoveWithOptions(ctx context.Context, path string, opts Options) error {
	return internal.RemoveWithOptions(ctx, path, opts)
}

// RemoveSync is the blocking counterpart of Remove.
func RemoveSync(path string) error {
	return internal.RemoveSync(path)
}

// Copy duplicates src at dst preserving kind, permission bits and, best effort, ownership.
func Copy(ctx context.Context, src, dst string) error {
	return internal.Copy(ctx, src, dst)
}

// CopyWithOptions is Copy with explicit options.
func CopyWithOptions(ctx context.Context, src, dst string, opts Options) error {
	return internal.CopyWithOptions(ctx, src, dst, opts)
}

// Move renames src to dst, falling back to copy and remove across filesystems.
func Move(ctx context.Context, src, dst string) error {
	return internal.Move(ctx, src, dst)
}

// MoveWithOptions is Move with explicit options.
func MoveWithOptions(ctx context.Context, src, dst string, opts Options) error {
	return internal.MoveWithOptions(ctx, src, dst, opts)
}

// MakeDirs creates path and any missing parents. An existing path is success.
func MakeDirs(ctx context.Context, path string, mode fs.FileMode) error {
	return internal.MakeDirs(ctx, path, mode)
}

// MakeDirsWithOptions is MakeDirs with explicit options.
func MakeDirsWithOptions(ctx context.Context, path string, mode fs.FileMode, opts Options) error {
	return internal.MakeDirsWithOptions(ctx, path, mode, opts)
}

// MakeDirsSync is the blocking counterpart of MakeDirs.
func MakeDirsSync(path string, mode fs.FileMode) error {
	return internal.MakeDirsSync(path, mode)
}

// FindSorted returns every matching non-directory path below root in lexical order.
func FindSorted(ctx context.Context, root string, match Matcher) ([]string, error) {
	return internal.FindSorted(ctx, root, match)
}

// FindSortedWithOptions is FindSorted with explicit options.
func FindSortedWithOptions(ctx context.Context, root string, match Matcher, opts Options) ([]string, error) {
	return internal.FindSortedWithOptions(ctx, root, match, opts)
}

// Summarize counts the entries under root.
func Summarize(ctx context.Context, root string) (Summary, error) {
	return internal.Summarize(ctx, root)
}

// TempPath returns a fresh path built from template. Nothing is created.
func TempPath(template string) (string, error) {
	return internal.TempPath(template)
}

// Checksum returns the xxhash64 digest of a file.
func Checksum(path string) (uint64, error) {
	return internal.Checksum(path)
}

// Probe returns the metadata of path without following a trailing symlink.
func Probe(path string) (EntryStat, error) {
	return internal.Probe(path)
}

// Clean normalizes a path.
func Clean(path string) string {
	return internal.Clean(path)
}

// MatchAll returns a Matcher that accepts every path.
func MatchAll() Matcher { return internal.MatchAll() }

// Regexp compiles a regular expression into a Matcher.
func Regexp(pattern string) (Matcher, error) { return internal.Regexp(pattern) }

// MustRegexp is like Regexp but panics on an invalid pattern.
func MustRegexp(pattern string) Matcher { return internal.MustRegexp(pattern) }

// Glob compiles a doublestar glob pattern into a Matcher.
func Glob(pattern string) (Matcher, error) { return internal.Glob(pattern) }

// Suffix returns a Matcher accepting paths that end with suffix.
func Suffix(suffix string) Matcher { return internal.Suffix(suffix) }

// LoggingVisitor wraps next so every visit is logged at debug level and every
// failure at error level.
func LoggingVisitor(logger *zap.Logger, next VisitFunc) VisitFunc {
	return func(ctx context.Context, path string, st EntryStat) error {
		logger.Debug("Processing entry",
			zap.String("path", path),
			zap.Stringer("kind", st.Kind),
			zap.Int64("size", st.Size),
			zap.Time("modified", st.ModTime),
		)
		err := next(ctx, path, st)
		if err != nil {
			logger.Error("Error processing entry",
				zap.String("path", path),
				zap.Error(err),
			)
		}
		return err
	}
}

// TimingVisitor wraps next and logs visits that take longer than threshold.
func TimingVisitor(logger *zap.Logger, threshold time.Duration, next VisitFunc) VisitFunc {
	return func(ctx context.Context, path string, st EntryStat) error {
		start := time.Now()
		err := next(ctx, path, st)
		if d := time.Since(start); d > threshold {
			logger.Warn("Slow visit", zap.String("path", path), zap.Duration("duration", d))
		}
		return err
	}
}
