// Package fstools provides concurrent bulk filesystem operations: recursive walking,
// removal, copying with metadata preservation and idempotent directory creation.
//
// None of the mutating operations are transactional. When Remove, Copy or Move fail,
// the first error is returned and the target tree is left in whatever partial state the
// already completed filesystem calls produced.
package fstools

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultConcurrency defines the default number of filesystem calls allowed in flight
// when no specific limit is provided.
const DefaultConcurrency int = 100

// DefaultDirMode is used for parent directories created on behalf of a copy or move.
const DefaultDirMode = 0o755

// progressInterval is how often Options.Progress is invoked while an operation runs.
const progressInterval = 500 * time.Millisecond

// --------------------------------------------------------------------------
// Core types for progress monitoring
// --------------------------------------------------------------------------

// ProgressFn is called periodically with operation statistics.
// Implementations must be thread-safe as this may be called concurrently.
type ProgressFn func(stats Stats)

// Stats holds operation statistics that are updated atomically while work runs.
type Stats struct {
	EntriesVisited   int64         // Non-directory entries handed to a visitor
	FilesCopied      int64         // Regular files copied
	DirsCreated      int64         // Directories created by Copy or MakeDirs
	LinksCreated     int64         // Symbolic links created by Copy
	EntriesRemoved   int64         // Files, links and directories removed
	BytesCopied      int64         // Total bytes streamed by Copy
	OwnershipSkipped int64         // Entries whose uid/gid could not be preserved
	ErrorCount       int64         // Errors observed, including discarded ones
	ElapsedTime      time.Duration // Total time elapsed
	SpeedMBPerSec    float64       // Copy throughput in MB/s
}

// snapshot returns a consistent copy of the counters with derived fields filled in.
func (s *Stats) snapshot(start time.Time) Stats {
	out := Stats{
		EntriesVisited:   atomic.LoadInt64(&s.EntriesVisited),
		FilesCopied:      atomic.LoadInt64(&s.FilesCopied),
		DirsCreated:      atomic.LoadInt64(&s.DirsCreated),
		LinksCreated:     atomic.LoadInt64(&s.LinksCreated),
		EntriesRemoved:   atomic.LoadInt64(&s.EntriesRemoved),
		BytesCopied:      atomic.LoadInt64(&s.BytesCopied),
		OwnershipSkipped: atomic.LoadInt64(&s.OwnershipSkipped),
		ErrorCount:       atomic.LoadInt64(&s.ErrorCount),
		ElapsedTime:      time.Since(start),
	}
	out.updateDerivedStats()
	return out
}

// updateDerivedStats calculates derived statistics like speeds.
func (s *Stats) updateDerivedStats() {
	elapsedSec := s.ElapsedTime.Seconds()
	if elapsedSec > 0 && s.BytesCopied > 0 {
		megabytes := float64(s.BytesCopied) / (1024.0 * 1024.0)
		s.SpeedMBPerSec = megabytes / elapsedSec
	} else {
		s.SpeedMBPerSec = 0
	}
}

// --------------------------------------------------------------------------
// Configuration types
// --------------------------------------------------------------------------

// LogLevel defines the verbosity of logging.
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Options configures a single operation. The zero value is usable but disables
// ownership preservation; use NewOptions for the documented defaults.
type Options struct {
	// Concurrency bounds the number of filesystem calls in flight.
	// Values below one mean DefaultConcurrency.
	Concurrency int

	// CancelOnError stops siblings from issuing further filesystem calls once the
	// first error of a fan-out is recorded. When false, siblings drain and their
	// outcomes are discarded.
	CancelOnError bool

	// PreserveOwner copies uid/gid on a best-effort basis.
	PreserveOwner bool

	// Verify re-reads every copied file and compares xxhash digests.
	Verify bool

	Logger   *zap.Logger
	LogLevel LogLevel

	// Progress, when set, is called every 500ms and once when the operation ends.
	Progress ProgressFn

	// Stats, when set, receives the counters of the operation. It may be shared
	// between operations to accumulate totals.
	Stats *Stats
}

// NewOptions returns Options with default values.
func NewOptions() Options {
	return Options{
		Concurrency:   DefaultConcurrency,
		CancelOnError: true,
		PreserveOwner: true,
		LogLevel:      LogLevelError,
	}
}

// NewLogger creates a zap logger with the specified log level. Operations build
// one with it when Options.Logger is nil.
func NewLogger(level LogLevel) *zap.Logger {
	var config zap.Config

	switch level {
	case LogLevelError:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	case LogLevelWarn:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case LogLevelInfo:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case LogLevelDebug:
		config = zap.NewDevelopmentConfig()
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		config = zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// startProgress launches the progress ticker and returns a function that stops it
// and delivers the final update.
func startProgress(fn ProgressFn, stats *Stats, start time.Time) func() {
	if fn == nil {
		return func() {}
	}

	doneCh := make(chan struct{})
	var tickerWg sync.WaitGroup
	tickerWg.Add(1)
	go func() {
		defer tickerWg.Done()
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
		for {
			select {
			case <-doneCh:
				return
			case <-ticker.C:
				fn(stats.snapshot(start))
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(doneCh)
			tickerWg.Wait()
			fn(stats.snapshot(start))
		})
	}
}
