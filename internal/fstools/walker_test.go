package fstools

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector records visits from concurrent visitors.
type collector struct {
	mu    sync.Mutex
	paths map[string]EntryStat
}

func newCollector() *collector {
	return &collector{paths: make(map[string]EntryStat)}
}

func (c *collector) visit(_ context.Context, path string, st EntryStat) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paths[path] = st
	return nil
}

func (c *collector) count(kind Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, st := range c.paths {
		if st.Kind == kind {
			n++
		}
	}
	return n
}

func TestWalkVisitsEveryNonDirectory(t *testing.T) {
	root := newSandbox(t)
	c := newCollector()

	require.NoError(t, Walk(context.Background(), root, nil, c.visit))

	assert.Len(t, c.paths, len(sandboxFiles)+len(sandboxLinks))
	assert.Equal(t, len(sandboxFiles), c.count(KindFile))
	assert.Equal(t, len(sandboxLinks), c.count(KindSymlink))
	assert.Zero(t, c.count(KindDir))

	for rel, target := range sandboxLinks {
		st, ok := c.paths[filepath.Join(root, rel)]
		require.True(t, ok, "link %s not visited", rel)
		assert.Equal(t, target, st.LinkTarget)
	}
	for rel, content := range sandboxFiles {
		st, ok := c.paths[filepath.Join(root, rel)]
		require.True(t, ok, "file %s not visited", rel)
		assert.Equal(t, int64(len(content)), st.Size)
	}
}

func TestWalkMatcher(t *testing.T) {
	root := newSandbox(t)

	tests := []struct {
		name  string
		match Matcher
		want  int
	}{
		{"suffix", Suffix("file"), 4},
		{"regexp", MustRegexp(`/bar/.*link$`), 2},
		{"func", MatchFunc(func(p string) bool { return filepath.Base(p) == "link" }), 4},
		{"none", MatchFunc(func(string) bool { return false }), 0},
		{"nil func", MatchFunc(nil), 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCollector()
			require.NoError(t, Walk(context.Background(), root, tt.match, c.visit))
			assert.Len(t, c.paths, tt.want)
		})
	}
}

func TestWalkMissingRoot(t *testing.T) {
	var visits int32
	err := Walk(context.Background(), filepath.Join(t.TempDir(), "missing"), nil,
		func(context.Context, string, EntryStat) error {
			atomic.AddInt32(&visits, 1)
			return nil
		})

	require.NoError(t, err)
	assert.Zero(t, visits)
}

func TestWalkFileRoot(t *testing.T) {
	root := newSandbox(t)
	file := filepath.Join(root, "file")
	c := newCollector()

	require.NoError(t, Walk(context.Background(), file, nil, c.visit))

	require.Len(t, c.paths, 1)
	assert.Equal(t, KindFile, c.paths[file].Kind)
}

func TestWalkVisitorErrorPropagates(t *testing.T) {
	root := newSandbox(t)
	boom := errors.New("boom")

	err := Walk(context.Background(), root, Suffix("bar/baz/file"),
		func(context.Context, string, EntryStat) error { return boom })

	assert.ErrorIs(t, err, boom)
}

func TestWalkDrainsSiblingsWithoutCancel(t *testing.T) {
	root := newSandbox(t)
	boom := errors.New("boom")
	var visits int32

	opts := NewOptions()
	opts.CancelOnError = false
	err := WalkWithOptions(context.Background(), root, nil,
		func(context.Context, string, EntryStat) error {
			atomic.AddInt32(&visits, 1)
			return boom
		}, opts)

	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 8, atomic.LoadInt32(&visits))
}

func TestWalkCancelledContext(t *testing.T) {
	root := newSandbox(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var visits int32
	err := Walk(ctx, root, nil, func(context.Context, string, EntryStat) error {
		atomic.AddInt32(&visits, 1)
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, visits)
}

func TestWalkSingleSlot(t *testing.T) {
	root := newSandbox(t)
	c := newCollector()

	opts := NewOptions()
	opts.Concurrency = 1
	require.NoError(t, WalkWithOptions(context.Background(), root, nil, c.visit, opts))

	assert.Len(t, c.paths, 8)
}

func TestWalkStatsAndProgress(t *testing.T) {
	root := newSandbox(t)

	var mu sync.Mutex
	var last Stats
	calls := 0

	stats := &Stats{}
	opts := NewOptions()
	opts.Stats = stats
	opts.Progress = func(s Stats) {
		mu.Lock()
		defer mu.Unlock()
		last = s
		calls++
	}

	require.NoError(t, WalkWithOptions(context.Background(), root, nil, newCollector().visit, opts))

	mu.Lock()
	defer mu.Unlock()
	assert.GreaterOrEqual(t, calls, 1)
	assert.EqualValues(t, 8, last.EntriesVisited)
	assert.Greater(t, int64(last.ElapsedTime), int64(0))
	assert.EqualValues(t, 8, atomic.LoadInt64(&stats.EntriesVisited))
}
