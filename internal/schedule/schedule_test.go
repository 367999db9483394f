package schedule

import (
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(s.Stop)
	return s
}

func TestScheduler_Fires(t *testing.T) {
	s := newTestScheduler(t)

	var ticks atomic.Int32
	require.NoError(t, s.Every("tick", EverySecond, func() { ticks.Add(1) }))
	s.Start()

	assert.Eventually(t, func() bool { return ticks.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_ReplaceKeepsOneEntryPerName(t *testing.T) {
	s := newTestScheduler(t)

	var first, second atomic.Int32
	require.NoError(t, s.Every("tick", EverySecond, func() { first.Add(1) }))
	require.NoError(t, s.Every("tick", EverySecond, func() { second.Add(1) }))
	s.Start()

	assert.Eventually(t, func() bool { return second.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	assert.Zero(t, first.Load(), "replaced entry must not fire")
	assert.Len(t, s.cron.Entries(), 1)
}

func TestScheduler_Cancel(t *testing.T) {
	s := newTestScheduler(t)

	var ticks atomic.Int32
	require.NoError(t, s.Every("tick", EverySecond, func() { ticks.Add(1) }))
	require.True(t, s.Has("tick"))

	s.Cancel("tick")
	s.Cancel("unknown")
	assert.False(t, s.Has("tick"))

	s.Start()
	time.Sleep(1500 * time.Millisecond)
	assert.Zero(t, ticks.Load())
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := newTestScheduler(t)

	err := s.Every("bad", "not a cron spec", func() {})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
	assert.False(t, s.Has("bad"))
}

func TestScheduler_InvalidSpecKeepsExistingEntry(t *testing.T) {
	s := newTestScheduler(t)

	require.NoError(t, s.Every("rollover", Midnight, func() {}))
	require.Error(t, s.Every("rollover", "61 * * * * *", func() {}))
	assert.True(t, s.Has("rollover"))
}

func TestScheduler_NextMidnight(t *testing.T) {
	loc := time.FixedZone("AST", 3*60*60)
	s := New(nil, WithLocation(loc))
	t.Cleanup(s.Stop)

	require.NoError(t, s.Every("rollover", Midnight, func() {}))
	s.Start()

	next := s.Next("rollover")
	require.False(t, next.IsZero())
	next = next.In(loc)
	assert.Equal(t, 0, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, s.Next("missing").IsZero())
}

func TestScheduler_PanicIsRecovered(t *testing.T) {
	s := newTestScheduler(t)

	var after atomic.Int32
	require.NoError(t, s.Every("boom", EverySecond, func() { panic("boom") }))
	require.NoError(t, s.Every("ok", EverySecond, func() { after.Add(1) }))
	s.Start()

	assert.Eventually(t, func() bool { return after.Load() >= 2 }, 4*time.Second, 50*time.Millisecond)
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := newTestScheduler(t)
	s.Stop()
	s.Start()
	s.Stop()
	s.Stop()
}
