package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storelink/backend/internal/application/feed"
)

type countingSyncer struct {
	calls int32
	err   error
}

func (s *countingSyncer) Sync(ctx context.Context) *feed.SyncResult {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return &feed.SyncResult{Err: s.err}
	}
	return &feed.SyncResult{Success: true, Count: 3}
}

func (s *countingSyncer) count() int32 {
	return atomic.LoadInt32(&s.calls)
}

func testDebouncerConfig(window time.Duration) ResyncDebouncerConfig {
	return ResyncDebouncerConfig{
		Enabled:     true,
		Window:      window,
		SyncTimeout: time.Second,
	}
}

func TestResyncDebouncerConfig_Validate(t *testing.T) {
	cfg := DefaultResyncDebouncerConfig()
	require.NoError(t, cfg.Validate())

	cfg.Window = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultResyncDebouncerConfig()
	cfg.SyncTimeout = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestResyncDebouncer_CoalescesBurst(t *testing.T) {
	syncer := &countingSyncer{}
	d, err := NewResyncDebouncer(testDebouncerConfig(30*time.Millisecond), syncer, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, d.Start(context.Background()))
	defer d.Stop(context.Background())

	for i := 0; i < 5; i++ {
		d.Notify()
	}
	assert.Equal(t, 5, d.Pending())

	require.Eventually(t, func() bool {
		return syncer.count() == 1
	}, time.Second, 5*time.Millisecond, "burst must collapse into one sync")

	// Quiet period: no further syncs fire
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), syncer.count())
	assert.Equal(t, 0, d.Pending())
}

func TestResyncDebouncer_NotifyReArmsTimer(t *testing.T) {
	syncer := &countingSyncer{}
	d, err := NewResyncDebouncer(testDebouncerConfig(50*time.Millisecond), syncer, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, d.Start(context.Background()))
	defer d.Stop(context.Background())

	// Keep notifying inside the window; the sync must not fire while the
	// burst is still going.
	for i := 0; i < 4; i++ {
		d.Notify()
		time.Sleep(20 * time.Millisecond)
	}
	assert.Equal(t, int32(0), syncer.count())

	require.Eventually(t, func() bool {
		return syncer.count() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestResyncDebouncer_StaleTimerCallbackIgnored(t *testing.T) {
	syncer := &countingSyncer{}
	d, err := NewResyncDebouncer(testDebouncerConfig(time.Hour), syncer, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, d.Start(context.Background()))
	defer d.Stop(context.Background())

	d.Notify()
	d.Notify()

	// A first-arm callback that already left the runtime queue when the
	// second Notify re-armed must neither sync nor consume the pending
	// notifications.
	d.fire(1)
	assert.Equal(t, int32(0), syncer.count())
	assert.Equal(t, 2, d.Pending())

	// The current generation still fires exactly once.
	d.fire(2)
	require.Eventually(t, func() bool {
		return syncer.count() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, d.Pending())

	// Fired generations are spent; replaying one is a no-op.
	d.fire(2)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), syncer.count())
}

func TestResyncDebouncer_StopCancelsPending(t *testing.T) {
	syncer := &countingSyncer{}
	d, err := NewResyncDebouncer(testDebouncerConfig(30*time.Millisecond), syncer, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, d.Start(context.Background()))
	d.Notify()
	require.NoError(t, d.Stop(context.Background()))

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), syncer.count())
}

func TestResyncDebouncer_NotifyBeforeStartIgnored(t *testing.T) {
	syncer := &countingSyncer{}
	d, err := NewResyncDebouncer(testDebouncerConfig(10*time.Millisecond), syncer, zap.NewNop())
	require.NoError(t, err)

	d.Notify()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), syncer.count())
	assert.Equal(t, 0, d.Pending())
}

func TestResyncDebouncer_DisabledIgnoresNotify(t *testing.T) {
	syncer := &countingSyncer{}
	cfg := testDebouncerConfig(10 * time.Millisecond)
	cfg.Enabled = false
	d, err := NewResyncDebouncer(cfg, syncer, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, d.Start(context.Background()))
	defer d.Stop(context.Background())

	d.Notify()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), syncer.count())
}
