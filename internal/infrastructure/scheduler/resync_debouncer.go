package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/storelink/backend/internal/application/feed"
)

// ---------------------------------------------------------------------------
// ResyncDebouncer
// ---------------------------------------------------------------------------

// CatalogSyncer triggers a full catalog sync cycle
type CatalogSyncer interface {
	Sync(ctx context.Context) *feed.SyncResult
}

// ResyncDebouncerConfig holds configuration for the resync debouncer
type ResyncDebouncerConfig struct {
	// Enabled indicates if webhook-driven resyncs are enabled
	Enabled bool
	// Window is how long to wait after the last notification before syncing
	Window time.Duration
	// SyncTimeout is the maximum time a triggered sync can run
	SyncTimeout time.Duration
}

// DefaultResyncDebouncerConfig returns default configuration
func DefaultResyncDebouncerConfig() ResyncDebouncerConfig {
	return ResyncDebouncerConfig{
		Enabled:     true,
		Window:      5 * time.Minute,
		SyncTimeout: 10 * time.Minute,
	}
}

// Validate validates the configuration
func (c *ResyncDebouncerConfig) Validate() error {
	if c.Window <= 0 {
		return ErrInvalidConfig
	}
	if c.SyncTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// ResyncDebouncer coalesces bursts of change notifications into a single
// deferred sync. Each Notify resets the countdown, so a burst of webhook
// deliveries produces exactly one sync once the burst goes quiet.
type ResyncDebouncer struct {
	config ResyncDebouncerConfig
	syncer CatalogSyncer
	logger *zap.Logger

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	pending    int
	isRunning  bool

	wg sync.WaitGroup
}

// NewResyncDebouncer creates a new resync debouncer
func NewResyncDebouncer(config ResyncDebouncerConfig, syncer CatalogSyncer, logger *zap.Logger) (*ResyncDebouncer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &ResyncDebouncer{
		config: config,
		syncer: syncer,
		logger: logger,
	}, nil
}

// Start marks the debouncer as accepting notifications
func (d *ResyncDebouncer) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isRunning {
		return nil
	}
	d.isRunning = true

	d.logger.Info("Resync debouncer started",
		zap.Duration("window", d.config.Window),
	)
	return nil
}

// Stop cancels any pending sync and waits for an in-flight one to finish
func (d *ResyncDebouncer) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = false

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = 0
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Resync debouncer stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn("Resync debouncer stop timed out")
		return ctx.Err()
	}
}

// Notify records a catalog change and re-arms the debounce timer. Calls
// arriving before the window elapses are coalesced into the pending sync.
func (d *ResyncDebouncer) Notify() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isRunning || !d.config.Enabled {
		return
	}

	d.pending++
	if d.timer != nil {
		d.timer.Stop()
	}
	// Each arm gets its own generation. A timer callback that already left
	// the runtime queue before Stop took effect carries a stale generation
	// and is discarded in fire, so only the latest armed timer syncs.
	d.generation++
	gen := d.generation
	d.timer = time.AfterFunc(d.config.Window, func() { d.fire(gen) })

	d.logger.Debug("Catalog change notification received",
		zap.Int("coalesced", d.pending),
		zap.Duration("window", d.config.Window),
	)
}

// Pending reports how many notifications are coalesced into the armed timer
func (d *ResyncDebouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *ResyncDebouncer) fire(gen uint64) {
	d.mu.Lock()
	if !d.isRunning || gen != d.generation || d.pending == 0 {
		d.mu.Unlock()
		return
	}
	coalesced := d.pending
	d.pending = 0
	d.timer = nil
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), d.config.SyncTimeout)
		defer cancel()

		d.logger.Info("Debounce window elapsed, starting catalog sync",
			zap.Int("coalesced_notifications", coalesced),
		)

		result := d.syncer.Sync(ctx)
		if result.Err != nil {
			d.logger.Warn("Webhook-triggered catalog sync failed",
				zap.Error(result.Err),
			)
			return
		}

		d.logger.Info("Webhook-triggered catalog sync completed",
			zap.Int("products", result.Count),
		)
	}()
}
