package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/storelink/backend/internal/domain/catalog"
)

// SyncResult reports the outcome of one sync attempt.
type SyncResult struct {
	Success   bool
	Count     int
	Artifacts []string
	Err       error
}

// Status is a read-only view of the coordinator state. Never blocks on an
// in-flight sync.
type Status struct {
	InFlight          bool
	ProductsCount     int
	LastSync          *time.Time
	LastError         string
	PlatformConnected bool
}

// SyncService orchestrates fetch → normalize → encode → publish and owns the
// current snapshot. At most one sync runs at a time; a reentrant call fails
// fast with catalog.ErrSyncInProgress. Fetch failures and empty catalogs
// leave the previous snapshot untouched.
type SyncService struct {
	fetcher    CatalogFetcher
	store      ArtifactStore
	cache      SnapshotCache
	normalizer *catalog.Normalizer
	logger     *zap.Logger

	// mu guards the IDLE/SYNCING transition only; it is never held during
	// network or sink I/O
	mu      sync.Mutex
	syncing bool

	// stateMu guards the published snapshot and sync bookkeeping
	stateMu   sync.RWMutex
	snapshot  *catalog.Snapshot
	lastSync  *time.Time
	lastError string
}

// SyncServiceOption is a functional option for configuring SyncService
type SyncServiceOption func(*SyncService)

// WithSnapshotCache attaches an optional snapshot warm cache
func WithSnapshotCache(cache SnapshotCache) SyncServiceOption {
	return func(s *SyncService) {
		s.cache = cache
	}
}

// NewSyncService creates a sync coordinator over the given collaborators
func NewSyncService(
	fetcher CatalogFetcher,
	store ArtifactStore,
	normalizer *catalog.Normalizer,
	logger *zap.Logger,
	opts ...SyncServiceOption,
) *SyncService {
	s := &SyncService{
		fetcher:    fetcher,
		store:      store,
		normalizer: normalizer,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WarmStart loads the last persisted snapshot from the cache, if one is
// configured and no snapshot is held yet. Failures are logged and ignored.
func (s *SyncService) WarmStart(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	if s.snapshot != nil {
		return
	}
	snapshot, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Warn("Snapshot cache load failed", zap.Error(err))
		return
	}
	if snapshot == nil || snapshot.Len() == 0 {
		return
	}
	s.snapshot = snapshot
	produced := snapshot.ProducedAt
	s.lastSync = &produced
	s.logger.Info("Restored snapshot from cache",
		zap.Int("products", snapshot.Len()),
		zap.Time("produced_at", snapshot.ProducedAt),
	)
}

// Sync runs one full synchronization attempt. The coordinator returns to
// idle after every outcome.
func (s *SyncService) Sync(ctx context.Context) *SyncResult {
	if !s.beginSync() {
		return &SyncResult{Success: false, Err: catalog.ErrSyncInProgress}
	}
	defer s.endSync()

	runID := uuid.New()
	start := time.Now()
	s.logger.Info("Catalog sync started", zap.String("run_id", runID.String()))

	remotes, err := s.fetcher.FetchProducts(ctx)
	if err != nil {
		return s.fail(runID, err)
	}
	if len(remotes) == 0 {
		return s.fail(runID, catalog.ErrEmptyCatalog)
	}

	products := s.normalizer.NormalizeAll(remotes)
	snapshot := catalog.NewSnapshot(products)

	if err := s.publishArtifacts(ctx, products); err != nil {
		return s.fail(runID, err)
	}

	// Publish succeeded; swap the snapshot wholesale
	now := time.Now().UTC()
	s.stateMu.Lock()
	s.snapshot = snapshot
	s.lastSync = &now
	s.lastError = ""
	s.stateMu.Unlock()

	if s.cache != nil {
		if err := s.cache.Store(ctx, snapshot); err != nil {
			s.logger.Warn("Snapshot cache store failed", zap.Error(err))
		}
	}

	s.logger.Info("Catalog sync completed",
		zap.String("run_id", runID.String()),
		zap.Int("products", len(products)),
		zap.Strings("artifacts", ArtifactNames),
		zap.Duration("duration", time.Since(start)),
	)

	return &SyncResult{
		Success:   true,
		Count:     len(products),
		Artifacts: append([]string(nil), ArtifactNames...),
	}
}

// publishArtifacts encodes and publishes all three feed artifacts. Any
// failure aborts the snapshot swap so files and snapshot stay consistent.
func (s *SyncService) publishArtifacts(ctx context.Context, products []catalog.Product) error {
	csvData, err := EncodeCSV(products)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", catalog.ErrSinkWrite, CSVArtifactName, err)
	}
	businessData, err := EncodeBusinessCatalog(products)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", catalog.ErrSinkWrite, BusinessArtifactName, err)
	}
	detailData, err := EncodeDetail(products)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", catalog.ErrSinkWrite, DetailArtifactName, err)
	}

	artifacts := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{CSVArtifactName, "text/csv; charset=utf-8", csvData},
		{BusinessArtifactName, "application/json", businessData},
		{DetailArtifactName, "application/json", detailData},
	}
	for _, a := range artifacts {
		if err := s.store.Put(ctx, a.name, a.contentType, a.data); err != nil {
			return fmt.Errorf("%w: %s: %v", catalog.ErrSinkWrite, a.name, err)
		}
	}
	return nil
}

// Status returns a read-only copy of the sync state and snapshot size.
func (s *SyncService) Status() Status {
	s.mu.Lock()
	inFlight := s.syncing
	s.mu.Unlock()

	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	st := Status{
		InFlight:          inFlight,
		ProductsCount:     s.snapshot.Len(),
		LastError:         s.lastError,
		PlatformConnected: s.fetcher.Configured(),
	}
	if s.lastSync != nil {
		t := *s.lastSync
		st.LastSync = &t
	}
	return st
}

// Products returns up to limit products from the current snapshot plus the
// snapshot total. The returned slice is a copy.
func (s *SyncService) Products(limit int) ([]catalog.Product, int) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	total := s.snapshot.Len()
	if total == 0 {
		return []catalog.Product{}, 0
	}
	if limit <= 0 || limit > total {
		limit = total
	}
	page := make([]catalog.Product, limit)
	copy(page, s.snapshot.Products[:limit])
	return page, total
}

// beginSync performs the atomic IDLE→SYNCING transition. Returns false if a
// sync is already in flight.
func (s *SyncService) beginSync() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.syncing {
		return false
	}
	s.syncing = true
	return true
}

func (s *SyncService) endSync() {
	s.mu.Lock()
	s.syncing = false
	s.mu.Unlock()
}

// fail records the error, leaves the snapshot untouched, and reports the
// failed attempt.
func (s *SyncService) fail(runID uuid.UUID, err error) *SyncResult {
	s.stateMu.Lock()
	s.lastError = err.Error()
	s.stateMu.Unlock()

	s.logger.Error("Catalog sync failed",
		zap.String("run_id", runID.String()),
		zap.Error(err),
	)
	return &SyncResult{Success: false, Err: err}
}
