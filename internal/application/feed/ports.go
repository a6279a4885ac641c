// Package feed builds WhatsApp-commerce feed artifacts from a remote
// product catalog and coordinates when synchronization runs.
package feed

import (
	"context"

	"github.com/storelink/backend/internal/domain/catalog"
)

// CatalogFetcher retrieves the full raw product collection from the remote
// e-commerce platform.
type CatalogFetcher interface {
	FetchProducts(ctx context.Context) ([]catalog.RemoteProduct, error)
	// Configured reports whether the platform credential is present
	Configured() bool
}

// ArtifactStore durably stores one encoded feed artifact under a fixed name.
type ArtifactStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) error
}

// SnapshotCache persists the latest successful snapshot so a restarted
// process can serve it before its first sync. Optional collaborator.
type SnapshotCache interface {
	Store(ctx context.Context, snapshot *catalog.Snapshot) error
	Load(ctx context.Context) (*catalog.Snapshot, error)
}
