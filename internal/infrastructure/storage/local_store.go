// Package storage provides artifact sink implementations for feed files.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/storelink/backend/internal/application/feed"
)

// Ensure LocalArtifactStore implements feed.ArtifactStore
var _ feed.ArtifactStore = (*LocalArtifactStore)(nil)

// LocalArtifactStore writes feed artifacts to a directory on the local
// filesystem. Writes go through a temp file plus rename so a reader never
// observes a partially written artifact.
type LocalArtifactStore struct {
	dir    string
	logger *zap.Logger
}

// NewLocalArtifactStore creates a local store rooted at dir, creating the
// directory if needed.
func NewLocalArtifactStore(dir string, logger *zap.Logger) (*LocalArtifactStore, error) {
	if dir == "" {
		return nil, errors.New("storage: artifact directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: failed to create artifact directory: %w", err)
	}
	return &LocalArtifactStore{dir: dir, logger: logger}, nil
}

// Put stores one artifact under its fixed name.
func (s *LocalArtifactStore) Put(ctx context.Context, name, contentType string, data []byte) error {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "..") {
		return fmt.Errorf("storage: invalid artifact name %q", name)
	}

	target := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: failed to close artifact: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: failed to publish artifact: %w", err)
	}

	s.logger.Debug("Artifact written",
		zap.String("name", name),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// Dir returns the artifact directory
func (s *LocalArtifactStore) Dir() string {
	return s.dir
}
