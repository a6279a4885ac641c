package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/storelink/backend/internal/domain/catalog"
)

// RedisSnapshotCache persists the published catalog snapshot in Redis so a
// restarted instance can serve status and product listings before the first
// sync completes.
type RedisSnapshotCache struct {
	client    *redis.Client
	keyPrefix string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type snapshotRecord struct {
	Products   []catalog.Product `json:"products"`
	ProducedAt time.Time         `json:"produced_at"`
}

// NewRedisSnapshotCache connects to Redis and verifies the connection
func NewRedisSnapshotCache(cfg RedisConfig) (*RedisSnapshotCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSnapshotCache{
		client:    client,
		keyPrefix: "catalog:snapshot:",
	}, nil
}

// NewRedisSnapshotCacheWithClient creates a cache with an existing Redis client
// This is useful for testing or when sharing a client across components
func NewRedisSnapshotCacheWithClient(client *redis.Client, keyPrefix string) *RedisSnapshotCache {
	if keyPrefix == "" {
		keyPrefix = "catalog:snapshot:"
	}
	return &RedisSnapshotCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Store saves the snapshot under a fixed key, replacing the previous one
func (c *RedisSnapshotCache) Store(ctx context.Context, snap *catalog.Snapshot) error {
	if snap == nil {
		return errors.New("cache: snapshot is required")
	}

	data, err := json.Marshal(snapshotRecord{
		Products:   snap.Products,
		ProducedAt: snap.ProducedAt,
	})
	if err != nil {
		return fmt.Errorf("cache: failed to encode snapshot: %w", err)
	}

	if err := c.client.Set(ctx, c.keyPrefix+"current", data, 0).Err(); err != nil {
		return fmt.Errorf("cache: failed to store snapshot: %w", err)
	}
	return nil
}

// Load returns the cached snapshot, or nil when none has been stored yet
func (c *RedisSnapshotCache) Load(ctx context.Context) (*catalog.Snapshot, error) {
	data, err := c.client.Get(ctx, c.keyPrefix+"current").Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: failed to load snapshot: %w", err)
	}

	var rec snapshotRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("cache: failed to decode snapshot: %w", err)
	}

	return &catalog.Snapshot{
		Products:   rec.Products,
		ProducedAt: rec.ProducedAt,
	}, nil
}

// Close releases the underlying Redis connection
func (c *RedisSnapshotCache) Close() error {
	return c.client.Close()
}
