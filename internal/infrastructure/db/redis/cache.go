package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ucetportal/campus-api/internal/core/domain"
)

const cacheTTL = 5 * time.Minute

// ContentCache caches content list responses in Redis.
// Key format: content:<collection>
type ContentCache struct {
	client *redis.Client
}

// NewContentCache creates a ContentCache wrapping the given Redis client.
func NewContentCache(client *redis.Client) *ContentCache {
	return &ContentCache{client: client}
}

// Get returns the cached list for a collection, or (nil, nil) on a miss.
func (c *ContentCache) Get(ctx context.Context, collection string) ([]*domain.ContentRecord, error) {
	raw, err := c.client.Get(ctx, c.key(collection)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var records []*domain.ContentRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return records, nil
}

// Set stores the list for a collection (expires after cacheTTL).
func (c *ContentCache) Set(ctx context.Context, collection string, records []*domain.ContentRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(collection), raw, cacheTTL).Err()
}

// Invalidate drops the cached list after a mutation.
func (c *ContentCache) Invalidate(ctx context.Context, collection string) error {
	return c.client.Del(ctx, c.key(collection)).Err()
}

func (c *ContentCache) key(collection string) string {
	return "content:" + collection
}
