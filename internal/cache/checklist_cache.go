package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "Pastel/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyListPrefix = "checklist:list:"

// ChecklistCache caches each user's checklist tree in Redis.
type ChecklistCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewChecklistCache returns a new ChecklistCache.
func NewChecklistCache(rdb *redis.Client, ttl time.Duration) *ChecklistCache {
	return &ChecklistCache{rdb: rdb, ttl: ttl}
}

// GetList returns the cached tree for userID or nil on miss.
func (c *ChecklistCache) GetList(ctx context.Context, userID string) ([]dom.Checklist, error) {
	b, err := c.rdb.Get(ctx, keyListPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []dom.Checklist
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SetList stores the tree for userID.
func (c *ChecklistCache) SetList(ctx context.Context, userID string, list []dom.Checklist) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyListPrefix+userID, b, c.ttl).Err()
}

// Invalidate drops the cached tree for userID (cache invalidation on write).
func (c *ChecklistCache) Invalidate(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, keyListPrefix+userID).Err()
}
