// Package cache is an optional Redis JSON cache. A Cache with no client is valid and
// behaves as a permanent miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"inventory-backend/internal/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	KeyBranches = "branches:all"
)

func BranchKey(id string) string {
	return "branch:" + id
}

func BranchItemsKey(branchID string) string {
	return "branch:" + branchID + ":items"
}

type Cache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func New(rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, logger: logger}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

// Get decodes the cached value into dest and reports whether it was found.
// Lookup and decode failures are logged and reported as misses.
func (c *Cache) Get(ctx context.Context, key string, dest any) bool {
	if !c.Enabled() {
		return false
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			config.LogError(c.logger, "cache", "Get", key, nil, err)
		}
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		config.LogError(c.logger, "cache", "Get", key, nil, err)
		return false
	}
	return true
}

func (c *Cache) Set(ctx context.Context, key string, value any) {
	if !c.Enabled() {
		return
	}
	b, err := json.Marshal(value)
	if err != nil {
		config.LogError(c.logger, "cache", "Set", key, nil, err)
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		config.LogError(c.logger, "cache", "Set", key, nil, err)
	}
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		config.LogError(c.logger, "cache", "Delete", "", keys, err)
	}
}
