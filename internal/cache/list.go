// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// list.go provides a Valkey-backed cache for serialized post listings.
// Listing pages are read far more often than posts change, so the encoded
// JSON response body is stored in Valkey and served on subsequent requests
// without touching the database. Any post mutation clears the whole
// listing namespace; the entries are small and the TTL is short, so
// coarse invalidation is cheap and never serves stale pages for long.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// listKeyPrefix is the Valkey key prefix for cached post listings.
	listKeyPrefix = "postlist:"

	// DefaultListTTL is how long a cached listing stays valid.
	DefaultListTTL = 1 * time.Minute
)

// ListCache manages cached post listing responses in Valkey.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a new listing cache backed by the given Valkey client.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

// ListKey returns the cache key for one listing window. The empty category
// slug addresses the unfiltered listing.
func ListKey(page, limit int, categorySlug string) string {
	if categorySlug == "" {
		categorySlug = "_all"
	}
	return fmt.Sprintf("%d:%d:%s", page, limit, categorySlug)
}

// Get retrieves a cached listing body. Returns nil and false on miss.
func (lc *ListCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := lc.client.Get(ctx, listKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("list cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("list cache hit", "key", key)
	return val, true
}

// Set stores an encoded listing body with the configured TTL.
func (lc *ListCache) Set(ctx context.Context, key string, body []byte) {
	if err := lc.client.Set(ctx, listKeyPrefix+key, body, lc.ttl).Err(); err != nil {
		slog.Warn("list cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached listing by scanning for the prefix.
// Called after any post mutation, since a single change can shift every
// page of the listing. Category creation leaves the cache alone; it
// cannot alter an existing page.
func (lc *ListCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := lc.client.Scan(ctx, cursor, listKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("list cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := lc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("list cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("list cache cleared", "deleted", deleted)
	}
}
