// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache_test.go holds integration tests for the listing cache. Skipped
// when Valkey is unavailable. Tests run against DB 15 to stay clear of
// development data.
package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func valkeyAddr() string {
	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}
	return host + ":" + port
}

// newTestCache connects to the test Valkey DB and returns a cache whose
// namespace is wiped when the test ends.
func newTestCache(t *testing.T, ttl time.Duration) *ListCache {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     valkeyAddr(),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		if keys, _ := client.Keys(ctx, listKeyPrefix+"*").Result(); len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return NewListCache(client, ttl)
}

func TestConnectValkey(t *testing.T) {
	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping integration test: valkey not reachable: %v", err)
	}
	defer client.Close()

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("ping through connected client: %v", err)
	}
}

func TestListKey(t *testing.T) {
	tests := []struct {
		page, limit int
		slug        string
		want        string
	}{
		{1, 10, "", "1:10:_all"},
		{3, 10, "", "3:10:_all"},
		{1, 25, "databases", "1:25:databases"},
		{2, 10, "web-development", "2:10:web-development"},
	}
	for _, tt := range tests {
		if got := ListKey(tt.page, tt.limit, tt.slug); got != tt.want {
			t.Errorf("ListKey(%d, %d, %q) = %q, want %q", tt.page, tt.limit, tt.slug, got, tt.want)
		}
	}
}

func TestListCacheRoundTrip(t *testing.T) {
	lc := newTestCache(t, time.Minute)
	ctx := context.Background()
	key := ListKey(1, 10, "technology")

	if body, ok := lc.Get(ctx, key); ok || body != nil {
		t.Fatalf("cold cache returned (%q, %v), want miss", body, ok)
	}

	stored := []byte(`{"success":true,"data":[],"pagination":{"page":1,"limit":10,"total":0,"pages":0}}`)
	lc.Set(ctx, key, stored)

	body, ok := lc.Get(ctx, key)
	if !ok {
		t.Fatal("warm cache missed")
	}
	if string(body) != string(stored) {
		t.Errorf("cached body: got %q, want %q", body, stored)
	}

	// Other windows stay cold.
	if _, ok := lc.Get(ctx, ListKey(2, 10, "technology")); ok {
		t.Error("unrelated key reported a hit")
	}
}

func TestListCacheInvalidateAll(t *testing.T) {
	lc := newTestCache(t, time.Minute)
	ctx := context.Background()

	keys := []string{
		ListKey(1, 10, ""),
		ListKey(2, 10, ""),
		ListKey(1, 10, "career"),
	}
	for i, key := range keys {
		lc.Set(ctx, key, []byte{byte('a' + i)})
	}

	lc.InvalidateAll(ctx)

	for _, key := range keys {
		if _, ok := lc.Get(ctx, key); ok {
			t.Errorf("key %q survived invalidation", key)
		}
	}
}

func TestNewListCacheZeroTTL(t *testing.T) {
	lc := NewListCache(nil, 0)
	if lc.ttl != DefaultListTTL {
		t.Errorf("zero ttl: got %v, want default %v", lc.ttl, DefaultListTTL)
	}
	lc = NewListCache(nil, 5*time.Second)
	if lc.ttl != 5*time.Second {
		t.Errorf("explicit ttl: got %v, want 5s", lc.ttl)
	}
}
