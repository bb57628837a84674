// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, previewKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestConnectValkeyUnreachable(t *testing.T) {
	if _, err := ConnectValkey("127.0.0.1", "1", ""); err == nil {
		t.Error("expected error for unreachable Valkey")
	}
}

func TestPreviewKey(t *testing.T) {
	a := PreviewKey("u1", "onePager", []byte(`{"a":1}`), []byte(`{}`))
	b := PreviewKey("u1", "onePager", []byte(`{"a":1}`), []byte(`{}`))
	if a != b {
		t.Error("same inputs must give the same key")
	}
	if !strings.HasPrefix(a, "preview:u1:") {
		t.Errorf("key should be scoped to the user, got %q", a)
	}

	others := []string{
		PreviewKey("u2", "onePager", []byte(`{"a":1}`), []byte(`{}`)),
		PreviewKey("u1", "businessCard", []byte(`{"a":1}`), []byte(`{}`)),
		PreviewKey("u1", "onePager", []byte(`{"a":2}`), []byte(`{}`)),
		// Part boundaries matter.
		PreviewKey("u1", "onePager", []byte(`{"a":1}{}`)),
	}
	for i, o := range others {
		if o == a {
			t.Errorf("case %d: different inputs produced the same key", i)
		}
	}
}

func TestPreviewCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPreviewCache(client, time.Minute)
	ctx := context.Background()

	key := PreviewKey("cache-test-user", "onePager", []byte("x"))
	if _, ok := pc.Get(ctx, key); ok {
		t.Fatal("expected miss before Set")
	}

	pc.Set(ctx, key, []byte("<html>preview</html>"))
	got, ok := pc.Get(ctx, key)
	if !ok || string(got) != "<html>preview</html>" {
		t.Errorf("Get: got (%q, %v)", got, ok)
	}

	ttl := client.TTL(ctx, key).Val()
	if ttl <= 0 || ttl > time.Minute {
		t.Errorf("unexpected TTL %v", ttl)
	}
}

func TestPreviewCacheInvalidateUser(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPreviewCache(client, time.Minute)
	ctx := context.Background()

	mine := []string{
		PreviewKey("inv-user", "onePager", []byte("1")),
		PreviewKey("inv-user", "businessCard", []byte("2")),
	}
	other := PreviewKey("inv-other", "onePager", []byte("1"))
	for _, k := range append(mine, other) {
		pc.Set(ctx, k, []byte("html"))
	}

	pc.InvalidateUser(ctx, "inv-user")

	for _, k := range mine {
		if _, ok := pc.Get(ctx, k); ok {
			t.Errorf("%s should have been invalidated", k)
		}
	}
	if _, ok := pc.Get(ctx, other); !ok {
		t.Error("another user's preview was invalidated")
	}
}

func TestNewPreviewCacheDefaultTTL(t *testing.T) {
	pc := NewPreviewCache(nil, 0)
	if pc.ttl != DefaultPreviewTTL {
		t.Errorf("ttl: got %v, want %v", pc.ttl, DefaultPreviewTTL)
	}
}
