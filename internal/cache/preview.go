// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// preview.go provides a Valkey-backed cache of rendered preview markup.
// A preview is keyed by the user and a digest of everything that shaped
// it, so identical requests skip rendering and a changed brand or
// customization simply misses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// previewKeyPrefix is the Valkey key prefix for cached previews.
	previewKeyPrefix = "preview:"

	// DefaultPreviewTTL is how long a rendered preview stays cached.
	DefaultPreviewTTL = 10 * time.Minute
)

// PreviewCache manages preview markup caching in Valkey.
type PreviewCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPreviewCache creates a preview cache backed by the given Valkey client.
func NewPreviewCache(client *redis.Client, ttl time.Duration) *PreviewCache {
	if ttl == 0 {
		ttl = DefaultPreviewTTL
	}
	return &PreviewCache{client: client, ttl: ttl}
}

// PreviewKey builds the cache key for one preview of userID's assetType.
// parts are the encoded inputs the preview was rendered from.
func PreviewKey(userID, assetType string, parts ...[]byte) string {
	h := sha256.New()
	h.Write([]byte(assetType))
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write(p)
	}
	return previewKeyPrefix + userID + ":" + hex.EncodeToString(h.Sum(nil))
}

// Get retrieves cached markup. Errors are logged and reported as a miss.
func (pc *PreviewCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("preview cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("preview cache hit", "key", key)
	return val, true
}

// Set stores rendered markup with the configured TTL.
func (pc *PreviewCache) Set(ctx context.Context, key string, html []byte) {
	if err := pc.client.Set(ctx, key, html, pc.ttl).Err(); err != nil {
		slog.Warn("preview cache set error", "key", key, "error", err)
	}
}

// InvalidateUser removes every cached preview of a user by scanning for
// the user's prefix. Called after the brand profile changes.
func (pc *PreviewCache) InvalidateUser(ctx context.Context, userID string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, previewKeyPrefix+userID+":*", 100).Result()
		if err != nil {
			slog.Warn("preview cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("preview cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("preview cache invalidated", "user_id", userID, "deleted", deleted)
	}
}
