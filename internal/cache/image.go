// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// image.go caches rendered images in Valkey so repeated requests skip the
// database and the theme render.
package cache

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	imageKeyPrefix   = "og:image:"
	previewKeyPrefix = "og:preview:"

	// DefaultImageTTL is how long a rendered image stays cached.
	DefaultImageTTL = time.Hour

	// DefaultPreviewTTL is how long a preview render stays cached.
	DefaultPreviewTTL = 15 * time.Minute
)

// ImageCache stores rendered images under a key prefix. A nil *ImageCache,
// or one without a client, is a valid cache that never hits.
type ImageCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewImageCache creates the cache for published renders.
func NewImageCache(client *redis.Client, ttl time.Duration) *ImageCache {
	if ttl == 0 {
		ttl = DefaultImageTTL
	}
	return &ImageCache{client: client, prefix: imageKeyPrefix, ttl: ttl}
}

// NewPreviewCache creates the cache for preview renders.
func NewPreviewCache(client *redis.Client, ttl time.Duration) *ImageCache {
	if ttl == 0 {
		ttl = DefaultPreviewTTL
	}
	return &ImageCache{client: client, prefix: previewKeyPrefix, ttl: ttl}
}

func (c *ImageCache) enabled() bool {
	return c != nil && c.client != nil
}

// Get returns the cached image for key.
func (c *ImageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !c.enabled() {
		return nil, false
	}
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("image cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("image cache hit", "key", key)
	return val, true
}

// Set stores an image with the configured TTL.
func (c *ImageCache) Set(ctx context.Context, key string, data []byte) {
	if !c.enabled() {
		return
	}
	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		slog.Warn("image cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every key under the cache prefix.
func (c *ImageCache) InvalidateAll(ctx context.Context) int {
	if !c.enabled() {
		return 0
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("image cache scan error", "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("image cache bulk delete error", "error", err)
			} else {
				deleted += len(keys)
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("image cache cleared", "prefix", c.prefix, "deleted", deleted)
	}
	return deleted
}

// ItemKey returns the cache key for an item's image in the given format,
// e.g. "42.svg" or "home.png".
func ItemKey(itemID *int64, format string) string {
	return itemName(itemID) + "." + format
}

// PreviewKey returns the cache key for a preview of an item with the given
// settings fingerprint.
func PreviewKey(itemID *int64, fingerprint string) string {
	return itemName(itemID) + ":" + fingerprint
}

func itemName(itemID *int64) string {
	if itemID == nil {
		return "home"
	}
	return strconv.FormatInt(*itemID, 10)
}
