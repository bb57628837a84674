// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// cache.go keeps encoded QR codes in memory. The same website is encoded
// for every QR-enabled template a user generates, so the PNG is built once
// per distinct URL.
package engine

import (
	"encoding/base64"
	"html/template"
	"log/slog"
	"sync"

	qrcode "github.com/skip2/go-qrcode"
)

// qrCacheLimit bounds the number of distinct URLs kept.
const qrCacheLimit = 512

// qrSize is the PNG edge length in pixels.
const qrSize = 256

// qrCache is a concurrency-safe map of URL to PNG data URI.
type qrCache struct {
	mu      sync.RWMutex
	entries map[string]template.URL
}

func newQRCache() *qrCache {
	return &qrCache{entries: make(map[string]template.URL)}
}

// dataURI returns the QR code for content as a data: URI, or "" if it
// cannot be encoded.
func (c *qrCache) dataURI(content string) template.URL {
	c.mu.RLock()
	uri, ok := c.entries[content]
	c.mu.RUnlock()
	if ok {
		return uri
	}

	png, err := qrcode.Encode(content, qrcode.Medium, qrSize)
	if err != nil {
		slog.Warn("qr encode failed", "error", err)
		return ""
	}
	uri = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))

	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= qrCacheLimit {
		c.entries = make(map[string]template.URL)
		slog.Debug("qr cache cleared", "limit", qrCacheLimit)
	}
	c.entries[content] = uri
	return uri
}
