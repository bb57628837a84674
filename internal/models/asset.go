// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Asset is one generated (or still pending) document for a user. There is
// at most one row per (UserID, AssetType). FilePath stays nil until the
// document has been rendered at least once and is never serialized: callers
// download through the asset ID instead.
type Asset struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	AssetType  string     `json:"assetType"`
	FileName   string     `json:"fileName"`
	FilePath   *string    `json:"-"`
	FileSize   int64      `json:"fileSize"`
	CustomData CustomData `json:"customData"`
	Downloads  int        `json:"downloads"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// IsGenerated returns true once a rendered artifact exists for the asset.
func (a *Asset) IsGenerated() bool {
	return a.FilePath != nil && *a.FilePath != ""
}

// CustomData is the JSON bag stored with every asset. Placeholder rows
// carry only the catalog fields and the brand snapshot; generated rows add
// GeneratedAt and LastCustomization. Keys written by older versions or
// other tools are kept in Extra and survive every merge.
type CustomData struct {
	Category          string
	Title             string
	Description       string
	GeneratedAt       *time.Time
	LastCustomization *Customizations
	BrandSnapshot     *BrandSnapshot

	Extra map[string]json.RawMessage
}

// Clone returns a copy that shares no maps with c.
func (c CustomData) Clone() CustomData {
	out := c
	out.Extra = cloneExtra(c.Extra)
	return out
}

// UnmarshalJSON decodes the bag and keeps unknown keys.
func (c *CustomData) UnmarshalJSON(data []byte) error {
	var out CustomData
	extra, err := decodeFields(data, map[string]any{
		"category":          &out.Category,
		"title":             &out.Title,
		"description":       &out.Description,
		"generatedAt":       &out.GeneratedAt,
		"lastCustomization": &out.LastCustomization,
		"brandSnapshot":     &out.BrandSnapshot,
	})
	if err != nil {
		return fmt.Errorf("custom data: %w", err)
	}
	out.Extra = extra
	*c = out
	return nil
}

// MarshalJSON encodes the set fields plus extras.
func (c CustomData) MarshalJSON() ([]byte, error) {
	fields := map[string]any{}
	putString(fields, "category", c.Category)
	putString(fields, "title", c.Title)
	putString(fields, "description", c.Description)
	if c.GeneratedAt != nil {
		fields["generatedAt"] = c.GeneratedAt.UTC().Format(time.RFC3339Nano)
	}
	if c.LastCustomization != nil {
		fields["lastCustomization"] = c.LastCustomization
	}
	if c.BrandSnapshot != nil {
		fields["brandSnapshot"] = c.BrandSnapshot
	}
	return encodeFields(fields, c.Extra)
}
