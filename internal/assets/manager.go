// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assets manages the lifecycle of a user's brand documents: bulk
// initialization of placeholder rows, generation (render, convert, store,
// upsert), listing and download. It owns the merge and upsert policy; the
// stores, the PDF backend and the preview cache are injected.
//
// An asset moves from placeholder (no file) to generated on its first
// generation and stays generated. Each regeneration writes a new artifact,
// replaces the stored customizations wholesale and keeps the row's id,
// creation time and download count.
package assets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"brandkit/internal/catalog"
	"brandkit/internal/engine"
	"brandkit/internal/models"
	"brandkit/internal/pdf"
	"brandkit/internal/storage"
	"brandkit/internal/store"
)

// UserStore resolves users and their brand profiles.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	MergeBrand(ctx context.Context, id uuid.UUID, patch json.RawMessage) (*models.User, error)
}

// RecordStore persists asset rows. Lookups return (nil, nil) on a miss and
// Create returns store.ErrDuplicate when the (user, asset type) pair exists.
type RecordStore interface {
	FindOne(ctx context.Context, userID uuid.UUID, assetType string) (*models.Asset, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]models.Asset, error)
	Create(ctx context.Context, userID uuid.UUID, assetType string, f store.AssetFields) (*models.Asset, error)
	Update(ctx context.Context, id uuid.UUID, f store.AssetFields) (*models.Asset, error)
	IncrementDownloads(ctx context.Context, id uuid.UUID) (bool, error)
}

// ArtifactStore saves and reads rendered documents.
type ArtifactStore interface {
	Save(ctx context.Context, data []byte, fileName, userID string) (storage.File, error)
	Read(ctx context.Context, filePath string) ([]byte, error)
}

// Backend converts markup into document bytes.
type Backend interface {
	Render(ctx context.Context, markup string, opts pdf.PageOptions) ([]byte, error)
}

// PreviewCache stores rendered preview markup. Optional.
type PreviewCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, html []byte)
	InvalidateUser(ctx context.Context, userID string)
}

// PreviewKeyFunc builds a preview cache key from a user, an asset type
// and the encoded render inputs.
type PreviewKeyFunc func(userID, assetType string, parts ...[]byte) string

// View is an asset as returned to callers: the stored record plus the
// path it can be downloaded from. The storage path is never exposed.
type View struct {
	models.Asset
	DownloadURL string `json:"downloadUrl"`
}

// DownloadURL returns the download path for an asset id.
func DownloadURL(id uuid.UUID) string {
	return "/api/assets/download/" + id.String()
}

func newView(a models.Asset) View {
	return View{Asset: a, DownloadURL: DownloadURL(a.ID)}
}

func newViews(list []models.Asset) []View {
	out := make([]View, 0, len(list))
	for _, a := range list {
		out = append(out, newView(a))
	}
	return out
}

// File is a downloaded artifact.
type File struct {
	Data     []byte
	FileName string
}

// Deps are the collaborators a Manager needs. Previews and PreviewKey may
// be nil, which disables preview caching.
type Deps struct {
	Catalog    *catalog.Catalog
	Engine     *engine.Engine
	Users      UserStore
	Records    RecordStore
	Artifacts  ArtifactStore
	Backend    Backend
	Previews   PreviewCache
	PreviewKey PreviewKeyFunc
	Now        func() time.Time
}

// Manager runs asset operations. It holds no per-call state and is safe
// for concurrent use.
type Manager struct {
	catalog    *catalog.Catalog
	engine     *engine.Engine
	users      UserStore
	records    RecordStore
	artifacts  ArtifactStore
	backend    Backend
	previews   PreviewCache
	previewKey PreviewKeyFunc
	now        func() time.Time
}

// New creates a Manager. Catalog and Engine default to the built-in ones.
func New(d Deps) *Manager {
	m := &Manager{
		catalog:    d.Catalog,
		engine:     d.Engine,
		users:      d.Users,
		records:    d.Records,
		artifacts:  d.Artifacts,
		backend:    d.Backend,
		previews:   d.Previews,
		previewKey: d.PreviewKey,
		now:        d.Now,
	}
	if m.catalog == nil {
		m.catalog = catalog.Default()
	}
	if m.engine == nil {
		m.engine = engine.New()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.previewKey == nil {
		m.previews = nil
	}
	return m
}

// Catalog returns the template catalog the manager generates from.
func (m *Manager) Catalog() *catalog.Catalog { return m.catalog }

// definition resolves assetType or fails with ErrTemplateNotFound.
func (m *Manager) definition(assetType string) (*catalog.Definition, error) {
	def, ok := m.catalog.Lookup(assetType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, assetType)
	}
	return def, nil
}

// user loads a user or fails with ErrUserNotFound.
func (m *Manager) user(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := m.users.FindByID(ctx, id)
	if err != nil {
		return nil, storageErr("load user", err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, id)
	}
	return u, nil
}

// validateCustomizations checks the overrides against def before anything
// is rendered or written.
func validateCustomizations(def *catalog.Definition, c models.Customizations) error {
	if c.PrimaryColor != "" && !engine.IsHexColor(c.PrimaryColor) {
		return &ValidationError{Field: "customizations.primaryColor", Message: "must be a hex colour such as #0B2545"}
	}
	if c.SecondaryColor != "" && !engine.IsHexColor(c.SecondaryColor) {
		return &ValidationError{Field: "customizations.secondaryColor", Message: "must be a hex colour such as #3ABAB4"}
	}
	if c.Variation != "" {
		if _, ok := def.Variation(c.Variation); !ok {
			return &ValidationError{
				Field:   "customizations.variation",
				Message: fmt.Sprintf("%q is not offered for %s", c.Variation, def.AssetType),
			}
		}
	}
	return nil
}

// Generate renders templateID for userID with cust, stores the document and
// upserts the user's row for that template. Rendering backend failures are
// returned unchanged; store failures come back as *StorageError.
func (m *Manager) Generate(ctx context.Context, templateID string, userID uuid.UUID, cust models.Customizations) (*View, error) {
	def, err := m.definition(templateID)
	if err != nil {
		return nil, err
	}
	if err := validateCustomizations(def, cust); err != nil {
		return nil, err
	}

	u, err := m.user(ctx, userID)
	if err != nil {
		return nil, err
	}

	existing, err := m.records.FindOne(ctx, userID, def.AssetType)
	if err != nil {
		return nil, storageErr("find asset", err)
	}

	markup, err := m.engine.Render(def, u.Brand, cust)
	if err != nil {
		slog.Error("asset render failed", "op", "render markup", "user_id", userID, "asset_type", def.AssetType, "error", err)
		return nil, err
	}

	doc, err := m.backend.Render(ctx, markup, def.Page)
	if err != nil {
		slog.Error("asset render failed", "op", "convert document", "user_id", userID, "asset_type", def.AssetType, "error", err)
		return nil, err
	}

	saved, err := m.artifacts.Save(ctx, doc, def.OutputFileName, userID.String())
	if err != nil {
		return nil, storageErr("save artifact", err)
	}

	fields := func(base *models.Asset) store.AssetFields {
		return store.AssetFields{
			FileName:   saved.FileName,
			FilePath:   &saved.FilePath,
			FileSize:   saved.FileSize,
			CustomData: m.generatedData(base, def, u.Brand, cust),
		}
	}

	a, err := m.upsert(ctx, userID, def.AssetType, existing, fields)
	if err != nil {
		return nil, storageErr("save asset record", err)
	}

	slog.Info("asset generated",
		"user_id", userID,
		"asset_type", def.AssetType,
		"asset_id", a.ID,
		"file_size", a.FileSize,
		"regenerated", existing != nil,
	)
	v := newView(*a)
	return &v, nil
}

// generatedData shallow-merges the generation fields over the custom data
// of base (nil for a new row). lastCustomization is replaced, not merged.
func (m *Manager) generatedData(base *models.Asset, def *catalog.Definition, brand models.BrandSnapshot, cust models.Customizations) models.CustomData {
	var data models.CustomData
	if base != nil {
		data = base.CustomData.Clone()
	}
	now := m.now().UTC()
	data.Category = string(def.Category)
	data.Title = def.Title
	data.Description = def.Description
	data.GeneratedAt = &now
	data.LastCustomization = &cust
	data.BrandSnapshot = &brand
	return data
}

// upsert updates existing in place or creates a new row. A create that
// loses a race against a concurrent one falls back to updating the row
// that won.
func (m *Manager) upsert(ctx context.Context, userID uuid.UUID, assetType string, existing *models.Asset, fields func(*models.Asset) store.AssetFields) (*models.Asset, error) {
	if existing != nil {
		a, err := m.records.Update(ctx, existing.ID, fields(existing))
		if err != nil || a != nil {
			return a, err
		}
		// Row vanished between lookup and update.
	}

	a, err := m.records.Create(ctx, userID, assetType, fields(nil))
	if !errors.Is(err, store.ErrDuplicate) {
		return a, err
	}

	winner, err := m.records.FindOne(ctx, userID, assetType)
	if err != nil {
		return nil, err
	}
	if winner == nil {
		return nil, fmt.Errorf("asset %s for user %s disappeared after duplicate insert", assetType, userID)
	}
	a, err = m.records.Update(ctx, winner.ID, fields(winner))
	if err == nil && a == nil {
		return nil, fmt.Errorf("asset %s disappeared during update", winner.ID)
	}
	return a, err
}

// Download returns the stored document of an asset and counts the
// download. Nothing is counted when the read fails.
func (m *Manager) Download(ctx context.Context, assetID uuid.UUID) (*File, error) {
	a, err := m.records.FindByID(ctx, assetID)
	if err != nil {
		return nil, storageErr("find asset", err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, assetID)
	}
	if !a.IsGenerated() {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotGenerated, assetID)
	}

	data, err := m.artifacts.Read(ctx, *a.FilePath)
	if err != nil {
		return nil, storageErr("read artifact", err)
	}

	ok, err := m.records.IncrementDownloads(ctx, assetID)
	if err != nil {
		return nil, storageErr("count download", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, assetID)
	}

	slog.Info("asset downloaded", "asset_id", assetID, "asset_type", a.AssetType, "bytes", len(data))
	return &File{Data: data, FileName: a.FileName}, nil
}

// InitializeAll creates one placeholder row per catalog template for a
// user who has none yet. If the user already has any asset, the existing
// list is returned, nothing is written and created is false. Rows created
// before a failure are not rolled back.
func (m *Manager) InitializeAll(ctx context.Context, userID uuid.UUID) (views []View, created bool, err error) {
	u, err := m.user(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	existing, err := m.records.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, false, storageErr("list assets", err)
	}
	if len(existing) > 0 {
		slog.Info("assets already initialized", "user_id", userID, "count", len(existing))
		return newViews(existing), false, nil
	}

	brand := u.Brand
	defs := m.catalog.All()
	rows := make([]models.Asset, 0, len(defs))
	raced := false
	for _, def := range defs {
		a, err := m.records.Create(ctx, userID, def.AssetType, store.AssetFields{
			CustomData: models.CustomData{
				Category:      string(def.Category),
				Title:         def.Title,
				Description:   def.Description,
				BrandSnapshot: &brand,
			},
		})
		if errors.Is(err, store.ErrDuplicate) {
			// A concurrent initialization or generation got there first.
			raced = true
			continue
		}
		if err != nil {
			return nil, false, storageErr("create placeholder "+def.AssetType, err)
		}
		rows = append(rows, *a)
	}

	if raced {
		all, err := m.records.FindAllByUser(ctx, userID)
		if err != nil {
			return nil, false, storageErr("list assets", err)
		}
		rows = all
	}

	slog.Info("assets initialized", "user_id", userID, "count", len(rows))
	return newViews(rows), true, nil
}

// List returns every asset of a user.
func (m *Manager) List(ctx context.Context, userID uuid.UUID) ([]View, error) {
	if _, err := m.user(ctx, userID); err != nil {
		return nil, err
	}
	list, err := m.records.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, storageErr("list assets", err)
	}
	return newViews(list), nil
}

// Preview renders templateID for userID without converting or storing
// anything. Results are cached when a preview cache is configured.
func (m *Manager) Preview(ctx context.Context, templateID string, userID uuid.UUID, cust models.Customizations) (string, error) {
	def, err := m.definition(templateID)
	if err != nil {
		return "", err
	}
	if err := validateCustomizations(def, cust); err != nil {
		return "", err
	}
	u, err := m.user(ctx, userID)
	if err != nil {
		return "", err
	}

	var key string
	if m.previews != nil {
		brandJSON, err1 := json.Marshal(u.Brand)
		custJSON, err2 := json.Marshal(cust)
		if err := errors.Join(err1, err2); err == nil {
			key = m.previewKey(userID.String(), def.AssetType, brandJSON, custJSON)
			if html, ok := m.previews.Get(ctx, key); ok {
				return string(html), nil
			}
		}
	}

	markup, err := m.engine.Render(def, u.Brand, cust)
	if err != nil {
		return "", err
	}
	if key != "" {
		m.previews.Set(ctx, key, []byte(markup))
	}
	return markup, nil
}

// GetBrand returns a user with their brand profile.
func (m *Manager) GetBrand(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return m.user(ctx, userID)
}

// SaveBrand shallow-merges patch into the user's brand profile: keys in
// patch replace stored keys, other stored keys are kept. patch must be a
// JSON object whose known keys have the right types.
func (m *Manager) SaveBrand(ctx context.Context, userID uuid.UUID, patch json.RawMessage) (*models.User, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(patch, &probe); err != nil || probe == nil {
		return nil, &ValidationError{Field: "brandData", Message: "must be a JSON object"}
	}
	var typed models.BrandSnapshot
	if err := json.Unmarshal(patch, &typed); err != nil {
		return nil, &ValidationError{Field: "brandData", Message: "has an invalid shape"}
	}

	u, err := m.users.MergeBrand(ctx, userID, patch)
	if err != nil {
		return nil, storageErr("save brand", err)
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, userID)
	}

	if m.previews != nil {
		m.previews.InvalidateUser(ctx, userID.String())
	}
	slog.Info("brand saved", "user_id", userID, "keys", len(probe))
	return u, nil
}
