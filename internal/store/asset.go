// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"brandkit/internal/models"
)

// AssetStore handles all asset-related database operations.
type AssetStore struct {
	db *sql.DB
}

// NewAssetStore creates a new AssetStore with the given database connection.
func NewAssetStore(db *sql.DB) *AssetStore {
	return &AssetStore{db: db}
}

// assetColumns lists the columns selected in asset queries.
const assetColumns = `id, user_id, asset_type, file_name, file_path, file_size,
	custom_data, downloads, created_at, updated_at`

// scanAsset scans an asset row from the result set.
func scanAsset(scanner rowScanner) (*models.Asset, error) {
	var (
		a   models.Asset
		raw []byte
	)
	err := scanner.Scan(
		&a.ID, &a.UserID, &a.AssetType, &a.FileName, &a.FilePath, &a.FileSize,
		&raw, &a.Downloads, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &a.CustomData); err != nil {
			return nil, fmt.Errorf("decode custom_data for asset %s: %w", a.ID, err)
		}
	}
	return &a, nil
}

// AssetFields are the columns written by Create and Update. A nil
// FilePath stores NULL, marking a placeholder that has not been rendered.
type AssetFields struct {
	FileName   string
	FilePath   *string
	FileSize   int64
	CustomData models.CustomData
}

// Create inserts a new asset row for (userID, assetType). Returns
// ErrDuplicate if the user already has a row for that asset type.
func (s *AssetStore) Create(ctx context.Context, userID uuid.UUID, assetType string, f AssetFields) (*models.Asset, error) {
	data, err := json.Marshal(f.CustomData)
	if err != nil {
		return nil, fmt.Errorf("encode custom_data: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO assets (user_id, asset_type, file_name, file_path, file_size, custom_data)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)
		RETURNING `+assetColumns,
		userID, assetType, f.FileName, f.FilePath, f.FileSize, string(data),
	)
	a, err := scanAsset(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("create asset %s for user %s: %w", assetType, userID, ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("create asset: %w", err)
	}
	return a, nil
}

// Update overwrites the file fields and custom data of an existing asset.
// id, user, asset type, downloads and created_at are left untouched.
// Returns nil if the row no longer exists.
func (s *AssetStore) Update(ctx context.Context, id uuid.UUID, f AssetFields) (*models.Asset, error) {
	data, err := json.Marshal(f.CustomData)
	if err != nil {
		return nil, fmt.Errorf("encode custom_data: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE assets
		SET file_name = $1, file_path = $2, file_size = $3,
			custom_data = $4::jsonb, updated_at = NOW()
		WHERE id = $5
		RETURNING `+assetColumns,
		f.FileName, f.FilePath, f.FileSize, string(data), id,
	)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update asset: %w", err)
	}
	return a, nil
}

// FindByID retrieves a single asset by its UUID.
func (s *AssetStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Asset, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find asset by id: %w", err)
	}
	return a, nil
}

// FindOne retrieves the asset a user holds for one asset type.
func (s *AssetStore) FindOne(ctx context.Context, userID uuid.UUID, assetType string) (*models.Asset, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+assetColumns+`
		FROM assets WHERE user_id = $1 AND asset_type = $2
	`, userID, assetType)
	a, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find asset: %w", err)
	}
	return a, nil
}

// FindAllByUser returns every asset of a user, newest first.
func (s *AssetStore) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]models.Asset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+assetColumns+`
		FROM assets
		WHERE user_id = $1
		ORDER BY created_at DESC, asset_type
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	var items []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// IncrementDownloads adds one to the download counter. Returns false if
// the asset does not exist.
func (s *AssetStore) IncrementDownloads(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE assets SET downloads = downloads + 1, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("increment downloads: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("increment downloads: %w", err)
	}
	return n == 1, nil
}
