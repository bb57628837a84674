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
	"strings"

	"github.com/google/uuid"

	"brandkit/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, brand_data, created_at, updated_at`

func scanUser(scanner rowScanner) (*models.User, error) {
	var (
		u   models.User
		raw []byte
	)
	if err := scanner.Scan(&u.ID, &u.Email, &raw, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &u.Brand); err != nil {
			return nil, fmt.Errorf("decode brand_data for user %s: %w", u.ID, err)
		}
	}
	return &u, nil
}

// FindByID retrieves a user by their UUID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// Create inserts a new user with the given brand profile. Returns
// ErrDuplicate if the email is taken.
func (s *UserStore) Create(ctx context.Context, email string, brand models.BrandSnapshot) (*models.User, error) {
	data, err := json.Marshal(brand)
	if err != nil {
		return nil, fmt.Errorf("encode brand_data: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO users (email, brand_data)
		VALUES ($1, $2::jsonb)
		RETURNING `+userColumns,
		strings.ToLower(strings.TrimSpace(email)), string(data),
	)
	u, err := scanUser(row)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("create user %s: %w", email, ErrDuplicate)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// MergeBrand shallow-merges patch into the user's stored brand profile:
// top-level keys in patch replace stored ones, all other keys are kept.
// patch must be a JSON object. Returns nil if the user does not exist.
func (s *UserStore) MergeBrand(ctx context.Context, id uuid.UUID, patch json.RawMessage) (*models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE users
		SET brand_data = brand_data || $1::jsonb, updated_at = NOW()
		WHERE id = $2
		RETURNING `+userColumns,
		string(patch), id,
	)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("merge brand: %w", err)
	}
	return u, nil
}
