// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"brandkit/internal/models"
)

// DemoEmail identifies the development user created by Seed.
const DemoEmail = "demo@brandkit.local"

// demoBrand is the brand profile given to the demo user so every template
// renders with realistic content.
const demoBrand = `{
	"fullName": "Ana Breath",
	"businessName": "Breathe Studio",
	"email": "hello@breathe.example",
	"phone": "+40 700 000 000",
	"website": "https://breathe.example",
	"instagram": "@breathe.studio",
	"colorPalette": {"name": "Ocean", "primary": "#0B2545", "accent": "#3ABAB4"},
	"oneLine": "Guided breathwork for calmer, clearer days",
	"signatureTechnique": "Conscious Connected Breathing",
	"services": [
		{"type": "private", "label": "1:1 Session", "price": "90"},
		{"type": "group", "label": "Group Circle", "price": 35}
	]
}`

// UserCreator creates a user with a brand profile.
type UserCreator interface {
	Create(ctx context.Context, email string, brand models.BrandSnapshot) (*models.User, error)
}

// Seed populates the database with initial development data.
// It creates a demo user with a complete brand profile if no users exist.
func Seed(ctx context.Context, db *sql.DB, users UserCreator) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	var brand models.BrandSnapshot
	if err := json.Unmarshal([]byte(demoBrand), &brand); err != nil {
		return fmt.Errorf("seed parse demo brand: %w", err)
	}

	u, err := users.Create(ctx, DemoEmail, brand)
	if err != nil {
		return fmt.Errorf("seed insert demo user: %w", err)
	}

	slog.Info("database seeded with demo user", "email", DemoEmail, "user_id", u.ID)
	return nil
}
