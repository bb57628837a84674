// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an instructor who owns a brand profile and a set of assets.
// Account creation and code redemption happen outside this service.
type User struct {
	ID        uuid.UUID     `json:"id"`
	Email     string        `json:"email"`
	Brand     BrandSnapshot `json:"brandData"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
