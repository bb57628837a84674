// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"brandkit/internal/assets"
	"brandkit/internal/models"
)

// Brand groups the brand profile endpoints.
type Brand struct {
	manager *assets.Manager
}

// NewBrand creates the brand handler group.
func NewBrand(m *assets.Manager) *Brand {
	return &Brand{manager: m}
}

type brandRequest struct {
	BrandData json.RawMessage `json:"brandData"`
}

type brandUser struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type brandResponse struct {
	Success   bool                 `json:"success"`
	BrandData models.BrandSnapshot `json:"brandData"`
	User      *brandUser           `json:"user,omitempty"`
}

// Get returns a user's brand profile.
func (h *Brand) Get(w http.ResponseWriter, r *http.Request) {
	userID, msg := validateID("userId", chi.URLParam(r, "userId"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	u, err := h.manager.GetBrand(r.Context(), userID)
	if err != nil {
		fail(w, r, "get brand", err)
		return
	}
	writeJSON(w, http.StatusOK, brandResponse{
		Success:   true,
		BrandData: u.Brand,
		User:      &brandUser{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt},
	})
}

// Save merges the posted keys into a user's brand profile. Keys that are
// not posted keep their stored values.
func (h *Brand) Save(w http.ResponseWriter, r *http.Request) {
	userID, msg := validateID("userId", chi.URLParam(r, "userId"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	var req brandRequest
	if msg := decodeBody(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if len(req.BrandData) == 0 || string(req.BrandData) == "null" || validateObject("brandData", req.BrandData) != "" {
		writeError(w, http.StatusBadRequest, "brandData must be a valid object")
		return
	}

	u, err := h.manager.SaveBrand(r.Context(), userID, req.BrandData)
	if err != nil {
		fail(w, r, "save brand", err)
		return
	}
	writeJSON(w, http.StatusOK, brandResponse{Success: true, BrandData: u.Brand})
}
