// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"brandkit/internal/assets"
	"brandkit/internal/models"
)

// Assets groups the asset lifecycle endpoints.
type Assets struct {
	manager *assets.Manager
}

// NewAssets creates the asset handler group.
func NewAssets(m *assets.Manager) *Assets {
	return &Assets{manager: m}
}

// userRequest is the body of initialize.
type userRequest struct {
	UserID string `json:"userId"`
}

// generateRequest is the body of generate and preview.
type generateRequest struct {
	UserID         string          `json:"userId"`
	Customizations json.RawMessage `json:"customizations"`
}

// assetResponse wraps a single asset.
type assetResponse struct {
	Success bool         `json:"success"`
	Asset   *assets.View `json:"asset"`
}

// assetsResponse wraps an asset list. Message is set by initialize.
type assetsResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Assets  []assets.View `json:"assets"`
}

// generateInput is a validated generate or preview request.
type generateInput struct {
	templateID     string
	userID         uuid.UUID
	customizations models.Customizations
}

// parseGenerate validates the template path segment and a generate or
// preview body. It returns a non-empty message on the first violation.
func parseGenerate(w http.ResponseWriter, r *http.Request) (generateInput, string) {
	var in generateInput
	in.templateID = chi.URLParam(r, "templateId")
	if msg := validateTemplateID(in.templateID); msg != "" {
		return in, msg
	}

	var req generateRequest
	if msg := decodeBody(w, r, &req); msg != "" {
		return in, msg
	}
	var msg string
	if in.userID, msg = validateID("userId", req.UserID); msg != "" {
		return in, msg
	}
	if msg := validateObject("customizations", req.Customizations); msg != "" {
		return in, msg
	}
	if len(req.Customizations) > 0 && string(req.Customizations) != "null" {
		if msg := validateCustomStrings(req.Customizations); msg != "" {
			return in, msg
		}
		if err := json.Unmarshal(req.Customizations, &in.customizations); err != nil {
			return in, "customizations has an invalid shape"
		}
	}
	return in, ""
}

// Initialize creates placeholder rows for every template the user does not
// have yet. Calling it again returns the existing rows.
func (h *Assets) Initialize(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if msg := decodeBody(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	userID, msg := validateID("userId", req.UserID)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	views, created, err := h.manager.InitializeAll(r.Context(), userID)
	if err != nil {
		fail(w, r, "initialize assets", err)
		return
	}

	message := "Assets already initialized"
	if created {
		message = fmt.Sprintf("Successfully initialized %d assets", len(views))
	}
	writeJSON(w, http.StatusOK, assetsResponse{Success: true, Message: message, Assets: views})
}

// Generate renders a template for a user and stores the document.
func (h *Assets) Generate(w http.ResponseWriter, r *http.Request) {
	in, msg := parseGenerate(w, r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	view, err := h.manager.Generate(r.Context(), in.templateID, in.userID, in.customizations)
	if err != nil {
		fail(w, r, "generate asset", err)
		return
	}
	writeJSON(w, http.StatusOK, assetResponse{Success: true, Asset: view})
}

// Preview renders a template to HTML without converting or storing it.
func (h *Assets) Preview(w http.ResponseWriter, r *http.Request) {
	in, msg := parseGenerate(w, r)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	markup, err := h.manager.Preview(r.Context(), in.templateID, in.userID, in.customizations)
	if err != nil {
		fail(w, r, "preview asset", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write([]byte(markup))
}

// List returns every asset of a user, newest first.
func (h *Assets) List(w http.ResponseWriter, r *http.Request) {
	userID, msg := validateID("userId", chi.URLParam(r, "userId"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	views, err := h.manager.List(r.Context(), userID)
	if err != nil {
		fail(w, r, "list assets", err)
		return
	}
	writeJSON(w, http.StatusOK, assetsResponse{Success: true, Assets: views})
}

// Download streams a generated document as an attachment and counts the
// download.
func (h *Assets) Download(w http.ResponseWriter, r *http.Request) {
	assetID, msg := validateID("assetId", chi.URLParam(r, "assetId"))
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	file, err := h.manager.Download(r.Context(), assetID)
	if err != nil {
		fail(w, r, "download asset", err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Write(file.Data)
}
