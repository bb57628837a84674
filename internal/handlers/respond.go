// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers adapts the asset manager to a JSON HTTP API. Handlers
// validate ids and body shape at the boundary, call one manager operation
// and translate its errors into status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"brandkit/internal/assets"
	"brandkit/internal/pdf"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// writeJSON sends a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError sends {"success": false, "error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Success: false, Error: msg})
}

// errorStatus maps a manager error to an HTTP status and a message safe to
// show the caller. Storage and unexpected failures hide their cause.
func errorStatus(err error) (int, string) {
	var (
		verr *assets.ValidationError
		serr *assets.StorageError
	)
	switch {
	case errors.Is(err, assets.ErrTemplateNotFound):
		return http.StatusNotFound, "Unknown asset template"
	case errors.Is(err, assets.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, assets.ErrAssetNotFound):
		return http.StatusNotFound, "Asset not found"
	case errors.Is(err, assets.ErrAssetNotGenerated):
		return http.StatusConflict, "Asset has not been generated yet"
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case pdf.IsBackendError(err):
		return http.StatusBadGateway, "Document rendering failed"
	case errors.As(err, &serr):
		return http.StatusInternalServerError, "Storage failure"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// fail logs err when it is a server-side failure and writes the mapped
// error response.
func fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error(op+" failed", "error", err, "path", r.URL.Path, "status", status)
	}
	writeError(w, status, msg)
}
