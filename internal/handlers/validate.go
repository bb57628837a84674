// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Validation limits for request input.
const (
	maxBodyBytes    = 1 << 20
	maxTemplateID   = 64
	maxCustomString = 2_000
)

// validateID parses a path or body id and returns the first error found.
func validateID(field, raw string) (uuid.UUID, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, field + " is required"
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "Invalid " + field + " format"
	}
	return id, ""
}

// validateTemplateID checks the template path segment. Whether the id
// names a real template is decided by the catalog.
func validateTemplateID(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "templateId is required"
	}
	if utf8.RuneCountInString(raw) > maxTemplateID {
		return "templateId is too long (max 64 characters)"
	}
	return ""
}

// validateObject reports whether raw is absent, null or a JSON object.
// Absent and null are treated as an empty object.
func validateObject(field string, raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] != '{' {
		return field + " must be an object"
	}
	return ""
}

// validateCustomStrings caps the length of every top-level string value
// in a customizations object.
func validateCustomStrings(raw json.RawMessage) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	for k, v := range fields {
		var s string
		if json.Unmarshal(v, &s) == nil && utf8.RuneCountInString(s) > maxCustomString {
			return "customizations." + k + " is too long (max 2,000 characters)"
		}
	}
	return ""
}

// decodeBody reads a JSON request body into dst. The body is capped at
// maxBodyBytes; an empty body decodes as nothing.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) string {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return "Request body is too large"
		case errors.Is(err, io.EOF):
			return ""
		default:
			return "Request body must be a valid JSON object"
		}
	}
	return ""
}
