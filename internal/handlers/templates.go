// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"brandkit/internal/catalog"
)

// Templates serves the template catalog.
type Templates struct {
	catalog *catalog.Catalog
}

// NewTemplates creates the catalog handler.
func NewTemplates(c *catalog.Catalog) *Templates {
	return &Templates{catalog: c}
}

type templatesResponse struct {
	Success    bool            `json:"success"`
	Count      int             `json:"count"`
	Categories []catalog.Group `json:"categories"`
}

// List returns every template grouped by category, in catalog order.
func (h *Templates) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, templatesResponse{
		Success:    true,
		Count:      h.catalog.Len(),
		Categories: h.catalog.Grouped(),
	})
}
