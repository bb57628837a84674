// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ColorPalette holds the brand colours chosen in the wizard.
type ColorPalette struct {
	Name      string `json:"name,omitempty"`
	Primary   string `json:"primary,omitempty"`
	Accent    string `json:"accent,omitempty"`
	Secondary string `json:"secondary,omitempty"`
}

// IsZero reports whether no palette colour has been set.
func (p ColorPalette) IsZero() bool {
	return p == ColorPalette{}
}

// Price is a service price. Clients send it either as a JSON string or a
// JSON number; both are kept as their textual form.
type Price string

// UnmarshalJSON accepts "120", 120 and 120.5.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price must be a string or number")
	}
	*p = Price(n.String())
	return nil
}

// Service is one offering listed on generated documents. Keys the client
// sends beyond the known ones are kept in Extra and written back unchanged.
type Service struct {
	Type  string
	Label string
	Name  string
	Price Price
	Extra map[string]json.RawMessage
}

// DisplayLabel returns the label shown on documents, falling back through
// label, name and type.
func (s Service) DisplayLabel() string {
	switch {
	case s.Label != "":
		return s.Label
	case s.Name != "":
		return s.Name
	case s.Type != "":
		return s.Type
	default:
		return "Service"
	}
}

// UnmarshalJSON decodes a service entry and keeps unknown keys.
func (s *Service) UnmarshalJSON(data []byte) error {
	var out Service
	extra, err := decodeFields(data, map[string]any{
		"type":  &out.Type,
		"label": &out.Label,
		"name":  &out.Name,
		"price": &out.Price,
	})
	if err != nil {
		return fmt.Errorf("service: %w", err)
	}
	out.Extra = extra
	*s = out
	return nil
}

// MarshalJSON encodes only the fields that are set, plus extras.
func (s Service) MarshalJSON() ([]byte, error) {
	fields := map[string]any{}
	putString(fields, "type", s.Type)
	putString(fields, "label", s.Label)
	putString(fields, "name", s.Name)
	putString(fields, "price", string(s.Price))
	return encodeFields(fields, s.Extra)
}

// BrandSnapshot is the brand profile a user builds in the wizard. The
// rendering engine only reads it. Keys without a dedicated field survive
// a decode/encode round trip through Extra.
type BrandSnapshot struct {
	// Contact
	FullName     string
	BusinessName string
	Email        string
	Phone        string
	Website      string
	Instagram    string
	LinkedIn     string
	Location     string

	// Visuals
	ColorPalette ColorPalette
	Logo         string
	Photo        string

	// Positioning
	OneLine            string
	SignatureTechnique string
	UniquePositioning  string

	// Services is nil when the brand has never listed any.
	Services []Service

	Extra map[string]json.RawMessage
}

// UnmarshalJSON decodes the brand profile and keeps unknown keys.
func (b *BrandSnapshot) UnmarshalJSON(data []byte) error {
	var out BrandSnapshot
	extra, err := decodeFields(data, map[string]any{
		"fullName":           &out.FullName,
		"businessName":       &out.BusinessName,
		"email":              &out.Email,
		"phone":              &out.Phone,
		"website":            &out.Website,
		"instagram":          &out.Instagram,
		"linkedin":           &out.LinkedIn,
		"location":           &out.Location,
		"colorPalette":       &out.ColorPalette,
		"logo":               &out.Logo,
		"photo":              &out.Photo,
		"oneLine":            &out.OneLine,
		"signatureTechnique": &out.SignatureTechnique,
		"uniquePositioning":  &out.UniquePositioning,
		"services":           &out.Services,
	})
	if err != nil {
		return fmt.Errorf("brand: %w", err)
	}
	out.Extra = extra
	*b = out
	return nil
}

// MarshalJSON encodes set fields plus extras. An empty snapshot encodes as {}.
func (b BrandSnapshot) MarshalJSON() ([]byte, error) {
	fields := map[string]any{}
	putString(fields, "fullName", b.FullName)
	putString(fields, "businessName", b.BusinessName)
	putString(fields, "email", b.Email)
	putString(fields, "phone", b.Phone)
	putString(fields, "website", b.Website)
	putString(fields, "instagram", b.Instagram)
	putString(fields, "linkedin", b.LinkedIn)
	putString(fields, "location", b.Location)
	if !b.ColorPalette.IsZero() {
		fields["colorPalette"] = b.ColorPalette
	}
	putString(fields, "logo", b.Logo)
	putString(fields, "photo", b.Photo)
	putString(fields, "oneLine", b.OneLine)
	putString(fields, "signatureTechnique", b.SignatureTechnique)
	putString(fields, "uniquePositioning", b.UniquePositioning)
	if b.Services != nil {
		fields["services"] = b.Services
	}
	return encodeFields(fields, b.Extra)
}
