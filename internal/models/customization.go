// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Customizations are the per-asset overrides a user supplies when
// generating a document. Every field is optional. An empty string does not
// override anything, but a decoded empty string is still encoded again so
// the stored copy keeps the keys the client sent. Services is nil unless
// the client sent a list (an explicit empty list suppresses the brand's
// services).
type Customizations struct {
	PrimaryColor   string
	SecondaryColor string
	Tagline        string
	Variation      string
	Services       []Service

	Extra map[string]json.RawMessage

	// supplied holds the string keys present in the decoded input.
	supplied map[string]bool
}

var customizationStrings = []string{"primaryColor", "secondaryColor", "tagline", "variation"}

// UnmarshalJSON decodes customizations and keeps unknown keys.
func (c *Customizations) UnmarshalJSON(data []byte) error {
	var out Customizations
	extra, err := decodeFields(data, map[string]any{
		"primaryColor":   &out.PrimaryColor,
		"secondaryColor": &out.SecondaryColor,
		"tagline":        &out.Tagline,
		"variation":      &out.Variation,
		"services":       &out.Services,
	})
	if err != nil {
		return fmt.Errorf("customizations: %w", err)
	}
	out.Extra = extra

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("customizations: %w", err)
	}
	for _, k := range customizationStrings {
		if v, ok := keys[k]; ok && string(bytes.TrimSpace(v)) != "null" {
			if out.supplied == nil {
				out.supplied = make(map[string]bool)
			}
			out.supplied[k] = true
		}
	}
	*c = out
	return nil
}

// MarshalJSON encodes exactly the keys that were supplied: non-empty
// fields plus any string key that was present when decoded.
func (c Customizations) MarshalJSON() ([]byte, error) {
	fields := map[string]any{}
	for k, v := range map[string]string{
		"primaryColor":   c.PrimaryColor,
		"secondaryColor": c.SecondaryColor,
		"tagline":        c.Tagline,
		"variation":      c.Variation,
	} {
		if v != "" || c.supplied[k] {
			fields[k] = v
		}
	}
	if c.Services != nil {
		fields["services"] = c.Services
	}
	return encodeFields(fields, c.Extra)
}
