// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeFields unmarshals a JSON object into the given per-key targets and
// returns whatever keys were not claimed. A JSON null yields no fields and
// no extras. Keys holding null are treated as absent.
func decodeFields(data []byte, fields map[string]any) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	for key, target := range fields {
		v, ok := raw[key]
		if !ok {
			continue
		}
		delete(raw, key)
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(v, target); err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
	}

	if len(raw) == 0 {
		return nil, nil
	}
	return raw, nil
}

// encodeFields marshals known fields together with preserved extra keys.
// Known fields win over an extra key of the same name.
func encodeFields(fields map[string]any, extra map[string]json.RawMessage) ([]byte, error) {
	out := make(map[string]any, len(fields)+len(extra))
	for k, v := range extra {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return json.Marshal(out)
}

// cloneExtra copies an extras map so merged values never alias the source.
func cloneExtra(extra map[string]json.RawMessage) map[string]json.RawMessage {
	if extra == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(extra))
	for k, v := range extra {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

// putString adds s to fields under key when it is non-empty.
func putString(fields map[string]any, key, s string) {
	if s != "" {
		fields[key] = s
	}
}
