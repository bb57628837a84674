// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package pdf

import (
	"fmt"
	"strings"
)

// Margin sets page margins as CSS lengths ("20mm", "0.5in").
type Margin struct {
	Top    string `yaml:"top" json:"top"`
	Right  string `yaml:"right" json:"right"`
	Bottom string `yaml:"bottom" json:"bottom"`
	Left   string `yaml:"left" json:"left"`
}

// PageOptions controls the page layout of a converted document. A nil or
// empty field means "use the default".
type PageOptions struct {
	Format          string  `yaml:"format" json:"format,omitempty"`
	Landscape       *bool   `yaml:"landscape" json:"landscape,omitempty"`
	Margin          *Margin `yaml:"margin" json:"margin,omitempty"`
	PrintBackground *bool   `yaml:"printBackground" json:"printBackground,omitempty"`
}

// DefaultPageOptions returns A4, 20mm margins on every side, portrait,
// with background graphics printed.
func DefaultPageOptions() PageOptions {
	return PageOptions{
		Format:          "A4",
		Landscape:       boolPtr(false),
		Margin:          &Margin{Top: "20mm", Right: "20mm", Bottom: "20mm", Left: "20mm"},
		PrintBackground: boolPtr(true),
	}
}

// Merge returns base with every option key set in override replaced.
// Replacement is per key: an override margin replaces the whole margin,
// sides it leaves empty are not filled from base.
func Merge(base, override PageOptions) PageOptions {
	out := base
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.Landscape != nil {
		out.Landscape = boolPtr(*override.Landscape)
	}
	if override.Margin != nil {
		m := *override.Margin
		out.Margin = &m
	}
	if override.PrintBackground != nil {
		out.PrintBackground = boolPtr(*override.PrintBackground)
	}
	return out
}

// paperSize holds width and height in millimetres (portrait).
type paperSize struct {
	width, height string
}

// paperSizes lists the formats the converter accepts by name.
var paperSizes = map[string]paperSize{
	"A3":     {"297mm", "420mm"},
	"A4":     {"210mm", "297mm"},
	"A5":     {"148mm", "210mm"},
	"A6":     {"105mm", "148mm"},
	"LETTER": {"215.9mm", "279.4mm"},
	"LEGAL":  {"215.9mm", "355.6mm"},
}

// size resolves the paper dimensions for the options, honouring landscape.
func (o PageOptions) size() (width, height string, err error) {
	p, ok := paperSizes[strings.ToUpper(o.Format)]
	if !ok {
		return "", "", fmt.Errorf("unknown page format %q", o.Format)
	}
	if o.Landscape != nil && *o.Landscape {
		return p.height, p.width, nil
	}
	return p.width, p.height, nil
}

// ValidFormat reports whether name is a page format the backend can lay out.
func ValidFormat(name string) bool {
	_, ok := paperSizes[strings.ToUpper(name)]
	return ok
}

func boolPtr(b bool) *bool { return &b }
