// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the fixed registry of asset templates. The
// registry is read once from an embedded YAML file and never changes at
// runtime, so a *Catalog is safe to share between goroutines.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"brandkit/internal/markdown"
	"brandkit/internal/pdf"
	"brandkit/internal/slug"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Category groups templates in the consuming UI.
type Category string

const (
	CategoryPersonal     Category = "personal"
	CategoryClientFacing Category = "client-facing"
	CategoryCorporate    Category = "corporate"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryPersonal, CategoryClientFacing, CategoryCorporate}

func (c Category) valid() bool {
	for _, k := range Categories {
		if c == k {
			return true
		}
	}
	return false
}

// Label returns the badge text shown in a document header.
func (c Category) Label() string {
	switch c {
	case CategoryPersonal:
		return "Personal Brand"
	case CategoryClientFacing:
		return "Client Experience"
	case CategoryCorporate:
		return "Corporate Wellness"
	}
	return string(c)
}

// Variation is one visual style offered for a template.
type Variation struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Theme string `yaml:"theme" json:"theme"`
}

// DefaultVariation is offered by templates that list no variations.
var DefaultVariation = Variation{ID: "default", Name: "Default", Theme: "minimal"}

// Definition describes one asset template.
type Definition struct {
	AssetType      string          `yaml:"assetType" json:"assetType"`
	Category       Category        `yaml:"category" json:"category"`
	Title          string          `yaml:"title" json:"title"`
	Description    string          `yaml:"description" json:"description"`
	OutputFileName string          `yaml:"outputFileName" json:"outputFileName"`
	Variations     []Variation     `yaml:"variations" json:"variations"`
	Body           string          `yaml:"body" json:"-"`
	QR             bool            `yaml:"qr" json:"qr"`
	Page           pdf.PageOptions `yaml:"page" json:"page"`

	// BodyHTML is Body converted from Markdown at load time.
	BodyHTML string `yaml:"-" json:"-"`
}

// Variation returns the variation with the given id. An empty id selects
// the first one.
func (d *Definition) Variation(id string) (Variation, bool) {
	if id == "" {
		return d.Variations[0], true
	}
	for _, v := range d.Variations {
		if v.ID == id {
			return v, true
		}
	}
	return Variation{}, false
}

// Catalog is an ordered, immutable set of template definitions.
type Catalog struct {
	defs   []*Definition
	byType map[string]*Definition
}

type file struct {
	Templates []*Definition `yaml:"templates"`
}

// Parse reads a catalog from YAML and validates every entry.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(f.Templates) == 0 {
		return nil, fmt.Errorf("parse catalog: no templates")
	}

	c := &Catalog{byType: make(map[string]*Definition, len(f.Templates))}
	for i, d := range f.Templates {
		if err := validate(d); err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i, err)
		}
		if _, dup := c.byType[d.AssetType]; dup {
			return nil, fmt.Errorf("catalog entry %d: duplicate asset type %q", i, d.AssetType)
		}
		if len(d.Variations) == 0 {
			d.Variations = []Variation{DefaultVariation}
		}
		if d.Body != "" {
			html, err := markdown.ToHTML(d.Body)
			if err != nil {
				return nil, fmt.Errorf("catalog entry %q: body: %w", d.AssetType, err)
			}
			d.BodyHTML = html
		}
		c.defs = append(c.defs, d)
		c.byType[d.AssetType] = d
	}
	return c, nil
}

func validate(d *Definition) error {
	switch {
	case d == nil:
		return fmt.Errorf("empty entry")
	case d.AssetType == "":
		return fmt.Errorf("missing assetType")
	case !d.Category.valid():
		return fmt.Errorf("%s: unknown category %q", d.AssetType, d.Category)
	case d.Title == "":
		return fmt.Errorf("%s: missing title", d.AssetType)
	}

	if d.OutputFileName == "" {
		d.OutputFileName = slug.FileName(d.Title, ".pdf")
	}
	if !slug.IsFileName(d.OutputFileName, ".pdf") {
		return fmt.Errorf("%s: outputFileName %q is not a slug ending in .pdf", d.AssetType, d.OutputFileName)
	}
	if d.Page.Format != "" && !pdf.ValidFormat(d.Page.Format) {
		return fmt.Errorf("%s: unknown page format %q", d.AssetType, d.Page.Format)
	}

	seen := map[string]bool{}
	for _, v := range d.Variations {
		if v.ID == "" || seen[v.ID] {
			return fmt.Errorf("%s: variation ids must be unique and non-empty", d.AssetType)
		}
		seen[v.ID] = true
	}
	return nil
}

// Default returns the catalog compiled into the binary. It panics if the
// embedded file is invalid, which the package tests rule out.
func Default() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the definition for assetType. Only exact matches count.
func (c *Catalog) Lookup(assetType string) (*Definition, bool) {
	d, ok := c.byType[assetType]
	return d, ok
}

// All returns every definition in catalog order.
func (c *Catalog) All() []*Definition {
	out := make([]*Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Len reports the number of templates.
func (c *Catalog) Len() int { return len(c.defs) }

// Group is the set of templates under one category.
type Group struct {
	Category  Category      `json:"category"`
	Label     string        `json:"label"`
	Templates []*Definition `json:"templates"`
}

// Grouped returns the templates bucketed by category, categories in
// display order and templates in catalog order. Empty groups are omitted.
func (c *Catalog) Grouped() []Group {
	var groups []Group
	for _, cat := range Categories {
		g := Group{Category: cat, Label: cat.Label()}
		for _, d := range c.defs {
			if d.Category == cat {
				g.Templates = append(g.Templates, d)
			}
		}
		if len(g.Templates) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}
