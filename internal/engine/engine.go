// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine renders asset documents. Given a catalog definition, a
// brand snapshot and per-asset customizations it produces one
// self-contained HTML document ready for PDF conversion. Rendering does
// no I/O and is safe for concurrent use.
//
// Every value that reaches the document goes through html/template, so
// user text is escaped for the context it lands in.
package engine

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"brandkit/internal/catalog"
	"brandkit/internal/models"
)

// Fallbacks used when neither the customizations nor the brand set a value.
const (
	DefaultPrimaryColor = "#0B2545"
	DefaultAccentColor  = "#3ABAB4"
	DefaultTagline      = "Professional breathwork facilitation"
	DefaultAudience     = "Your Clients"
	DefaultHighlight    = "Professional, on-brand material created specifically for your breathwork practice."
)

//go:embed document.html
var documentHTML string

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether s is a #rgb or #rrggbb colour.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// ServiceLine is one entry in the services section.
type ServiceLine struct {
	Label string
	Price string
}

// DocumentData is everything the document template reads, already resolved.
type DocumentData struct {
	AssetType    string
	Variation    string
	Category     string
	Title        string
	Description  string
	Tagline      string
	PrimaryColor string
	AccentColor  string
	Logo         string
	Body         template.HTML // compiled catalog copy, trusted
	Audience     string
	Highlight    string
	Services     []ServiceLine
	Contacts     []string
	QRCode       template.URL // PNG data URI, empty when not shown
}

// Engine renders asset documents from a single compiled template.
type Engine struct {
	tmpl *template.Template
	qr   *qrCache
}

// New compiles the document template.
func New() *Engine {
	return &Engine{
		tmpl: template.Must(template.New("document").Parse(documentHTML)),
		qr:   newQRCache(),
	}
}

// Render produces the HTML document for def. Missing optional values fall
// back to documented defaults; an unknown variation id falls back to the
// template's first variation.
func (e *Engine) Render(def *catalog.Definition, brand models.BrandSnapshot, cust models.Customizations) (string, error) {
	data := e.Resolve(def, brand, cust)

	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", def.AssetType, err)
	}
	return buf.String(), nil
}

// Resolve applies the fallback chains and returns the values the document
// template is executed with.
func (e *Engine) Resolve(def *catalog.Definition, brand models.BrandSnapshot, cust models.Customizations) DocumentData {
	variation, ok := def.Variation(cust.Variation)
	if !ok {
		variation, _ = def.Variation("")
	}

	d := DocumentData{
		AssetType:    def.AssetType,
		Variation:    variation.ID,
		Category:     def.Category.Label(),
		Title:        def.Title,
		Description:  def.Description,
		Tagline:      firstNonEmpty(cust.Tagline, brand.OneLine, brand.SignatureTechnique, DefaultTagline),
		PrimaryColor: firstColor(DefaultPrimaryColor, cust.PrimaryColor, brand.ColorPalette.Primary),
		AccentColor:  firstColor(DefaultAccentColor, cust.SecondaryColor, brand.ColorPalette.Accent),
		Logo:         brand.Logo,
		Body:         template.HTML(def.BodyHTML),
		Audience:     firstNonEmpty(brand.FullName, DefaultAudience),
		Highlight:    firstNonEmpty(brand.UniquePositioning, brand.OneLine, DefaultHighlight),
		Services:     serviceLines(resolveServices(brand, cust)),
		Contacts:     contactLines(brand),
	}
	if def.QR && brand.Website != "" {
		d.QRCode = e.qr.dataURI(brand.Website)
	}
	return d
}

// resolveServices prefers the customization list whenever one was sent,
// even an empty one.
func resolveServices(brand models.BrandSnapshot, cust models.Customizations) []models.Service {
	if cust.Services != nil {
		return cust.Services
	}
	return brand.Services
}

func serviceLines(services []models.Service) []ServiceLine {
	if len(services) == 0 {
		return nil
	}
	out := make([]ServiceLine, 0, len(services))
	for _, s := range services {
		out = append(out, ServiceLine{Label: s.DisplayLabel(), Price: string(s.Price)})
	}
	return out
}

// contactLines lists the contact details that are present, in a fixed order.
func contactLines(b models.BrandSnapshot) []string {
	var out []string
	add := func(label, value string) {
		if value = strings.TrimSpace(value); value != "" {
			out = append(out, label+value)
		}
	}
	add("Email: ", b.Email)
	add("Phone: ", b.Phone)
	add("Website: ", b.Website)
	if handle := strings.TrimPrefix(strings.TrimSpace(b.Instagram), "@"); handle != "" {
		out = append(out, "Instagram: @"+handle)
	}
	add("LinkedIn: ", b.LinkedIn)
	return out
}

// firstNonEmpty returns the first value that was supplied. Whitespace is a
// supplied value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstColor returns the first candidate that is a valid hex colour, or def.
func firstColor(def string, candidates ...string) string {
	for _, c := range candidates {
		if IsHexColor(c) {
			return c
		}
	}
	return def
}
