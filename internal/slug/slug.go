// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns document titles into the lowercase, hyphenated names
// used for generated file names.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// separators become hyphens: whitespace, underscores, slashes, dots.
	separators = regexp.MustCompile(`[\s_/\\.]+`)
	// disallowed matches anything left that is not a letter, digit, or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// fallback names a file whose title has no usable characters.
const fallback = "document"

// foldAccents strips combining marks so "Café" becomes "Cafe".
func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Generate creates a slug from s.
// Example: "Café Crème: Pricing Sheet" → "cafe-creme-pricing-sheet"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(foldAccents(s)))
	result = separators.ReplaceAllString(result, "-")
	result = disallowed.ReplaceAllString(result, "")
	result = multipleHyphens.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// FileName returns the slug of title with ext appended. A title that
// slugs to nothing gives "document" + ext.
func FileName(title, ext string) string {
	s := Generate(title)
	if s == "" {
		s = fallback
	}
	return s + ext
}

// IsFileName reports whether name is a non-empty slug followed by ext.
func IsFileName(name, ext string) bool {
	base, ok := strings.CutSuffix(name, ext)
	return ok && base != "" && Generate(base) == base
}
