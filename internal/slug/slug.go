// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug derives the lowercase hyphenated identifiers used for theme
// ids and category slugs. Accented letters are folded to their base letter
// so "Café Noir" and "Cafe Noir" name the same theme.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength caps a slug in bytes. Theme ids travel in request bodies and
// cache keys, so they stay short.
const MaxLength = 64

// Generate builds a slug from s: accents are folded, letters and digits are
// kept in lower case and every other run of characters becomes one hyphen.
// Results longer than MaxLength are cut at the last hyphen that fits.
// Example: "Ünïcode Théme #2" → "unicode-theme-2".
func Generate(s string) string {
	folded, _, err := transform.String(foldAccents(), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	pending := false
	for _, r := range folded {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		pending = true
	}
	return limit(b.String())
}

// Valid reports whether s is already a slug: non-empty, at most MaxLength
// bytes, lower-case ASCII letters and digits separated by single hyphens.
func Valid(s string) bool {
	if s == "" || len(s) > MaxLength || s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		case c == '-' && s[i-1] != '-':
		default:
			return false
		}
	}
	return true
}

// foldAccents decomposes characters and drops the combining marks.
func foldAccents() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func limit(s string) string {
	if len(s) <= MaxLength {
		return s
	}
	if s[MaxLength] == '-' {
		return s[:MaxLength]
	}
	s = s[:MaxLength]
	if i := strings.LastIndexByte(s, '-'); i > 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "-")
}
