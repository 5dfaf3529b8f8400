// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markup holds the small text helpers shared by every theme:
// XML escaping, length-capped truncation and greedy word wrapping.
// All lengths are counted in runes so multi-byte titles are measured
// the way a reader sees them.
package markup

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// entityRef matches a well-formed entity or character reference at the
// start of the input. Such references are left alone by Escape.
var entityRef = regexp.MustCompile(`^&(?:[A-Za-z][A-Za-z0-9]*|#[0-9]+|#[xX][0-9A-Fa-f]+);`)

// Escape makes text safe for SVG element content and attribute values.
// An ampersand that already starts an entity reference is kept as is, so
// escaping an escaped string is a no-op. Invalid UTF-8 and characters XML
// does not allow are replaced with U+FFFD.
func Escape(s string) string {
	s = Clean(s)
	if !strings.ContainsAny(s, `&<>"'`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 16)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '&':
			if loc := entityRef.FindStringIndex(s[i:]); loc != nil && validRef(s[i:i+loc[1]]) {
				b.WriteString(s[i : i+loc[1]])
				i += loc[1] - 1
				continue
			}
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\'':
			b.WriteString("&apos;")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Clean returns s as valid UTF-8 holding only characters allowed in XML 1.0.
func Clean(s string) string {
	s = strings.ToValidUTF8(s, string(utf8.RuneError))
	if strings.IndexFunc(s, func(r rune) bool { return !xmlChar(r) }) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if xmlChar(r) {
			return r
		}
		return utf8.RuneError
	}, s)
}

// xmlChar reports whether r matches the XML 1.0 Char production.
func xmlChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= utf8.MaxRune:
		return true
	}
	return false
}

// validRef reports whether a character reference names an XML character.
// Named references are always accepted.
func validRef(ref string) bool {
	if !strings.HasPrefix(ref, "&#") {
		return true
	}
	num := strings.TrimSuffix(ref[2:], ";")
	base := 10
	if num != "" && (num[0] == 'x' || num[0] == 'X') {
		num, base = num[1:], 16
	}
	n, err := strconv.ParseInt(num, base, 32)
	return err == nil && xmlChar(rune(n))
}

// Truncate trims surrounding whitespace and caps the result at max runes.
// Text that does not fit is cut to max-3 runes followed by "...". When max
// leaves no room for the ellipsis the text is simply cut to max runes.
func Truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if max < 0 {
		max = 0
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	if max < len(Ellipsis) {
		return string(runes[:max])
	}
	return string(runes[:max-len(Ellipsis)]) + Ellipsis
}

// WrapLines greedily packs the whitespace-separated words of s into lines of
// at most maxChars runes. A word that is longer than maxChars on its own
// keeps a line to itself and is never split. At most maxLines lines are
// produced; anything past the limit is joined onto the last line. A
// maxLines of zero or less means no limit.
func WrapLines(s string, maxChars, maxLines int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		room := maxLines <= 0 || len(lines) < maxLines-1
		if utf8.RuneCountInString(candidate) > maxChars && current != "" && room {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}

	if maxLines > 0 && len(lines) > maxLines {
		tail := strings.Join(lines[maxLines-1:], " ")
		lines = append(lines[:maxLines-1], tail)
	}
	return lines
}
