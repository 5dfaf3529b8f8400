// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markup

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "Hello World", "Hello World"},
		{"ampersand", "Rock & Roll", "Rock &amp; Roll"},
		{"angle brackets", "<script>", "&lt;script&gt;"},
		{"double quote", `say "hi"`, "say &quot;hi&quot;"},
		{"single quote", "it's", "it&apos;s"},
		{"named entity kept", "Fish &amp; Chips", "Fish &amp; Chips"},
		{"numeric entity kept", "&#169; 2026", "&#169; 2026"},
		{"hex entity kept", "&#x2022;", "&#x2022;"},
		{"bare ampersand before word", "AT&T rocks", "AT&amp;T rocks"},
		{"unterminated reference", "&amp no semicolon", "&amp;amp no semicolon"},
		{"unicode passes through", "Café • Über", "Café • Über"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Escape(tt.input)
			if got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapeReplacesCharactersXMLForbids(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"vertical tab", "Hello\x0bWorld", "Hello\uFFFDWorld"},
		{"nul", "a\x00b", "a\uFFFDb"},
		{"escape sequence", "\x1b[31mred", "\uFFFD[31mred"},
		{"invalid utf-8", "Bad \xff\xfe bytes", "Bad \uFFFD bytes"},
		{"truncated rune", "Caf\xc3", "Caf\uFFFD"},
		{"noncharacter", "a\uFFFEb", "a\uFFFDb"},
		{"whitespace kept", "a\tb\nc\rd", "a\tb\nc\rd"},
		{"illegal reference escaped", "&#11;", "&amp;#11;"},
		{"illegal hex reference escaped", "&#x0;", "&amp;#x0;"},
		{"legal reference kept", "&#x9;", "&#x9;"},
		{"mixed with markup", "<\x0b>", "&lt;\uFFFD&gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Escape(tt.input)
			if got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEscapedTextParsesAsXML(t *testing.T) {
	inputs := []string{
		"Hello\x0bWorld",
		"Bad \xff\xfe bytes",
		"\x00\x01\x02 & <tags> \"quoted\" 'single'",
		"&#11; &#x1F; &amp; &#169;",
		"Café \U0001F680 \uFFFF",
	}
	for _, in := range inputs {
		doc := `<svg xmlns="http://www.w3.org/2000/svg"><text title="` + Escape(in) + `">` + Escape(in) + `</text></svg>`
		dec := xml.NewDecoder(strings.NewReader(doc))
		for {
			_, err := dec.Token()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Errorf("Escape(%q) produced invalid XML: %v", in, err)
				break
			}
		}
	}
}

func TestEscapeIsIdempotent(t *testing.T) {
	inputs := []string{`<a href="x">Tom & Jerry's</a>`, "5 > 3 & 2 < 4", "plain"}
	for _, in := range inputs {
		once := Escape(in)
		twice := Escape(once)
		if once != twice {
			t.Errorf("Escape not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"short stays", "Hello", 10, "Hello"},
		{"exact length stays", "Hello", 5, "Hello"},
		{"cut with ellipsis", "Hello World", 8, "Hello..."},
		{"trims first", "   padded   ", 6, "padded"},
		{"mid word cut", "Internationalization", 10, "Interna..."},
		{"unicode aware", "Ünïcödé strings", 10, "Ünïcödé..."},
		{"tiny limit", "Hello", 2, "He"},
		{"zero limit", "Hello", 0, ""},
		{"empty", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.max)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestTruncateNeverExceedsLimit(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"The quick brown fox jumps over the lazy dog",
		strings.Repeat("é", 200),
		"日本語のタイトルはとても長いです",
	}
	for _, s := range inputs {
		for max := 0; max <= 60; max++ {
			got := Truncate(s, max)
			if n := utf8.RuneCountInString(got); n > max {
				t.Fatalf("Truncate(%q, %d) has %d runes", s, max, n)
			}
			if utf8.RuneCountInString(strings.TrimSpace(s)) > max && max >= 3 && !strings.HasSuffix(got, Ellipsis) {
				t.Fatalf("Truncate(%q, %d) = %q, want ellipsis suffix", s, max, got)
			}
		}
	}
}

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxChars int
		maxLines int
		want     []string
	}{
		{
			name:     "fits on one line",
			input:    "Short title",
			maxChars: 28,
			maxLines: 3,
			want:     []string{"Short title"},
		},
		{
			name:     "wraps at limit",
			input:    "How to build reliable services in Go",
			maxChars: 20,
			maxLines: 3,
			want:     []string{"How to build", "reliable services in", "Go"},
		},
		{
			name:     "overflow joins last line",
			input:    "one two three four five six",
			maxChars: 3,
			maxLines: 2,
			want:     []string{"one", "two three four five six"},
		},
		{
			name:     "long word kept whole",
			input:    "Supercalifragilisticexpialidocious word",
			maxChars: 10,
			maxLines: 3,
			want:     []string{"Supercalifragilisticexpialidocious", "word"},
		},
		{
			name:     "unlimited lines",
			input:    "alpha beta gamma delta",
			maxChars: 5,
			maxLines: 0,
			want:     []string{"alpha", "beta", "gamma", "delta"},
		},
		{
			name:     "collapses whitespace",
			input:    "  spaced \t out   words ",
			maxChars: 40,
			maxLines: 2,
			want:     []string{"spaced out words"},
		},
		{
			name:     "empty",
			input:    "   ",
			maxChars: 10,
			maxLines: 2,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapLines(tt.input, tt.maxChars, tt.maxLines)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("WrapLines(%q, %d, %d) = %q, want %q", tt.input, tt.maxChars, tt.maxLines, got, tt.want)
			}
		})
	}
}

func TestWrapLinesKeepsEveryWord(t *testing.T) {
	inputs := []string{
		"The Ultimate Guide to Writing OpenGraph Images That People Actually Click",
		"a b c d e f g h i j k l m n o p",
		"Pneumonoultramicroscopicsilicovolcanoconiosis explained simply",
	}
	for _, s := range inputs {
		for maxLines := 0; maxLines <= 4; maxLines++ {
			for maxChars := 1; maxChars <= 30; maxChars++ {
				lines := WrapLines(s, maxChars, maxLines)
				if maxLines > 0 && len(lines) > maxLines {
					t.Fatalf("WrapLines(%q, %d, %d) returned %d lines", s, maxChars, maxLines, len(lines))
				}
				got := strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
				want := strings.Join(strings.Fields(s), " ")
				if got != want {
					t.Fatalf("WrapLines(%q, %d, %d) lost words: %q", s, maxChars, maxLines, lines)
				}
			}
		}
	}
}
