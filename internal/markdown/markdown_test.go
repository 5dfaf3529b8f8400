// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"paragraph", "Hello world", "Hello world"},
		{"emphasis", "Some **bold** and *italic* text", "Some bold and italic text"},
		{"heading and paragraph", "# Title\n\nFirst paragraph.", "Title First paragraph."},
		{"link keeps label", "Read [the docs](https://example.com) now", "Read the docs now"},
		{"soft break", "line one\nline two", "line one line two"},
		{"list", "- one\n- two", "one two"},
		{"fenced code skipped", "Intro\n\n```go\nfunc main() {}\n```\n\nOutro", "Intro Outro"},
		{"raw html skipped", "<div class=\"x\">\n</div>\n\nText", "Text"},
		{"inline html skipped", "a <span>b</span> c", "a b c"},
		{"image skipped", "Look ![a cat](cat.png) here", "Look here"},
		{"inline code kept", "Use `go test` often", "Use go test often"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	body := "## Intro\n\n" + strings.Repeat("word ", 100)
	got := Excerpt(body, 50)
	if n := utf8.RuneCountInString(got); n != 50 {
		t.Errorf("length: got %d, want 50", n)
	}
	if !strings.HasPrefix(got, "Intro word") || !strings.HasSuffix(got, "...") {
		t.Errorf("got %q", got)
	}
	if got := Excerpt("Short", 50); got != "Short" {
		t.Errorf("got %q, want %q", got, "Short")
	}
}
