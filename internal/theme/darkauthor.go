// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"context"
	"fmt"
	"strings"

	"ogsvg/internal/markup"
)

// Dark author layout constants.
const (
	darkAuthorLineChars  = 28
	darkAuthorMaxLines   = 3
	darkAuthorTitleX     = 100
	darkAuthorTitleY     = 120
	darkAuthorCategories = 3
)

// DarkAuthor shows a large wrapped title, the item's categories, a subtitle
// and an author byline on a dark gradient.
type DarkAuthor struct {
	Base
}

// NewDarkAuthor builds the Dark Author theme.
func NewDarkAuthor(b Base) Theme {
	return &DarkAuthor{Base: b}
}

func (d *DarkAuthor) Describe() Descriptor {
	return Descriptor{
		Name:          "Dark Author",
		Description:   "Clean dark background with large title, categories, and author attribution",
		Author:        "OpenGraph SVG Generator",
		PreviewColors: []string{"#0f172a", "#8b5cf6", "#ffffff"},
	}
}

func (d *DarkAuthor) DefaultColors() ColorScheme {
	return ColorScheme{
		SlotBackground:      "#1e293b",
		SlotGradientStart:   "#334155",
		SlotGradientEnd:     "#1e293b",
		SlotTextPrimary:     "#a855f7",
		SlotTextSecondary:   "#ffffff",
		SlotAccent:          "#22d3ee",
		SlotAccentSecondary: "#fbbf24",
		SlotAuthorText:      "#e2e8f0",
	}
}

// darkAuthorTitleSize returns the font size and line height for a title of
// n lines.
func darkAuthorTitleSize(n int) (fontSize, lineHeight int) {
	switch {
	case n <= 1:
		return 76, 85
	case n == 2:
		return 68, 78
	default:
		return 60, 70
	}
}

func (d *DarkAuthor) Render(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	colors := d.Colors(d.DefaultColors())

	var sb strings.Builder
	sb.WriteString(Header())
	// The background runs from gradient_start into the plain background color.
	sb.WriteString(Defs(linearGradient("bgGradient", "100%", "100%",
		stop{"0%", colors[SlotGradientStart], "1"},
		stop{"100%", colors[SlotBackground], "1"},
	)))
	sb.WriteString(`<rect width="1200" height="630" fill="url(#bgGradient)"/>` + "\n")

	if featured := d.FeaturedImageURL(); featured != "" {
		sb.WriteString(d.FeaturedImageBackground(ctx, featured, colors[SlotBackground], 0.75))
	}

	titleEnd := d.title(&sb, colors)
	categoriesEnd := d.categories(&sb, colors, titleEnd+40)
	d.subtitle(&sb, colors, categoriesEnd+30)
	d.byline(&sb, colors)

	sb.WriteString(Footer())
	return sb.String(), nil
}

// title writes the wrapped title and returns the y below its last line.
func (d *DarkAuthor) title(sb *strings.Builder, colors ColorScheme) int {
	lines := markup.WrapLines(d.input.Title(), darkAuthorLineChars, darkAuthorMaxLines)
	fontSize, lineHeight := darkAuthorTitleSize(len(lines))

	for i, line := range lines {
		y := darkAuthorTitleY + i*lineHeight
		fmt.Fprintf(sb, `<text x="%d" y="%d" font-family="%s" font-size="%d" font-weight="800" fill="%s" letter-spacing="-1.5px" stroke="rgba(255,255,255,0.1)" stroke-width="1">`+"\n",
			darkAuthorTitleX, y, fontStack, fontSize, colors[SlotTextPrimary])
		writeText(sb, strings.TrimSpace(line))
	}
	return darkAuthorTitleY + len(lines)*lineHeight
}

// categories writes up to three category names and returns the next free y.
func (d *DarkAuthor) categories(sb *strings.Builder, colors ColorScheme, y int) int {
	p := d.post()
	if p == nil || len(p.Categories) == 0 {
		return y
	}

	names := p.Categories
	if len(names) > darkAuthorCategories {
		names = names[:darkAuthorCategories]
	}
	fmt.Fprintf(sb, `<text x="100" y="%d" font-family="%s" font-size="20" font-weight="700" fill="%s" letter-spacing="0.5px" text-transform="uppercase">`+"\n",
		y, fontSans, colors[SlotAccent])
	writeText(sb, strings.Join(names, " • "))
	return y + 35
}

// subtitle shows the tagline when enabled, otherwise the item excerpt.
func (d *DarkAuthor) subtitle(sb *strings.Builder, colors ColorScheme, y int) {
	text := ""
	if d.settings.ShowTagline && d.input.Tagline != "" {
		text = d.input.Tagline
	} else if p := d.post(); p != nil {
		text = p.Excerpt
	}
	if strings.TrimSpace(text) == "" {
		return
	}

	fmt.Fprintf(sb, `<text x="100" y="%d" font-family="%s" font-size="24" font-weight="500" fill="%s" letter-spacing="-0.5px">`+"\n",
		y, fontSans, colors[SlotTextSecondary])
	writeText(sb, markup.Truncate(text, 85))
}

// byline credits the item's author, or the site when there is none.
func (d *DarkAuthor) byline(sb *strings.Builder, colors ColorScheme) {
	author := ""
	if p := d.post(); p != nil {
		author = strings.TrimSpace(p.Author)
	}
	if author == "" {
		author = d.input.SiteTitle
	}
	if author == "" {
		return
	}

	fmt.Fprintf(sb, `<text x="100" y="580" font-family="%s" font-size="24" font-weight="600" fill="%s">`+"\n", fontSans, colors[SlotAuthorText])
	writeText(sb, "By: "+author)
}
