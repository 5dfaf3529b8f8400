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

// ModernCard places the content on a floating card with an optional
// featured image header.
type ModernCard struct {
	Base
}

// NewModernCard builds the Modern Card theme.
func NewModernCard(b Base) Theme {
	return &ModernCard{Base: b}
}

func (m *ModernCard) Describe() Descriptor {
	return Descriptor{
		Name:          "Modern Card",
		Description:   "Card-style layout with featured image header and clean typography",
		Author:        "OpenGraph SVG Generator",
		PreviewColors: []string{"#f8fafc", "#ffffff", "#0f172a"},
	}
}

func (m *ModernCard) DefaultColors() ColorScheme {
	return ColorScheme{
		SlotBackground:      "#f8fafc",
		SlotGradientStart:   "#f8fafc",
		SlotGradientEnd:     "#e2e8f0",
		SlotTextPrimary:     "#0f172a",
		SlotTextSecondary:   "#475569",
		SlotAccent:          "#0ea5e9",
		SlotAccentSecondary: "#f0f9ff",
		SlotCardBackground:  "#ffffff",
	}
}

func (m *ModernCard) defs(colors ColorScheme) string {
	return Defs(
		linearGradient("bgGradient", "100%", "100%",
			stop{"0%", colors[SlotGradientStart], "1"},
			stop{"100%", colors[SlotGradientEnd], "1"},
		),
		linearGradient("imageOverlay", "0%", "100%",
			stop{"0%", "rgba(0,0,0,0)", "0"},
			stop{"100%", "rgba(0,0,0,0.4)", "1"},
		),
		linearGradient("patternGradient", "100%", "100%",
			stop{"0%", colors[SlotAccentSecondary], "1"},
			stop{"100%", colors[SlotAccent], "0.2"},
		),
		`<filter id="cardShadow" x="-50%" y="-50%" width="200%" height="200%">`+"\n"+
			`<feDropShadow dx="0" dy="8" stdDeviation="24" flood-color="rgba(0,0,0,0.12)"/>`+"\n"+
			"</filter>\n",
		circleClip("footerLogoClip"),
	)
}

func (m *ModernCard) Render(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	colors := m.Colors(m.DefaultColors())

	var sb strings.Builder
	sb.WriteString(Header())
	sb.WriteString(m.defs(colors))
	sb.WriteString(`<rect width="1200" height="630" fill="url(#bgGradient)"/>` + "\n")
	fmt.Fprintf(&sb, `<rect x="60" y="60" width="1080" height="510" rx="24" fill="%s" stroke="rgba(0,0,0,0.05)" stroke-width="1" filter="url(#cardShadow)"/>`+"\n", colors[SlotCardBackground])

	if featured := m.FeaturedImageURL(); featured != "" {
		m.header(ctx, &sb, featured)
		m.content(&sb, colors, 280)
	} else {
		m.content(&sb, colors, 120)
	}
	m.footer(ctx, &sb, colors)

	sb.WriteString(Footer())
	return sb.String(), nil
}

// header draws the featured image across the top of the card.
func (m *ModernCard) header(ctx context.Context, sb *strings.Builder, ref string) {
	sb.WriteString(`<clipPath id="imageHeaderClip">` + "\n")
	sb.WriteString(`<rect x="60" y="60" width="1080" height="200" rx="24"/>` + "\n")
	sb.WriteString("</clipPath>\n")
	sb.WriteString(`<rect x="60" y="60" width="1080" height="200" fill="#e2e8f0" clip-path="url(#imageHeaderClip)"/>` + "\n")

	if uri, ok := m.Image(ctx, ref); ok {
		fmt.Fprintf(sb, `<image x="60" y="60" width="1080" height="200" href="%s" preserveAspectRatio="xMidYMid slice" clip-path="url(#imageHeaderClip)"/>`+"\n", uri)
		sb.WriteString(`<rect x="60" y="180" width="1080" height="80" fill="url(#imageOverlay)" clip-path="url(#imageHeaderClip)"/>` + "\n")
		return
	}
	sb.WriteString(`<rect x="60" y="60" width="1080" height="200" fill="url(#patternGradient)" clip-path="url(#imageHeaderClip)"/>` + "\n")
}

func (m *ModernCard) content(sb *strings.Builder, colors ColorScheme, y int) {
	fmt.Fprintf(sb, `<text x="120" y="%d" font-family="%s" font-size="42" font-weight="700" fill="%s">`+"\n", y+50, fontStack, colors[SlotTextPrimary])
	writeText(sb, markup.Truncate(m.input.Title(), 50))

	distinct := m.input.hasDistinctPageTitle()
	if distinct {
		fmt.Fprintf(sb, `<text x="120" y="%d" font-family="%s" font-size="20" font-weight="500" fill="%s">`+"\n", y+90, fontSans, colors[SlotTextSecondary])
		writeText(sb, markup.Truncate(m.input.SiteTitle, 40))
	}

	if m.settings.ShowTagline && m.input.Tagline != "" {
		offset := 110
		if distinct {
			offset = 140
		}
		fmt.Fprintf(sb, `<text x="120" y="%d" font-family="%s" font-size="16" font-weight="400" fill="%s" opacity="0.8">`+"\n", y+offset, fontSans, colors[SlotTextSecondary])
		writeText(sb, markup.Truncate(m.input.Tagline, 100))
	}
}

func (m *ModernCard) footer(ctx context.Context, sb *strings.Builder, colors ColorScheme) {
	fmt.Fprintf(sb, `<line x1="120" y1="520" x2="1080" y2="520" stroke="%s" stroke-width="1"/>`+"\n", colors[SlotAccentSecondary])

	x := 120
	if m.input.AvatarURL != "" {
		x = 185
		fmt.Fprintf(sb, `<circle cx="150" cy="550" r="18" fill="%s" stroke="%s" stroke-width="2"/>`+"\n", colors[SlotCardBackground], colors[SlotAccent])
		if uri, ok := m.Image(ctx, m.input.AvatarURL); ok {
			fmt.Fprintf(sb, `<image x="135" y="535" width="30" height="30" href="%s" clip-path="url(#footerLogoClip)"/>`+"\n", uri)
		} else {
			fmt.Fprintf(sb, `<circle cx="150" cy="550" r="12" fill="%s"/>`+"\n", colors[SlotAccent])
		}
	}

	fmt.Fprintf(sb, `<text x="%d" y="558" font-family="%s" font-size="14" font-weight="500" fill="%s">`+"\n", x, fontSans, colors[SlotTextSecondary])
	writeText(sb, m.CleanDomain())

	if p := m.post(); p != nil && !p.PublishedAt.IsZero() {
		fmt.Fprintf(sb, `<text x="1080" y="558" font-family="%s" font-size="12" font-weight="400" fill="%s" text-anchor="end" opacity="0.7">`+"\n", fontSans, colors[SlotTextSecondary])
		writeText(sb, p.PublishedAt.Format(dateLayout))
	}
}
