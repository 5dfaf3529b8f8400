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

// SplitScreen shows the featured image across the top half and the content
// below it. Without an image the content sits under an accent band.
type SplitScreen struct {
	Base
}

// NewSplitScreen builds the Split Screen theme.
func NewSplitScreen(b Base) Theme {
	return &SplitScreen{Base: b}
}

func (s *SplitScreen) Describe() Descriptor {
	return Descriptor{
		Name:          "Split Screen",
		Description:   "Featured image on top half, content on bottom with clean domain display",
		Author:        "OpenGraph SVG Generator",
		PreviewColors: []string{"#1e293b", "#ffffff", "#3b82f6"},
	}
}

func (s *SplitScreen) DefaultColors() ColorScheme {
	return ColorScheme{
		SlotBackground:      "#ffffff",
		SlotGradientStart:   "#1e293b",
		SlotGradientEnd:     "#0f172a",
		SlotTextPrimary:     "#1e293b",
		SlotTextSecondary:   "#64748b",
		SlotAccent:          "#3b82f6",
		SlotAccentSecondary: "#dbeafe",
		SlotImageOverlay:    "rgba(30, 41, 59, 0.3)",
	}
}

func (s *SplitScreen) Render(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	colors := s.Colors(s.DefaultColors())

	var sb strings.Builder
	sb.WriteString(Header())
	sb.WriteString(Defs(
		linearGradient("accentGradient", "100%", "0%",
			stop{"0%", colors[SlotAccent], "1"},
			stop{"100%", colors[SlotAccent], "0.6"},
		),
		linearGradient("imageFallback", "100%", "100%",
			stop{"0%", colors[SlotGradientStart], "1"},
			stop{"100%", colors[SlotGradientEnd], "1"},
		),
		circleClip("domainLogoClip"),
	))

	if featured := s.FeaturedImageURL(); featured != "" {
		s.imageSection(ctx, &sb, colors, featured)
		s.content(ctx, &sb, colors, true)
	} else {
		fmt.Fprintf(&sb, `<rect width="1200" height="630" fill="%s"/>`+"\n", colors[SlotBackground])
		sb.WriteString(`<rect width="1200" height="100" fill="url(#accentGradient)"/>` + "\n")
		s.content(ctx, &sb, colors, false)
	}

	sb.WriteString(Footer())
	return sb.String(), nil
}

func (s *SplitScreen) imageSection(ctx context.Context, sb *strings.Builder, colors ColorScheme, ref string) {
	sb.WriteString(`<rect x="0" y="0" width="1200" height="315" fill="#f1f5f9"/>` + "\n")
	if uri, ok := s.Image(ctx, ref); ok {
		fmt.Fprintf(sb, `<image x="0" y="0" width="1200" height="315" href="%s" preserveAspectRatio="xMidYMid slice"/>`+"\n", uri)
		fmt.Fprintf(sb, `<rect x="0" y="0" width="1200" height="315" fill="%s"/>`+"\n", colors[SlotImageOverlay])
	} else {
		sb.WriteString(`<rect x="0" y="0" width="1200" height="315" fill="url(#imageFallback)"/>` + "\n")
	}
	fmt.Fprintf(sb, `<rect x="0" y="315" width="1200" height="4" fill="%s"/>`+"\n", colors[SlotAccent])
}

func (s *SplitScreen) content(ctx context.Context, sb *strings.Builder, colors ColorScheme, hasImage bool) {
	y := 150
	if hasImage {
		y = 350
		fmt.Fprintf(sb, `<rect x="0" y="319" width="1200" height="311" fill="%s"/>`+"\n", colors[SlotBackground])
	}

	fmt.Fprintf(sb, `<text x="80" y="%d" font-family="%s" font-size="44" font-weight="700" fill="%s">`+"\n", y+40, fontStack, colors[SlotTextPrimary])
	writeText(sb, markup.Truncate(s.input.Title(), 45))

	offset := 85
	if s.input.hasDistinctPageTitle() {
		fmt.Fprintf(sb, `<text x="80" y="%d" font-family="%s" font-size="22" font-weight="500" fill="%s">`+"\n", y+offset, fontSans, colors[SlotTextSecondary])
		writeText(sb, markup.Truncate(s.input.SiteTitle, 35))
		offset += 35
	}

	if s.settings.ShowTagline && s.input.Tagline != "" {
		fmt.Fprintf(sb, `<text x="80" y="%d" font-family="%s" font-size="16" font-weight="400" fill="%s" opacity="0.8">`+"\n", y+offset, fontSans, colors[SlotTextSecondary])
		writeText(sb, markup.Truncate(s.input.Tagline, 85))
		offset += 30
	}

	s.domain(ctx, sb, colors, y+offset+20)
}

// domain writes the accent rule, the avatar badge with the domain and, for
// items, the first category and publish date on the right.
func (s *SplitScreen) domain(ctx context.Context, sb *strings.Builder, colors ColorScheme, y int) {
	fmt.Fprintf(sb, `<rect x="80" y="%d" width="120" height="3" rx="2" fill="%s"/>`+"\n", y, colors[SlotAccent])

	domain := s.CleanDomain()
	if s.input.AvatarURL != "" {
		logoY := y + 20
		fmt.Fprintf(sb, `<circle cx="95" cy="%d" r="15" fill="%s" stroke="%s" stroke-width="2"/>`+"\n", logoY+15, colors[SlotBackground], colors[SlotAccent])
		if uri, ok := s.Image(ctx, s.input.AvatarURL); ok {
			fmt.Fprintf(sb, `<image x="83" y="%d" width="24" height="24" href="%s" clip-path="url(#domainLogoClip)"/>`+"\n", logoY+3, uri)
		} else {
			fmt.Fprintf(sb, `<circle cx="95" cy="%d" r="8" fill="%s"/>`+"\n", logoY+15, colors[SlotAccent])
		}
		fmt.Fprintf(sb, `<text x="125" y="%d" font-family="%s" font-size="16" font-weight="500" fill="%s">`+"\n", logoY+20, fontSans, colors[SlotTextSecondary])
		writeText(sb, domain)
	} else {
		fmt.Fprintf(sb, `<text x="80" y="%d" font-family="%s" font-size="16" font-weight="500" fill="%s">`+"\n", y+35, fontSans, colors[SlotTextSecondary])
		writeText(sb, domain)
	}

	p := s.post()
	if p == nil {
		return
	}
	if !p.PublishedAt.IsZero() {
		fmt.Fprintf(sb, `<text x="1120" y="%d" font-family="%s" font-size="14" font-weight="400" fill="%s" text-anchor="end" opacity="0.7">`+"\n", y+35, fontSans, colors[SlotTextSecondary])
		writeText(sb, p.PublishedAt.Format(dateLayout))
	}
	if len(p.Categories) > 0 {
		fmt.Fprintf(sb, `<text x="1120" y="%d" font-family="%s" font-size="12" font-weight="500" fill="%s" text-anchor="end" text-transform="uppercase" letter-spacing="1px">`+"\n", y+15, fontSans, colors[SlotAccent])
		writeText(sb, p.Categories[0])
	}
}
