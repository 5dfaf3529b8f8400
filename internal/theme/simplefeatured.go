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

// SimpleFeatured puts the featured image in a left panel with the title
// beside it, or centers the text when there is no image.
type SimpleFeatured struct {
	Base
}

// NewSimpleFeatured builds the Simple Featured theme.
func NewSimpleFeatured(b Base) Theme {
	return &SimpleFeatured{Base: b}
}

func (s *SimpleFeatured) Describe() Descriptor {
	return Descriptor{
		Name:          "Simple Featured",
		Description:   "Clean layout with featured image, title, and domain",
		Author:        "OpenGraph SVG Generator",
		PreviewColors: []string{"#ffffff", "#f8fafc", "#1e293b"},
	}
}

func (s *SimpleFeatured) DefaultColors() ColorScheme {
	return ColorScheme{
		SlotBackground:      "#ffffff",
		SlotGradientStart:   "#f8fafc",
		SlotGradientEnd:     "#ffffff",
		SlotTextPrimary:     "#1e293b",
		SlotTextSecondary:   "#64748b",
		SlotAccent:          "#3b82f6",
		SlotAccentSecondary: "#e2e8f0",
	}
}

func (s *SimpleFeatured) Render(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	colors := s.Colors(s.DefaultColors())

	var sb strings.Builder
	sb.WriteString(Header())
	sb.WriteString(Defs(BaseDefs(colors), circleClip("logoClip")))
	fmt.Fprintf(&sb, `<rect width="1200" height="630" fill="%s"/>`+"\n", colors[SlotBackground])

	ref := s.FeaturedImageURL()
	if ref == "" {
		ref = s.input.AvatarURL
	}

	if ref != "" {
		sb.WriteString(`<rect x="0" y="0" width="400" height="630" fill="#f1f5f9"/>` + "\n")
		if uri, ok := s.Image(ctx, ref); ok {
			fmt.Fprintf(&sb, `<image x="20" y="20" width="360" height="590" href="%s" preserveAspectRatio="xMidYMid slice" style="border-radius: 12px;"/>`+"\n", uri)
		} else {
			sb.WriteString(`<rect x="20" y="20" width="360" height="590" rx="12" fill="#e2e8f0"/>` + "\n")
			sb.WriteString(`<text x="200" y="320" font-family="system-ui, sans-serif" font-size="16" fill="#64748b" text-anchor="middle">Featured Image</text>` + "\n")
		}
		s.content(&sb, colors, 450)
	} else {
		sb.WriteString(`<rect width="1200" height="630" fill="url(#bgGradient)"/>` + "\n")
		s.content(&sb, colors, 100)
	}

	s.domain(ctx, &sb, colors)

	sb.WriteString(Footer())
	return sb.String(), nil
}

func (s *SimpleFeatured) content(sb *strings.Builder, colors ColorScheme, xStart int) {
	x := xStart + 50

	fmt.Fprintf(sb, `<text x="%d" y="200" font-family="%s" font-size="48" font-weight="700" fill="%s">`+"\n", x, fontStack, colors[SlotTextPrimary])
	writeText(sb, markup.Truncate(s.input.Title(), 45))

	if s.input.hasDistinctPageTitle() {
		fmt.Fprintf(sb, `<text x="%d" y="250" font-family="%s" font-size="24" font-weight="500" fill="%s">`+"\n", x, fontSans, colors[SlotTextSecondary])
		writeText(sb, markup.Truncate(s.input.SiteTitle, 35))
	}

	if s.settings.ShowTagline && s.input.Tagline != "" {
		fmt.Fprintf(sb, `<text x="%d" y="320" font-family="%s" font-size="18" font-weight="400" fill="%s" opacity="0.8">`+"\n", x, fontSans, colors[SlotTextSecondary])
		writeText(sb, markup.Truncate(s.input.Tagline, 90))
	}

	fmt.Fprintf(sb, `<rect x="%d" y="360" width="100" height="4" rx="2" fill="%s"/>`+"\n", x, colors[SlotAccent])
}

// domain writes the avatar badge and the domain in the bottom right.
func (s *SimpleFeatured) domain(ctx context.Context, sb *strings.Builder, colors ColorScheme) {
	if s.input.AvatarURL != "" {
		fmt.Fprintf(sb, `<circle cx="1120" cy="580" r="25" fill="rgba(255,255,255,0.9)" stroke="%s" stroke-width="2"/>`+"\n", colors[SlotAccentSecondary])
		if uri, ok := s.Image(ctx, s.input.AvatarURL); ok {
			fmt.Fprintf(sb, `<image x="1100" y="560" width="40" height="40" href="%s" clip-path="url(#logoClip)"/>`+"\n", uri)
		} else {
			fmt.Fprintf(sb, `<circle cx="1120" cy="580" r="10" fill="%s"/>`+"\n", colors[SlotAccent])
		}
	}

	fmt.Fprintf(sb, `<text x="1050" y="555" font-family="%s" font-size="14" font-weight="500" fill="%s" text-anchor="end">`+"\n", fontSans, colors[SlotTextSecondary])
	writeText(sb, s.CleanDomain())
}
