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

// Minimal is a light layout with a single content panel.
type Minimal struct {
	Base
}

// NewMinimal builds the Minimal theme.
func NewMinimal(b Base) Theme {
	return &Minimal{Base: b}
}

func (m *Minimal) Describe() Descriptor {
	return Descriptor{
		Name:          "Minimal",
		Description:   "Clean and simple design with lots of white space",
		Author:        "OpenGraph SVG Generator",
		PreviewColors: []string{"#ffffff", "#f8fafc", "#64748b"},
	}
}

func (m *Minimal) DefaultColors() ColorScheme {
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

func (m *Minimal) Render(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	colors := m.Colors(m.DefaultColors())

	var sb strings.Builder
	sb.WriteString(Header())
	sb.WriteString(Defs(BaseDefs(colors)))
	fmt.Fprintf(&sb, `<rect width="1200" height="630" fill="%s"/>`+"\n", colors[SlotBackground])

	if featured := m.FeaturedImageURL(); featured != "" {
		sb.WriteString(m.FeaturedImageBackground(ctx, featured, colors[SlotBackground], 0.8))
	}

	fmt.Fprintf(&sb, `<rect x="0" y="0" width="1200" height="630" fill="none" stroke="%s" stroke-width="2"/>`+"\n", colors[SlotAccentSecondary])
	fmt.Fprintf(&sb, `<rect x="80" y="80" width="1040" height="470" fill="%s" rx="12"/>`+"\n", colors[SlotGradientStart])

	if m.input.AvatarURL != "" {
		sb.WriteString(`<circle cx="200" cy="200" r="50" fill="#ffffff" stroke="#e2e8f0" stroke-width="3"/>` + "\n")
		if uri, ok := m.Image(ctx, m.input.AvatarURL); ok {
			fmt.Fprintf(&sb, `<image x="155" y="155" width="90" height="90" href="%s" clip-path="url(#avatarClip)"/>`+"\n", uri)
		} else {
			sb.WriteString(`<circle cx="200" cy="200" r="35" fill="#f1f5f9"/>` + "\n")
			sb.WriteString(`<path d="M200 180 c-8 0 -15 7 -15 15 s 7 15 15 15 s 15 -7 15 -15 s -7 -15 -15 -15 z M200 220 c-12 0 -22 10 -22 22 l 44 0 c 0 -12 -10 -22 -22 -22 z" fill="#cbd5e1"/>` + "\n")
		}
	}

	fmt.Fprintf(&sb, `<text x="320" y="170" font-family="%s" font-size="36" font-weight="600" fill="%s">`+"\n", fontStack, colors[SlotTextPrimary])
	writeText(&sb, markup.Truncate(m.input.SiteTitle, 30))

	if m.input.PageTitle != "" {
		fmt.Fprintf(&sb, `<text x="320" y="210" font-family="%s" font-size="22" font-weight="400" fill="%s">`+"\n", fontStack, colors[SlotTextSecondary])
		writeText(&sb, markup.Truncate(m.input.PageTitle, 60))
	}

	if m.settings.ShowTagline && m.input.Tagline != "" {
		fmt.Fprintf(&sb, `<text x="320" y="245" font-family="%s" font-size="16" font-weight="300" fill="%s" opacity="0.8">`+"\n", fontStack, colors[SlotTextSecondary])
		writeText(&sb, markup.Truncate(m.input.Tagline, 90))
	}

	fmt.Fprintf(&sb, `<rect x="320" y="280" width="60" height="2" fill="%s"/>`+"\n", colors[SlotAccent])
	fmt.Fprintf(&sb, `<text x="320" y="320" font-family="%s" font-size="14" font-weight="400" fill="%s" opacity="0.7">`+"\n", fontStack, colors[SlotTextSecondary])
	writeText(&sb, m.CleanDomain())

	sb.WriteString(Footer())
	return sb.String(), nil
}
