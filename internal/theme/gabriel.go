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

// DefaultID is the theme used when no other theme applies.
const DefaultID = "gabriel"

// Gabriel is the professional tech layout: dark gradient, circuit
// decorations and an avatar beside the titles.
type Gabriel struct {
	Base
}

// NewGabriel builds the Gabriel theme.
func NewGabriel(b Base) Theme {
	return &Gabriel{Base: b}
}

func (g *Gabriel) Describe() Descriptor {
	return Descriptor{
		Name:          "Gabriel Kanev",
		Description:   "Professional tech theme with dark gradients and modern elements",
		Author:        "Gabriel Kanev",
		PreviewColors: []string{"#0f172a", "#3b82f6", "#06b6d4"},
	}
}

func (g *Gabriel) DefaultColors() ColorScheme {
	return ColorScheme{
		SlotBackground:      "#0f172a",
		SlotGradientStart:   "#1e293b",
		SlotGradientEnd:     "#0f172a",
		SlotTextPrimary:     "#f8fafc",
		SlotTextSecondary:   "#cbd5e1",
		SlotAccent:          "#3b82f6",
		SlotAccentSecondary: "#06b6d4",
	}
}

func (g *Gabriel) Render(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	colors := g.Colors(g.DefaultColors())

	var sb strings.Builder
	sb.WriteString(Header())
	sb.WriteString(Defs(BaseDefs(colors)))
	sb.WriteString(`<rect width="1200" height="630" fill="url(#bgGradient)"/>` + "\n")

	if featured := g.FeaturedImageURL(); featured != "" {
		sb.WriteString(g.FeaturedImageBackground(ctx, featured, colors[SlotBackground], 0.7))
	}

	g.decorations(&sb)
	sb.WriteString(`<rect x="60" y="60" width="1080" height="510" rx="20" fill="rgba(255,255,255,0.08)" stroke="rgba(59, 130, 246, 0.2)" stroke-width="1"/>` + "\n")

	if g.input.AvatarURL != "" {
		g.avatar(ctx, &sb)
	}
	g.text(&sb, colors)
	g.footer(&sb, colors)

	sb.WriteString(Footer())
	return sb.String(), nil
}

func (g *Gabriel) decorations(sb *strings.Builder) {
	sb.WriteString(`<circle cx="1050" cy="150" r="120" fill="rgba(59, 130, 246, 0.08)" opacity="0.6"/>` + "\n")
	sb.WriteString(`<circle cx="1100" cy="500" r="80" fill="rgba(6, 182, 212, 0.06)" opacity="0.8"/>` + "\n")
	sb.WriteString(`<circle cx="100" cy="100" r="60" fill="rgba(59, 130, 246, 0.05)" opacity="0.7"/>` + "\n")

	// Hexagons.
	sb.WriteString(`<polygon points="950,50 980,35 1010,50 1010,80 980,95 950,80" fill="rgba(59, 130, 246, 0.08)" opacity="0.4"/>` + "\n")
	sb.WriteString(`<polygon points="1080,400 1100,390 1120,400 1120,420 1100,430 1080,420" fill="rgba(6, 182, 212, 0.06)" opacity="0.5"/>` + "\n")

	// Circuit traces.
	sb.WriteString(`<path d="M 50 300 L 100 300 L 120 280 L 150 280" stroke="rgba(59, 130, 246, 0.1)" stroke-width="2" fill="none"/>` + "\n")
	sb.WriteString(`<path d="M 1050 250 L 1100 250 L 1120 230 L 1150 230" stroke="rgba(6, 182, 212, 0.1)" stroke-width="2" fill="none"/>` + "\n")
}

func (g *Gabriel) avatar(ctx context.Context, sb *strings.Builder) {
	sb.WriteString(`<circle cx="200" cy="200" r="75" fill="rgba(59, 130, 246, 0.1)" stroke="rgba(59, 130, 246, 0.3)" stroke-width="3"/>` + "\n")
	sb.WriteString(`<circle cx="200" cy="200" r="70" fill="rgba(255,255,255,0.95)"/>` + "\n")

	if uri, ok := g.Image(ctx, g.input.AvatarURL); ok {
		fmt.Fprintf(sb, `<image x="135" y="135" width="130" height="130" href="%s" clip-path="url(#avatarClip)"/>`+"\n", uri)
		return
	}
	sb.WriteString(`<circle cx="200" cy="200" r="50" fill="rgba(59, 130, 246, 0.2)"/>` + "\n")
	sb.WriteString(personIcon(200, 200, "rgba(59, 130, 246, 0.8)"))
}

func (g *Gabriel) text(sb *strings.Builder, colors ColorScheme) {
	fmt.Fprintf(sb, `<text x="320" y="160" font-family="%s" font-size="42" font-weight="700" fill="%s" filter="url(#textShadow)">`+"\n", fontStack, colors[SlotTextPrimary])
	writeText(sb, markup.Truncate(g.input.SiteTitle, 25))

	if g.input.PageTitle != "" {
		fmt.Fprintf(sb, `<text x="320" y="210" font-family="%s" font-size="28" font-weight="400" fill="%s">`+"\n", fontStack, colors[SlotTextSecondary])
		writeText(sb, markup.Truncate(g.input.PageTitle, 50))
	}

	if g.settings.ShowTagline && g.input.Tagline != "" {
		fmt.Fprintf(sb, `<text x="320" y="250" font-family="%s" font-size="18" font-weight="300" fill="%s" opacity="0.8">`+"\n", fontStack, colors[SlotTextSecondary])
		writeText(sb, markup.Truncate(g.input.Tagline, 80))
	}
}

func (g *Gabriel) footer(sb *strings.Builder, colors ColorScheme) {
	fmt.Fprintf(sb, `<rect x="320" y="280" width="100" height="4" rx="2" fill="%s"/>`+"\n", colors[SlotAccent])
	fmt.Fprintf(sb, `<rect x="430" y="280" width="50" height="4" rx="2" fill="%s" opacity="0.6"/>`+"\n", colors[SlotAccentSecondary])

	fmt.Fprintf(sb, `<text x="320" y="320" font-family="%s" font-size="16" font-weight="500" fill="%s" opacity="0.8">`+"\n", fontStack, colors[SlotTextSecondary])
	writeText(sb, g.CleanDomain())

	if g.settings.FooterText != "" {
		fmt.Fprintf(sb, `<rect x="320" y="340" width="8" height="8" rx="4" fill="%s" opacity="0.8"/>`+"\n", colors[SlotAccentSecondary])
		fmt.Fprintf(sb, `<text x="338" y="349" font-family="%s" font-size="12" font-weight="500" fill="%s" opacity="0.7">`+"\n", fontStack, colors[SlotTextSecondary])
		writeText(sb, g.settings.FooterText)
	}

	// Corner marks.
	fmt.Fprintf(sb, `<rect x="1050" y="550" width="100" height="2" fill="%s" opacity="0.3"/>`+"\n", colors[SlotAccent])
	fmt.Fprintf(sb, `<rect x="1050" y="555" width="60" height="2" fill="%s" opacity="0.5"/>`+"\n", colors[SlotAccentSecondary])
}
