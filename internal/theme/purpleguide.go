// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"ogsvg/internal/markup"
)

// Purple guide layout constants. The side image is a 180px square sitting
// 60px from the right edge and centered vertically.
const (
	purpleLineChars  = 25
	purpleShortTitle = 30
	purpleImageSize  = 180
	purpleImageX     = Width - purpleImageSize - 60
	purpleImageY     = (Height - purpleImageSize) / 2
)

// PurpleGuide is a bold guide-style layout with a large title and a round
// image on the right.
type PurpleGuide struct {
	Base
}

// NewPurpleGuide builds the Purple Guide theme.
func NewPurpleGuide(b Base) Theme {
	return &PurpleGuide{Base: b}
}

func (p *PurpleGuide) Describe() Descriptor {
	return Descriptor{
		Name:          "Purple Guide",
		Description:   "Bold purple design with large title and side image, inspired by modern guide layouts",
		Author:        "OpenGraph SVG Generator",
		PreviewColors: []string{"#8b5cf6", "#a855f7", "#ffffff"},
	}
}

func (p *PurpleGuide) DefaultColors() ColorScheme {
	return ColorScheme{
		SlotBackground:      "#8b5cf6",
		SlotGradientStart:   "#8b5cf6",
		SlotGradientEnd:     "#a855f7",
		SlotTextPrimary:     "#ffffff",
		SlotTextSecondary:   "#f3f4f6",
		SlotAccent:          "#fbbf24",
		SlotAccentSecondary: "#f9fafb",
	}
}

// purpleTitleSize picks font size, line height and first baseline for the
// wrapped title.
func purpleTitleSize(lines []string) (fontSize, lineHeight, startY int) {
	switch {
	case len(lines) == 1 && utf8.RuneCountInString(lines[0]) <= purpleShortTitle:
		return 72, 85, 280
	case len(lines) <= 2:
		return 60, 75, 240
	default:
		return 48, 60, 200
	}
}

func (p *PurpleGuide) Render(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	colors := p.Colors(p.DefaultColors())

	var sb strings.Builder
	sb.WriteString(Header())
	sb.WriteString(Defs(
		linearGradient("bgGradient", "100%", "100%",
			stop{"0%", colors[SlotGradientStart], "1"},
			stop{"100%", colors[SlotGradientEnd], "1"},
		),
		circleClip("rightImageClip"),
		circleClip("logoClip"),
	))
	sb.WriteString(`<rect width="1200" height="630" fill="url(#bgGradient)"/>` + "\n")

	p.title(&sb, colors)
	p.sideImage(ctx, &sb, colors)
	p.domain(ctx, &sb, colors)

	sb.WriteString(Footer())
	return sb.String(), nil
}

func (p *PurpleGuide) title(sb *strings.Builder, colors ColorScheme) {
	lines := markup.WrapLines(p.input.Title(), purpleLineChars, 0)
	fontSize, lineHeight, startY := purpleTitleSize(lines)

	for i, line := range lines {
		fmt.Fprintf(sb, `<text x="80" y="%d" font-family="%s" font-size="%d" font-weight="800" fill="%s" letter-spacing="-1px">`+"\n",
			startY+i*lineHeight, fontStack, fontSize, colors[SlotTextPrimary])
		writeText(sb, strings.TrimSpace(line))
	}
}

// sideImage shows the featured image, or the avatar, in a ring on the right.
func (p *PurpleGuide) sideImage(ctx context.Context, sb *strings.Builder, colors ColorScheme) {
	const radius = purpleImageSize / 2
	cx, cy := purpleImageX+radius, purpleImageY+radius

	ref := p.FeaturedImageURL()
	if ref == "" {
		ref = p.input.AvatarURL
	}
	if ref == "" {
		sb.WriteString(purpleDecoration(float64(cx), float64(cy), radius, colors))
		return
	}

	fmt.Fprintf(sb, `<circle cx="%d" cy="%d" r="%d" fill="rgba(255,255,255,0.1)" stroke="rgba(255,255,255,0.2)" stroke-width="2"/>`+"\n", cx, cy, radius+5)
	if uri, ok := p.Image(ctx, ref); ok {
		fmt.Fprintf(sb, `<image x="%d" y="%d" width="%d" height="%d" href="%s" clip-path="url(#rightImageClip)" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			purpleImageX, purpleImageY, purpleImageSize, purpleImageSize, uri)
		return
	}
	sb.WriteString(purpleDecoration(float64(cx), float64(cy), radius, colors))
}

// purpleDecoration draws a stylised document inside a circle.
func purpleDecoration(cx, cy, r float64, colors ColorScheme) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<circle cx="%s" cy="%s" r="%s" fill="rgba(255,255,255,0.1)" stroke="rgba(255,255,255,0.3)" stroke-width="3"/>`+"\n", num(cx), num(cy), num(r))

	inner := r * 0.6
	fmt.Fprintf(&sb, `<rect x="%s" y="%s" width="%s" height="%s" rx="8" fill="rgba(255,255,255,0.9)" stroke="rgba(255,255,255,0.5)" stroke-width="2"/>`+"\n",
		num(cx-inner/2), num(cy-inner/2), num(inner), num(inner*1.2))

	lineY := cy - inner/3
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&sb, `<rect x="%s" y="%s" width="%s" height="2" rx="1" fill="%s" opacity="0.6"/>`+"\n",
			num(cx-inner/3), num(lineY+float64(i*8)), num(inner/1.5), colors[SlotBackground])
	}
	return sb.String()
}

// domain writes the site domain in the bottom left, next to the avatar when
// one is configured.
func (p *PurpleGuide) domain(ctx context.Context, sb *strings.Builder, colors ColorScheme) {
	domain := p.CleanDomain()

	if p.input.AvatarURL == "" {
		fmt.Fprintf(sb, `<text x="80" y="600" font-family="%s" font-size="20" font-weight="500" fill="%s">`+"\n", fontSans, colors[SlotTextSecondary])
		writeText(sb, domain)
		return
	}

	const logoX, logoY = 80, 580
	fmt.Fprintf(sb, `<circle cx="%d" cy="%d" r="18" fill="rgba(255,255,255,0.15)" stroke="rgba(255,255,255,0.3)" stroke-width="2"/>`+"\n", logoX+15, logoY+15)
	if uri, ok := p.Image(ctx, p.input.AvatarURL); ok {
		fmt.Fprintf(sb, `<image x="%d" y="%d" width="30" height="30" href="%s" clip-path="url(#logoClip)"/>`+"\n", logoX, logoY, uri)
	} else {
		fmt.Fprintf(sb, `<circle cx="%d" cy="%d" r="8" fill="rgba(255,255,255,0.4)"/>`+"\n", logoX+15, logoY+15)
	}

	fmt.Fprintf(sb, `<text x="%d" y="%d" font-family="%s" font-size="18" font-weight="500" fill="%s">`+"\n", logoX+45, logoY+20, fontSans, colors[SlotTextSecondary])
	writeText(sb, domain)
}
