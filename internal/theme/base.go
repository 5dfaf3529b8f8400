// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"ogsvg/internal/markup"
)

// Font stacks used by the layouts.
const (
	fontStack = "system-ui, -apple-system, BlinkMacSystemFont, sans-serif"
	fontSans  = "system-ui, sans-serif"
)

// dateLayout formats publish dates, e.g. "Mar 5, 2026".
const dateLayout = "Jan 2, 2006"

// Base carries the render inputs and the helpers shared by every theme.
// Themes embed it.
type Base struct {
	settings Settings
	input    Input
	images   Inliner
}

// NewBase bundles the inputs of a render. images may be nil, in which case
// every image is unavailable.
func NewBase(settings Settings, input Input, images Inliner) Base {
	return Base{settings: settings, input: input, images: images}
}

// Colors returns defaults with the valid custom colors applied to the
// overridable slots.
func (b *Base) Colors(defaults ColorScheme) ColorScheme {
	colors := make(ColorScheme, len(defaults))
	for k, v := range defaults {
		colors[k] = v
	}
	for _, slot := range OverridableSlots {
		if c := b.settings.CustomColors[slot]; ValidColor(c) {
			colors[slot] = c
		}
	}
	return colors
}

// post returns the item metadata, or nil for home renders.
func (b *Base) post() *PostMeta {
	if b.input.PostID == nil {
		return nil
	}
	return b.input.Post
}

// FeaturedImageURL returns the item's featured image, or "" if none.
func (b *Base) FeaturedImageURL() string {
	if p := b.post(); p != nil {
		return strings.TrimSpace(p.FeaturedImageURL)
	}
	return ""
}

// Image returns ref as a data URI.
func (b *Base) Image(ctx context.Context, ref string) (string, bool) {
	if b.images == nil || ref == "" {
		return "", false
	}
	asset, ok := b.images.Inline(ctx, ref)
	if !ok {
		return "", false
	}
	return asset.URI(), true
}

// FeaturedImageBackground draws ref across the whole canvas with a flat
// overlay on top. It returns "" when the image is unavailable.
func (b *Base) FeaturedImageBackground(ctx context.Context, ref, overlay string, opacity float64) string {
	uri, ok := b.Image(ctx, ref)
	if !ok {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, `<image x="0" y="0" width="1200" height="630" href="%s" preserveAspectRatio="xMidYMid slice"/>`+"\n", uri)
	fmt.Fprintf(&sb, `<rect width="1200" height="630" fill="%s" opacity="%s"/>`+"\n", overlay, num(opacity))
	return sb.String()
}

// CleanDomain returns the host of the site URL without a leading "www.".
func (b *Base) CleanDomain() string {
	return cleanDomain(b.input.SiteURL)
}

func cleanDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	host := ""
	if u, err := url.Parse(raw); err == nil {
		host = u.Hostname()
	}
	if host == "" {
		host = strings.SplitN(strings.SplitN(raw, "://", 2)[1], "/", 2)[0]
	}
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// Header opens an SVG document.
func Header() string {
	return `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<svg width="1200" height="630" viewBox="0 0 1200 630" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">` + "\n"
}

// Footer closes an SVG document.
func Footer() string {
	return "</svg>"
}

// Defs wraps definition fragments in a <defs> element.
func Defs(parts ...string) string {
	return "<defs>\n" + strings.Join(parts, "") + "</defs>\n"
}

// BaseDefs returns the definitions every theme starts from: the background
// gradient, a text shadow filter and a circular avatar clip. The clip uses
// object bounding box units so it follows whichever image references it.
func BaseDefs(colors ColorScheme) string {
	return linearGradient("bgGradient", "100%", "100%",
		stop{"0%", colors[SlotGradientStart], "1"},
		stop{"100%", colors[SlotGradientEnd], "1"},
	) +
		`<filter id="textShadow" x="-20%" y="-20%" width="140%" height="140%">` + "\n" +
		`<feDropShadow dx="2" dy="2" stdDeviation="3" flood-color="rgba(0,0,0,0.3)"/>` + "\n" +
		"</filter>\n" +
		circleClip("avatarClip")
}

// stop is one gradient stop.
type stop struct {
	offset  string
	color   string
	opacity string
}

// linearGradient starts at the top left corner and runs towards (x2, y2).
func linearGradient(id, x2, y2 string, stops ...stop) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<linearGradient id="%s" x1="0%%" y1="0%%" x2="%s" y2="%s">`+"\n", id, x2, y2)
	for _, s := range stops {
		fmt.Fprintf(&sb, `<stop offset="%s" style="stop-color:%s;stop-opacity:%s" />`+"\n", s.offset, s.color, s.opacity)
	}
	sb.WriteString("</linearGradient>\n")
	return sb.String()
}

// circleClip is a circle inscribed in the clipped element's bounding box.
func circleClip(id string) string {
	return `<clipPath id="` + id + `" clipPathUnits="objectBoundingBox">` + "\n" +
		`<circle cx="0.5" cy="0.5" r="0.5"/>` + "\n" +
		"</clipPath>\n"
}

// writeText emits escaped text content and closes the element opened by the
// caller.
func writeText(sb *strings.Builder, content string) {
	sb.WriteString(markup.Escape(content))
	sb.WriteString("\n</text>\n")
}

// num formats a coordinate without trailing zeros.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*1e4)/1e4, 'f', -1, 64)
}

// personIcon is the avatar placeholder drawn inside a circle centered on
// (cx, cy).
func personIcon(cx, cy int, fill string) string {
	return fmt.Sprintf(`<path d="M%d %d c-11 0 -20 9 -20 20 s 9 20 20 20 s 20 -9 20 -20 s -9 -20 -20 -20 z M%d %d c-16.5 0 -30 13.5 -30 30 l 60 0 c 0 -16.5 -13.5 -30 -30 -30 z" fill="%s"/>`+"\n",
		cx, cy-30, cx, cy+20, fill)
}
