// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme contains the OpenGraph image layouts. A theme turns page
// metadata into a complete 1200x630 SVG document. Themes are pure functions
// of their Settings, Input and the images the Inliner returns, so the same
// input always renders the same bytes.
package theme

import (
	"context"
	"regexp"
	"time"

	"ogsvg/internal/inline"
)

// Canvas size shared by every theme.
const (
	Width  = 1200
	Height = 630
)

// Color slot names.
const (
	SlotBackground      = "background"
	SlotGradientStart   = "gradient_start"
	SlotGradientEnd     = "gradient_end"
	SlotTextPrimary     = "text_primary"
	SlotTextSecondary   = "text_secondary"
	SlotAccent          = "accent"
	SlotAccentSecondary = "accent_secondary"

	// Theme specific extras.
	SlotAuthorText     = "author_text"
	SlotCardBackground = "card_background"
	SlotImageOverlay   = "image_overlay"
)

// OverridableSlots lists the slots custom colors may replace.
var OverridableSlots = []string{SlotAccent, SlotGradientStart, SlotGradientEnd, SlotTextPrimary}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether c is a #rgb or #rrggbb color.
func ValidColor(c string) bool {
	return hexColor.MatchString(c)
}

// ColorScheme maps slot names to colors.
type ColorScheme map[string]string

// Settings are the display options applied to a render.
type Settings struct {
	ShowTagline  bool
	FooterText   string
	CustomColors map[string]string
}

// PostMeta is the per-item data some layouts surface.
type PostMeta struct {
	Excerpt          string
	Author           string
	Categories       []string
	FeaturedImageURL string
	PublishedAt      time.Time
}

// Input is the page data for one render. PostID is nil for the home page.
type Input struct {
	SiteTitle string
	PageTitle string
	Tagline   string
	AvatarURL string
	SiteURL   string
	PostID    *int64
	Post      *PostMeta
}

// Title returns the page title, or the site title when the page has none.
func (in Input) Title() string {
	if in.PageTitle != "" {
		return in.PageTitle
	}
	return in.SiteTitle
}

// hasDistinctPageTitle reports whether the page title should be shown apart
// from the site title.
func (in Input) hasDistinctPageTitle() bool {
	return in.PageTitle != "" && in.PageTitle != in.SiteTitle
}

// Descriptor is the catalog entry for a theme.
type Descriptor struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	Description   string   `json:"description" yaml:"description"`
	Author        string   `json:"author" yaml:"author"`
	PreviewColors []string `json:"preview_colors" yaml:"preview_colors"`
}

// Inliner resolves image references into embeddable assets.
// *inline.Inliner satisfies it.
type Inliner interface {
	Inline(ctx context.Context, ref string) (inline.Asset, bool)
}

// Theme is a single layout.
type Theme interface {
	// Describe returns catalog metadata. It performs no I/O.
	Describe() Descriptor

	// DefaultColors returns the theme's base palette.
	DefaultColors() ColorScheme

	// Render produces the SVG document.
	Render(ctx context.Context) (string, error)
}
