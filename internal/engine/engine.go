// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package engine renders OpenGraph images for site items. It gathers the
// page data from the host stores, picks a theme and renders it, retrying
// once with the default theme when the chosen one fails.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"ogsvg/internal/markdown"
	"ogsvg/internal/markup"
	"ogsvg/internal/models"
	"ogsvg/internal/theme"
)

// Errors returned by Render and Compose.
var (
	ErrNoTitleData     = errors.New("no title data available")
	ErrAllThemesFailed = errors.New("all themes failed")
)

// excerptLength caps excerpts derived from item bodies.
const excerptLength = 160

// maxCategories is the number of categories passed to themes.
const maxCategories = 3

// MetaSource loads item metadata. PostMeta returns nil, nil for unknown ids.
type MetaSource interface {
	PostMeta(id int64) (*models.PostMeta, error)
}

// SettingsSource loads the site-wide image settings.
type SettingsSource interface {
	OGSettings() (models.OGSettings, error)
}

// OverrideSource loads the per-item theme override, "" when unset.
type OverrideSource interface {
	ThemeOverride(id int64) (string, error)
}

// Themes is the theme catalog. *theme.Registry satisfies it.
type Themes interface {
	Get(id string, settings theme.Settings, input theme.Input) (theme.Theme, error)
	Resolve(id string) string
	Exists(id string) bool
	Available() map[string]theme.Descriptor
}

// Result is a rendered image.
type Result struct {
	SVG     string
	ThemeID string // theme that produced SVG

	// NotFound is set when the requested item does not exist or is not
	// published. SVG then holds the "not found" card.
	NotFound bool
}

// Engine renders images from host data.
type Engine struct {
	themes    Themes
	meta      MetaSource
	settings  SettingsSource
	overrides OverrideSource
}

// New creates an Engine. overrides may be nil.
func New(themes Themes, meta MetaSource, settings SettingsSource, overrides OverrideSource) *Engine {
	return &Engine{themes: themes, meta: meta, settings: settings, overrides: overrides}
}

// Render renders the image for an item, or the home page when itemID is nil.
func (e *Engine) Render(ctx context.Context, itemID *int64) (Result, error) {
	s, err := e.settings.OGSettings()
	if err != nil {
		return Result{}, fmt.Errorf("loading settings: %w", err)
	}
	return e.render(ctx, itemID, s, "")
}

// RenderPreview renders with unsaved settings merged over the stored ones.
// A theme in the override wins over the item's own override.
func (e *Engine) RenderPreview(ctx context.Context, itemID *int64, override models.OGSettingsOverride) (Result, error) {
	s, err := e.settings.OGSettings()
	if err != nil {
		return Result{}, fmt.Errorf("loading settings: %w", err)
	}
	forced := ""
	if override.ThemeID != nil {
		forced = strings.TrimSpace(*override.ThemeID)
	}
	return e.render(ctx, itemID, override.Apply(s), forced)
}

func (e *Engine) render(ctx context.Context, itemID *int64, s models.OGSettings, themeID string) (Result, error) {
	input, found, err := e.gather(itemID, s)
	if err != nil {
		return Result{}, err
	}
	if themeID == "" {
		themeID = e.resolveTheme(itemID, s)
	}
	settings := theme.Settings{
		ShowTagline:  s.ShowTagline,
		FooterText:   s.FooterText,
		CustomColors: s.CustomColors,
	}
	res, err := e.Compose(ctx, themeID, settings, input)
	if err != nil {
		return Result{}, err
	}
	res.NotFound = !found
	return res, nil
}

// gather builds the theme input for an item. found is false for unknown or
// unpublished items.
func (e *Engine) gather(itemID *int64, s models.OGSettings) (in theme.Input, found bool, err error) {
	in = theme.Input{
		SiteTitle: strings.TrimSpace(s.SiteTitle),
		Tagline:   strings.TrimSpace(s.Tagline),
		AvatarURL: strings.TrimSpace(s.AvatarURL),
		SiteURL:   strings.TrimSpace(s.SiteURL),
	}

	fallbackTitle := strings.TrimSpace(s.FallbackTitle)
	if fallbackTitle == "" {
		fallbackTitle = models.DefaultFallbackTitle
	}
	if itemID == nil {
		in.PageTitle = fallbackTitle
		return in, true, nil
	}

	in.PostID = itemID
	meta, err := e.meta.PostMeta(*itemID)
	if err != nil {
		return theme.Input{}, false, fmt.Errorf("loading item %d: %w", *itemID, err)
	}
	if meta == nil {
		slog.Info("og image requested for unknown item", "item_id", *itemID)
		in.PageTitle = notFoundTitle(s)
		return in, false, nil
	}

	in.PageTitle = strings.TrimSpace(meta.Title)
	if in.PageTitle == "" {
		in.PageTitle = fallbackTitle
	}

	excerpt := strings.TrimSpace(meta.Excerpt)
	if excerpt == "" && meta.Body != "" {
		excerpt = markdown.Excerpt(meta.Body, excerptLength)
	}

	categories := meta.Categories
	if len(categories) > maxCategories {
		categories = categories[:maxCategories]
	}

	post := &theme.PostMeta{
		Excerpt:          excerpt,
		Author:           strings.TrimSpace(meta.AuthorName),
		Categories:       categories,
		FeaturedImageURL: strings.TrimSpace(meta.FeaturedImageURL),
	}
	if meta.PublishedAt != nil {
		post.PublishedAt = *meta.PublishedAt
	}
	in.Post = post
	return in, true, nil
}

// notFoundTitle is the page title for unknown items: the configured
// fallback title when one is set, "Page Not Found" otherwise.
func notFoundTitle(s models.OGSettings) string {
	if t := strings.TrimSpace(s.FallbackTitle); t != "" {
		return t
	}
	return models.NotFoundTitle
}

// resolveTheme picks the item override, then the site theme, then the
// default.
func (e *Engine) resolveTheme(itemID *int64, s models.OGSettings) string {
	if itemID != nil && e.overrides != nil {
		id, err := e.overrides.ThemeOverride(*itemID)
		if err != nil {
			slog.Warn("loading theme override", "item_id", *itemID, "error", err)
		} else if id = strings.TrimSpace(id); id != "" {
			return id
		}
	}
	if id := strings.TrimSpace(s.ThemeID); id != "" {
		return id
	}
	return theme.DefaultID
}

// Compose renders input with the theme themeID. When that theme fails the
// default theme is tried once.
func (e *Engine) Compose(ctx context.Context, themeID string, settings theme.Settings, input theme.Input) (Result, error) {
	if strings.TrimSpace(input.SiteTitle) == "" && strings.TrimSpace(input.PageTitle) == "" {
		return Result{}, ErrNoTitleData
	}

	svg, err := e.attempt(ctx, themeID, settings, input)
	if err == nil {
		return Result{SVG: svg, ThemeID: e.themes.Resolve(themeID)}, nil
	}
	if errors.Is(err, theme.ErrNoThemes) {
		return Result{}, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, ctxErr
	}
	if e.themes.Resolve(themeID) == theme.DefaultID {
		return Result{}, fmt.Errorf("%w: %w", ErrAllThemesFailed, err)
	}

	slog.Warn("theme failed, falling back to default", "theme", themeID, "error", err)
	svg, fallbackErr := e.attempt(ctx, theme.DefaultID, settings, input)
	if fallbackErr != nil {
		slog.Error("default theme failed", "error", fallbackErr)
		return Result{}, fmt.Errorf("%w: %s: %w; %s: %w", ErrAllThemesFailed, themeID, err, theme.DefaultID, fallbackErr)
	}
	return Result{SVG: svg, ThemeID: theme.DefaultID}, nil
}

// attempt renders one theme, turning panics into errors.
func (e *Engine) attempt(ctx context.Context, id string, settings theme.Settings, input theme.Input) (svg string, err error) {
	th, err := e.themes.Get(id, settings, input)
	if err != nil {
		return "", err
	}

	defer func() {
		if r := recover(); r != nil {
			svg, err = "", fmt.Errorf("theme %q panicked: %v", id, r)
		}
	}()

	svg, err = th.Render(ctx)
	if err != nil {
		return "", fmt.Errorf("theme %q: %w", id, err)
	}
	if strings.TrimSpace(svg) == "" {
		return "", fmt.Errorf("theme %q produced no output", id)
	}
	return svg, nil
}

// ListThemes returns the available themes keyed by id.
func (e *Engine) ListThemes() map[string]theme.Descriptor {
	return e.themes.Available()
}

// ThemeExists reports whether id is a registered theme.
func (e *Engine) ThemeExists(id string) bool {
	return e.themes.Exists(id)
}

// Fallback returns the static fallback image for the site. cause is
// embedded as a debug note when non-nil.
func (e *Engine) Fallback(cause error) string {
	name := ""
	if s, err := e.settings.OGSettings(); err == nil {
		name = s.SiteTitle
	}
	return FallbackSVG(name, cause)
}

// FallbackSVG is the minimal image served when rendering fails. It has no
// dynamic content besides the site name.
func FallbackSVG(siteName string, cause error) string {
	siteName = strings.TrimSpace(siteName)
	if siteName == "" {
		siteName = "Website"
	}

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	if cause != nil {
		sb.WriteString("<!-- Error: " + commentSafe(cause.Error()) + " -->\n")
	}
	sb.WriteString(`<svg width="1200" height="630" viewBox="0 0 1200 630" xmlns="http://www.w3.org/2000/svg">` + "\n")
	sb.WriteString(`<rect width="1200" height="630" fill="#1e293b"/>` + "\n")
	sb.WriteString(`<text x="600" y="280" font-family="system-ui, sans-serif" font-size="36" font-weight="600" fill="#f8fafc" text-anchor="middle">` + "\n")
	sb.WriteString(markup.Escape(siteName) + "\n</text>\n")
	sb.WriteString(`<text x="600" y="320" font-family="system-ui, sans-serif" font-size="16" fill="#cbd5e1" text-anchor="middle">` + "\n")
	sb.WriteString("OpenGraph Image\n</text>\n")
	if cause != nil {
		sb.WriteString(`<text x="600" y="360" font-family="monospace" font-size="12" fill="#ef4444" text-anchor="middle">` + "\n")
		sb.WriteString("Debug: " + markup.Escape(markup.Truncate(cause.Error(), 80)) + "\n</text>\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// commentSafe makes s usable inside an XML comment.
func commentSafe(s string) string {
	s = markup.Escape(s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "- -")
	}
	return s
}
