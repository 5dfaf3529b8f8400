// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultFallbackTitle is the page title used for home renders when no
// fallback title is configured.
const DefaultFallbackTitle = "Welcome"

// NotFoundTitle is the page title used when an item id is unknown.
const NotFoundTitle = "Page Not Found"

// ColorSlots lists the color slots that can be configured per site.
var ColorSlots = []string{"accent", "gradient_start", "gradient_end", "text_primary"}

// PostMeta is the per-item data an image can show.
type PostMeta struct {
	ID               int64
	Title            string
	Excerpt          string
	Body             string
	AuthorName       string
	Categories       []string
	FeaturedImageURL string
	PublishedAt      *time.Time
}

// OGSettings is the site-wide image configuration.
type OGSettings struct {
	SiteTitle     string            `json:"site_title"`
	SiteURL       string            `json:"site_url"`
	Tagline       string            `json:"tagline"`
	AvatarURL     string            `json:"avatar_url"`
	ThemeID       string            `json:"theme_id"`
	ShowTagline   bool              `json:"show_tagline"`
	FooterText    string            `json:"footer_text"`
	FallbackTitle string            `json:"fallback_title"`
	CustomColors  map[string]string `json:"custom_colors,omitempty"`
}

// OGSettingsFrom extracts the image configuration from the site settings.
func OGSettingsFrom(s SiteSettings) OGSettings {
	og := OGSettings{
		SiteTitle:     s.Get(SettingSiteTitle, ""),
		SiteURL:       s.Get(SettingSiteURL, ""),
		Tagline:       s.Get(SettingSiteTagline, ""),
		AvatarURL:     s.Get(SettingAvatarURL, ""),
		ThemeID:       s.Get(SettingTheme, ""),
		ShowTagline:   s.Bool(SettingShowTagline, true),
		FooterText:    s.Get(SettingFooterText, ""),
		FallbackTitle: s.Get(SettingFallbackTitle, DefaultFallbackTitle),
	}
	for _, slot := range ColorSlots {
		if v := strings.TrimSpace(s.Get(SettingColorPrefix+slot, "")); v != "" {
			if og.CustomColors == nil {
				og.CustomColors = make(map[string]string)
			}
			og.CustomColors[slot] = v
		}
	}
	return og
}

// Values is the inverse of OGSettingsFrom: every image setting keyed by
// its site setting key. Color slots without a value map to "".
func (og OGSettings) Values() SiteSettings {
	v := SiteSettings{
		SettingSiteTitle:     og.SiteTitle,
		SettingSiteURL:       og.SiteURL,
		SettingSiteTagline:   og.Tagline,
		SettingAvatarURL:     og.AvatarURL,
		SettingTheme:         og.ThemeID,
		SettingShowTagline:   strconv.FormatBool(og.ShowTagline),
		SettingFooterText:    og.FooterText,
		SettingFallbackTitle: og.FallbackTitle,
	}
	for _, slot := range ColorSlots {
		v[SettingColorPrefix+slot] = strings.TrimSpace(og.CustomColors[slot])
	}
	return v
}

// OGSettingsOverride holds unsaved changes used for previews. Nil fields
// keep the stored value.
type OGSettingsOverride struct {
	ThemeID      *string           `json:"theme_id,omitempty"`
	ShowTagline  *bool             `json:"show_tagline,omitempty"`
	FooterText   *string           `json:"footer_text,omitempty"`
	AvatarURL    *string           `json:"avatar_url,omitempty"`
	CustomColors map[string]string `json:"custom_colors,omitempty"`
}

// Apply returns s with the override merged in. Custom colors are merged per
// slot; an empty value clears the slot.
func (o OGSettingsOverride) Apply(s OGSettings) OGSettings {
	if o.ThemeID != nil {
		s.ThemeID = *o.ThemeID
	}
	if o.ShowTagline != nil {
		s.ShowTagline = *o.ShowTagline
	}
	if o.FooterText != nil {
		s.FooterText = *o.FooterText
	}
	if o.AvatarURL != nil {
		s.AvatarURL = *o.AvatarURL
	}
	if len(o.CustomColors) > 0 {
		merged := make(map[string]string, len(s.CustomColors)+len(o.CustomColors))
		for k, v := range s.CustomColors {
			merged[k] = v
		}
		for k, v := range o.CustomColors {
			if v == "" {
				delete(merged, k)
				continue
			}
			merged[k] = v
		}
		s.CustomColors = merged
	}
	return s
}

// Fingerprint returns a stable hash of the override, used as a cache key.
func (o OGSettingsOverride) Fingerprint() string {
	// encoding/json sorts map keys, so equal overrides encode equally.
	data, _ := json.Marshal(o)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

// OGImage records a published image for an item, or for the home page when
// ContentID is nil.
type OGImage struct {
	ID        uuid.UUID `json:"id"`
	ContentID *int64    `json:"content_id,omitempty"`
	ItemKey   string    `json:"item_key"`
	ThemeID   string    `json:"theme_id"`
	SVGPath   string    `json:"svg_path"`
	SVGURL    string    `json:"svg_url"`
	PNGURL    *string   `json:"png_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
