// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "strconv"

// Setting keys read by the image generator.
const (
	SettingSiteTitle     = "site_title"
	SettingSiteURL       = "site_url"
	SettingSiteTagline   = "site_tagline"
	SettingAvatarURL     = "og_avatar_url"
	SettingTheme         = "og_theme"
	SettingShowTagline   = "og_show_tagline"
	SettingFooterText    = "og_footer_text"
	SettingFallbackTitle = "og_fallback_title"

	// SettingColorPrefix is followed by a color slot name, e.g. og_color_accent.
	SettingColorPrefix = "og_color_"
)

// ogKeys are the fixed (non-color) image setting keys.
var ogKeys = []string{
	SettingSiteTitle, SettingSiteURL, SettingSiteTagline, SettingAvatarURL,
	SettingTheme, SettingShowTagline, SettingFooterText, SettingFallbackTitle,
}

// OGSettingKeys returns every key read by OGSettingsFrom, color slots
// included.
func OGSettingKeys() []string {
	keys := make([]string, 0, len(ogKeys)+len(ColorSlots))
	keys = append(keys, ogKeys...)
	for _, slot := range ColorSlots {
		keys = append(keys, SettingColorPrefix+slot)
	}
	return keys
}

// IsOGSettingKey reports whether key is one of OGSettingKeys.
func IsOGSettingKey(key string) bool {
	for _, k := range OGSettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// SiteSettings is a convenience map for accessing settings by key.
type SiteSettings map[string]string

// Get returns the value for a key, or the fallback if the key doesn't exist.
func (s SiteSettings) Get(key, fallback string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Bool parses a boolean setting. Missing or unparsable values return the
// fallback.
func (s SiteSettings) Bool(key string, fallback bool) bool {
	v, ok := s[key]
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
