package handlers

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"ogsvg/internal/models"
	"ogsvg/internal/theme"
)

// Validation limits for preview settings.
const (
	maxThemeIDLen    = 100
	maxFooterTextLen = 200
	maxURLLen        = 2_048
)

// validatePreview checks unsaved settings sent for a preview and returns the
// first error found. exists reports whether a theme id is registered.
func validatePreview(o models.OGSettingsOverride, exists func(string) bool) string {
	if o.ThemeID != nil {
		id := strings.TrimSpace(*o.ThemeID)
		if utf8.RuneCountInString(id) > maxThemeIDLen {
			return "Theme id is too long (max 100 characters)."
		}
		if id != "" && !exists(id) {
			return fmt.Sprintf("Unknown theme %q.", id)
		}
	}
	if o.FooterText != nil && utf8.RuneCountInString(*o.FooterText) > maxFooterTextLen {
		return "Footer text is too long (max 200 characters)."
	}
	if o.AvatarURL != nil && len(*o.AvatarURL) > maxURLLen {
		return "Avatar URL is too long."
	}
	for slot, c := range o.CustomColors {
		if !slices.Contains(models.ColorSlots, slot) {
			return fmt.Sprintf("Unknown color slot %q.", slot)
		}
		if c != "" && !theme.ValidColor(c) {
			return fmt.Sprintf("Invalid color %q for %s (use #rgb or #rrggbb).", c, slot)
		}
	}
	return ""
}
