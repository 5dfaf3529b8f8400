package models

import (
	"reflect"
	"testing"
)

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestOGSettingsFrom(t *testing.T) {
	s := SiteSettings{
		SettingSiteTitle:                    "Acme",
		SettingSiteURL:                      "https://acme.dev",
		SettingTheme:                        "minimal",
		SettingShowTagline:                  "false",
		SettingColorPrefix + "accent":       "#ff0000",
		SettingColorPrefix + "text_primary": "  ",
		SettingColorPrefix + "background":   "#000000",
	}
	og := OGSettingsFrom(s)

	if og.SiteTitle != "Acme" || og.ThemeID != "minimal" {
		t.Errorf("got %+v", og)
	}
	if og.ShowTagline {
		t.Error("ShowTagline: got true, want false")
	}
	if og.FallbackTitle != DefaultFallbackTitle {
		t.Errorf("FallbackTitle: got %q, want %q", og.FallbackTitle, DefaultFallbackTitle)
	}
	want := map[string]string{"accent": "#ff0000"}
	if !reflect.DeepEqual(og.CustomColors, want) {
		t.Errorf("CustomColors: got %v, want %v", og.CustomColors, want)
	}
}

func TestOGSettingsFromDefaults(t *testing.T) {
	og := OGSettingsFrom(SiteSettings{SettingShowTagline: "maybe"})
	if !og.ShowTagline {
		t.Error("unparsable show_tagline should default to true")
	}
	if og.CustomColors != nil {
		t.Errorf("CustomColors: got %v, want nil", og.CustomColors)
	}
}

func TestOGSettingsOverrideApply(t *testing.T) {
	base := OGSettings{
		SiteTitle:    "Acme",
		ThemeID:      "gabriel",
		ShowTagline:  true,
		FooterText:   "old",
		CustomColors: map[string]string{"accent": "#111111", "gradient_end": "#222222"},
	}

	o := OGSettingsOverride{
		ThemeID:      strp("minimal"),
		ShowTagline:  boolp(false),
		CustomColors: map[string]string{"accent": "#ff0000", "gradient_end": ""},
	}
	got := o.Apply(base)

	if got.ThemeID != "minimal" || got.ShowTagline || got.FooterText != "old" || got.SiteTitle != "Acme" {
		t.Errorf("got %+v", got)
	}
	want := map[string]string{"accent": "#ff0000"}
	if !reflect.DeepEqual(got.CustomColors, want) {
		t.Errorf("CustomColors: got %v, want %v", got.CustomColors, want)
	}
	if base.CustomColors["accent"] != "#111111" {
		t.Error("Apply modified the stored settings")
	}

	if empty := (OGSettingsOverride{}).Apply(base); !reflect.DeepEqual(empty, base) {
		t.Errorf("empty override changed settings: %+v", empty)
	}
}

func TestOGSettingsOverrideFingerprint(t *testing.T) {
	a := OGSettingsOverride{ThemeID: strp("minimal"), CustomColors: map[string]string{"accent": "#fff", "text_primary": "#000"}}
	b := OGSettingsOverride{ThemeID: strp("minimal"), CustomColors: map[string]string{"text_primary": "#000", "accent": "#fff"}}
	c := OGSettingsOverride{ThemeID: strp("gabriel")}

	if a.Fingerprint() != b.Fingerprint() {
		t.Error("equal overrides should share a fingerprint")
	}
	if a.Fingerprint() == c.Fingerprint() {
		t.Error("different overrides should not share a fingerprint")
	}
	if len(a.Fingerprint()) != 16 {
		t.Errorf("fingerprint length: got %d, want 16", len(a.Fingerprint()))
	}
}

func TestOGSettingsValuesRoundTrip(t *testing.T) {
	og := OGSettings{
		SiteTitle:     "Acme",
		SiteURL:       "https://acme.dev",
		Tagline:       "Notes",
		ThemeID:       "minimal",
		ShowTagline:   false,
		FooterText:    "Read more",
		FallbackTitle: "Hello",
		CustomColors:  map[string]string{"accent": "#ff0000"},
	}
	v := og.Values()

	if v[SettingShowTagline] != "false" {
		t.Errorf("show_tagline: got %q, want %q", v[SettingShowTagline], "false")
	}
	if v[SettingColorPrefix+"gradient_end"] != "" {
		t.Error("unset color slots should map to an empty value")
	}
	if back := OGSettingsFrom(v); !reflect.DeepEqual(back, og) {
		t.Errorf("round trip: got %+v, want %+v", back, og)
	}

	for key := range v {
		if !IsOGSettingKey(key) {
			t.Errorf("Values produced unknown key %q", key)
		}
	}
	if len(v) != len(OGSettingKeys()) {
		t.Errorf("Values: got %d keys, want %d", len(v), len(OGSettingKeys()))
	}
}

func TestIsOGSettingKey(t *testing.T) {
	for _, key := range []string{SettingTheme, SettingSiteTitle, "og_color_accent"} {
		if !IsOGSettingKey(key) {
			t.Errorf("IsOGSettingKey(%q) = false, want true", key)
		}
	}
	for _, key := range []string{"", "og_color_background", "admin_email"} {
		if IsOGSettingKey(key) {
			t.Errorf("IsOGSettingKey(%q) = true, want false", key)
		}
	}
}
