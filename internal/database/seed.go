package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// defaultSettings are written once so a fresh install renders sensible
// images. Existing values are never overwritten.
var defaultSettings = map[string]string{
	"site_title":        "My Site",
	"site_url":          "http://localhost:8080",
	"site_tagline":      "Thoughts, notes and releases",
	"og_theme":          "gabriel",
	"og_show_tagline":   "true",
	"og_fallback_title": "Welcome",
}

// Seed writes the default image settings. Values an operator already set
// are kept.
func Seed(db *sql.DB) error {
	for k, v := range defaultSettings {
		if _, err := db.Exec(`
			INSERT INTO site_settings (key, value, updated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (key) DO NOTHING`, k, v, time.Now()); err != nil {
			return fmt.Errorf("seed setting %s: %w", k, err)
		}
	}

	slog.Info("default settings seeded", "keys", len(defaultSettings))
	return nil
}
