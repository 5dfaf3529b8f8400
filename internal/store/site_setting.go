// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"ogsvg/internal/models"
)

// ErrUnknownSetting is returned when writing a key the image generator does
// not read.
var ErrUnknownSetting = errors.New("unknown setting")

// SiteSettingStore reads and writes the image settings kept in the
// site_settings table. Only the keys listed by models.OGSettingKeys are
// touched; other rows belong to the host site.
type SiteSettingStore struct {
	db *sql.DB
}

// NewSiteSettingStore returns a new SiteSettingStore backed by the given database.
func NewSiteSettingStore(db *sql.DB) *SiteSettingStore {
	return &SiteSettingStore{db: db}
}

// OGSettings loads the image settings. It implements the settings source
// used by the render engine.
func (s *SiteSettingStore) OGSettings() (models.OGSettings, error) {
	rows, err := s.db.Query(`SELECT key, value FROM site_settings WHERE key = ANY($1)`, models.OGSettingKeys())
	if err != nil {
		return models.OGSettings{}, fmt.Errorf("loading og settings: %w", err)
	}
	defer rows.Close()

	values := make(models.SiteSettings)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return models.OGSettings{}, fmt.Errorf("scan og setting: %w", err)
		}
		values[k] = v
	}
	if err := rows.Err(); err != nil {
		return models.OGSettings{}, fmt.Errorf("loading og settings: %w", err)
	}
	return models.OGSettingsFrom(values), nil
}

// SaveOGSettings stores og in one transaction. Empty values are deleted, so
// color slots fall back to the theme palette and the fallback title to its
// default.
func (s *SiteSettingStore) SaveOGSettings(og models.OGSettings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("save og settings: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for k, v := range og.Values() {
		if v == "" {
			if _, err := tx.Exec(`DELETE FROM site_settings WHERE key = $1`, k); err != nil {
				return fmt.Errorf("clear setting %s: %w", k, err)
			}
			continue
		}
		if err := upsertSetting(tx, k, v, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save og settings: %w", err)
	}
	return nil
}

// Set upserts a single image setting. Keys outside models.OGSettingKeys
// return ErrUnknownSetting.
func (s *SiteSettingStore) Set(key, value string) error {
	if !models.IsOGSettingKey(key) {
		return fmt.Errorf("set %q: %w", key, ErrUnknownSetting)
	}
	return upsertSetting(s.db, key, value, time.Now())
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func upsertSetting(db execer, key, value string, now time.Time) error {
	_, err := db.Exec(`
		INSERT INTO site_settings (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value, now,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
