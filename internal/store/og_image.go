// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"ogsvg/internal/models"
)

// OGImageStore records published images, one row per item key.
type OGImageStore struct {
	db *sql.DB
}

// NewOGImageStore creates a new OGImageStore.
func NewOGImageStore(db *sql.DB) *OGImageStore {
	return &OGImageStore{db: db}
}

const ogImageColumns = `id, content_id, item_key, theme_id, svg_path, svg_url, png_url, created_at, updated_at`

func scanOGImage(scanner interface{ Scan(...any) error }) (*models.OGImage, error) {
	img := &models.OGImage{}
	err := scanner.Scan(
		&img.ID, &img.ContentID, &img.ItemKey, &img.ThemeID, &img.SVGPath,
		&img.SVGURL, &img.PNGURL, &img.CreatedAt, &img.UpdatedAt,
	)
	return img, err
}

// Upsert inserts the record or refreshes the existing one for the same item
// key. created is true when a new row was inserted.
func (s *OGImageStore) Upsert(img *models.OGImage) (saved *models.OGImage, created bool, err error) {
	row := s.db.QueryRow(`
		INSERT INTO og_images (content_id, item_key, theme_id, svg_path, svg_url, png_url, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (item_key) DO UPDATE SET
			theme_id = EXCLUDED.theme_id,
			svg_path = EXCLUDED.svg_path,
			svg_url = EXCLUDED.svg_url,
			png_url = EXCLUDED.png_url,
			updated_at = EXCLUDED.updated_at
		RETURNING `+ogImageColumns+`, (xmax = 0)`,
		img.ContentID, img.ItemKey, img.ThemeID, img.SVGPath, img.SVGURL, img.PNGURL, time.Now(),
	)

	saved = &models.OGImage{}
	err = row.Scan(
		&saved.ID, &saved.ContentID, &saved.ItemKey, &saved.ThemeID, &saved.SVGPath,
		&saved.SVGURL, &saved.PNGURL, &saved.CreatedAt, &saved.UpdatedAt, &created,
	)
	if err != nil {
		return nil, false, fmt.Errorf("upsert og image: %w", err)
	}
	return saved, created, nil
}

// FindByItemKey returns the record for an item key. Returns nil if not found.
func (s *OGImageStore) FindByItemKey(key string) (*models.OGImage, error) {
	img, err := scanOGImage(s.db.QueryRow(`SELECT `+ogImageColumns+` FROM og_images WHERE item_key = $1`, key))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find og image: %w", err)
	}
	return img, nil
}

// DeleteByItemKey removes the record for an item key.
func (s *OGImageStore) DeleteByItemKey(key string) error {
	if _, err := s.db.Exec(`DELETE FROM og_images WHERE item_key = $1`, key); err != nil {
		return fmt.Errorf("delete og image: %w", err)
	}
	return nil
}
