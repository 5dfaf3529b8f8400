// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"ogsvg/internal/models"
)

// ContentStore handles posts and pages. It implements the item metadata and
// theme override sources used by the render engine.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const contentColumns = `id, type, title, slug, body, excerpt, status, author_id,
	featured_image_url, og_theme, published_at, created_at, updated_at`

func scanContent(scanner interface{ Scan(...any) error }) (*models.Content, error) {
	c := &models.Content{}
	err := scanner.Scan(
		&c.ID, &c.Type, &c.Title, &c.Slug, &c.Body, &c.Excerpt, &c.Status, &c.AuthorID,
		&c.FeaturedImageURL, &c.OGTheme, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// FindByID retrieves a content item by its id. Returns nil if not found.
func (s *ContentStore) FindByID(id int64) (*models.Content, error) {
	c, err := scanContent(s.db.QueryRow(`SELECT `+contentColumns+` FROM content WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// Create inserts a new content item and returns it with the generated ID.
func (s *ContentStore) Create(c *models.Content) (*models.Content, error) {
	// If publishing, set the published_at timestamp.
	if c.Status == models.ContentStatusPublished && c.PublishedAt == nil {
		now := time.Now()
		c.PublishedAt = &now
	}

	created, err := scanContent(s.db.QueryRow(`
		INSERT INTO content (type, title, slug, body, excerpt, status, author_id,
		                     featured_image_url, og_theme, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+contentColumns,
		c.Type, c.Title, c.Slug, c.Body, c.Excerpt, c.Status, c.AuthorID,
		c.FeaturedImageURL, c.OGTheme, c.PublishedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return created, nil
}

// Delete removes a content item.
func (s *ContentStore) Delete(id int64) error {
	if _, err := s.db.Exec(`DELETE FROM content WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	return nil
}

// PostMeta returns the image metadata of a published item: its author's
// display name and its categories in assignment order. Returns nil for
// unknown or unpublished items.
func (s *ContentStore) PostMeta(id int64) (*models.PostMeta, error) {
	m := &models.PostMeta{ID: id}
	var excerpt, featured, author sql.NullString
	err := s.db.QueryRow(`
		SELECT c.title, c.body, c.excerpt, c.featured_image_url, c.published_at, u.display_name
		FROM content c
		LEFT JOIN users u ON u.id = c.author_id
		WHERE c.id = $1 AND c.status = 'published'
	`, id).Scan(&m.Title, &m.Body, &excerpt, &featured, &m.PublishedAt, &author)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("post meta: %w", err)
	}
	m.Excerpt = excerpt.String
	m.FeaturedImageURL = featured.String
	m.AuthorName = author.String

	rows, err := s.db.Query(`
		SELECT cat.name
		FROM content_categories cc
		JOIN categories cat ON cat.id = cc.category_id
		WHERE cc.content_id = $1
		ORDER BY cc.position, cat.sort_order, cat.name
	`, id)
	if err != nil {
		return nil, fmt.Errorf("post categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		m.Categories = append(m.Categories, name)
	}
	return m, rows.Err()
}

// ThemeOverride returns the item's theme override, or "" when unset.
func (s *ContentStore) ThemeOverride(id int64) (string, error) {
	var theme sql.NullString
	err := s.db.QueryRow(`SELECT og_theme FROM content WHERE id = $1`, id).Scan(&theme)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("theme override: %w", err)
	}
	return strings.TrimSpace(theme.String), nil
}

// SetThemeOverride stores the item's theme override. An empty id clears it.
func (s *ContentStore) SetThemeOverride(id int64, themeID string) error {
	var value *string
	if themeID = strings.TrimSpace(themeID); themeID != "" {
		value = &themeID
	}
	_, err := s.db.Exec(`UPDATE content SET og_theme = $1, updated_at = $2 WHERE id = $3`, value, time.Now(), id)
	if err != nil {
		return fmt.Errorf("set theme override: %w", err)
	}
	return nil
}
