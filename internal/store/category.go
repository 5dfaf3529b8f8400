// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"ogsvg/internal/models"
	"ogsvg/internal/slug"
)

// CategoryStore manages categories and their assignment to content.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// Create inserts a category. The slug is derived from the name when empty.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	if c.Slug == "" {
		c.Slug = slug.Generate(c.Name)
	}
	created := &models.Category{}
	err := s.db.QueryRow(`
		INSERT INTO categories (name, slug, sort_order)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, sort_order, created_at
	`, c.Name, c.Slug, c.SortOrder).Scan(
		&created.ID, &created.Name, &created.Slug, &created.SortOrder, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(slug string) (*models.Category, error) {
	c := &models.Category{}
	err := s.db.QueryRow(`
		SELECT id, name, slug, sort_order, created_at
		FROM categories WHERE slug = $1
	`, slug).Scan(&c.ID, &c.Name, &c.Slug, &c.SortOrder, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by slug: %w", err)
	}
	return c, nil
}

// Assign replaces the categories of a content item. Order is preserved.
func (s *CategoryStore) Assign(contentID int64, categoryIDs ...uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("assign categories: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM content_categories WHERE content_id = $1`, contentID); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	for i, id := range categoryIDs {
		if _, err := tx.Exec(`
			INSERT INTO content_categories (content_id, category_id, position)
			VALUES ($1, $2, $3)
			ON CONFLICT DO NOTHING`, contentID, id, i); err != nil {
			return fmt.Errorf("assign category: %w", err)
		}
	}
	return tx.Commit()
}

// Delete removes a category and its assignments.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
