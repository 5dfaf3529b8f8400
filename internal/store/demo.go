package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"ogsvg/internal/models"
)

// Demo content created by SeedDemo.
const (
	demoEmail    = "editor@ogsvg.local"
	demoAuthor   = "Site Editor"
	demoCategory = "Announcements"
	demoTitle    = "Hello, OpenGraph"
	demoBody     = "This post has a **generated** social image. Share it anywhere."
)

// SeedDemo creates a demo author, category and published post so a fresh
// development install has an item to render. It does nothing once the demo
// author exists. It returns the id of the created post, or 0.
func SeedDemo(db *sql.DB) (int64, error) {
	users := NewUserStore(db)
	categories := NewCategoryStore(db)
	contents := NewContentStore(db)

	existing, err := users.FindByEmail(demoEmail)
	if err != nil {
		return 0, fmt.Errorf("seed demo: %w", err)
	}
	if existing != nil {
		slog.Debug("demo content already seeded")
		return 0, nil
	}

	author, err := users.Create(demoEmail, demoAuthor)
	if err != nil {
		return 0, fmt.Errorf("seed demo author: %w", err)
	}

	category, err := categories.FindBySlug("announcements")
	if err != nil {
		return 0, fmt.Errorf("seed demo category: %w", err)
	}
	if category == nil {
		if category, err = categories.Create(&models.Category{Name: demoCategory}); err != nil {
			return 0, fmt.Errorf("seed demo category: %w", err)
		}
	}

	post, err := contents.Create(&models.Content{
		Type:     models.ContentTypePost,
		Title:    demoTitle,
		Slug:     "hello-opengraph",
		Body:     demoBody,
		Status:   models.ContentStatusPublished,
		AuthorID: &author.ID,
	})
	if err != nil {
		return 0, fmt.Errorf("seed demo post: %w", err)
	}

	if err := categories.Assign(post.ID, category.ID); err != nil {
		return 0, fmt.Errorf("seed demo post: %w", err)
	}

	slog.Info("database seeded with demo content", "post_id", post.ID)
	return post.ID, nil
}
