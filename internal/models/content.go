// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentType distinguishes between posts and pages in the unified content table.
type ContentType string

const (
	ContentTypePost ContentType = "post"
	ContentTypePage ContentType = "page"
)

// ContentStatus represents the publishing state of a content item.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "draft"
	ContentStatusPublished ContentStatus = "published"
)

// Content represents a post or page. Items are addressed by their numeric
// id in image URLs.
type Content struct {
	ID               int64         `json:"id"`
	Type             ContentType   `json:"type"`
	Title            string        `json:"title"`
	Slug             string        `json:"slug"`
	Body             string        `json:"body"`
	Excerpt          *string       `json:"excerpt,omitempty"`
	Status           ContentStatus `json:"status"`
	AuthorID         *uuid.UUID    `json:"author_id,omitempty"`
	FeaturedImageURL *string       `json:"featured_image_url,omitempty"`
	OGTheme          *string       `json:"og_theme,omitempty"` // per-item theme override
	PublishedAt      *time.Time    `json:"published_at,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// IsPublished returns true if the content item is in published status.
func (c *Content) IsPublished() bool {
	return c.Status == ContentStatusPublished
}
