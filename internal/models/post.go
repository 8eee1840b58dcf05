// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultFeaturedImage is the sentinel asset reference stored on posts
// that have no uploaded featured image.
const DefaultFeaturedImage = "default-post.jpg"

// Post is a published or draft blog entry. The author reference is fixed
// at creation and never changes; the view counter only ever increases.
type Post struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	Excerpt       string    `json:"excerpt,omitempty"`
	CategoryID    uuid.UUID `json:"category_id"`
	AuthorID      uuid.UUID `json:"author_id"`
	FeaturedImage string    `json:"featured_image"`
	Tags          []string  `json:"tags"`
	IsPublished   bool      `json:"is_published"`
	ViewCount     int       `json:"view_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Virtual fields populated from joins.
	AuthorName   string `json:"author_name,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	CategorySlug string `json:"category_slug,omitempty"`

	// Comments in insertion (chronological) order. Populated by
	// PostStore.Find and AddComment; list queries leave it nil.
	Comments []Comment `json:"comments,omitempty"`
}

// Comment is owned by exactly one post and lives exactly as long as it.
// There is no edit or delete for individual comments.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Username is a virtual field populated from a join.
	Username string `json:"username,omitempty"`
}
