// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups posts. Posts are linked through the post_categories
// join table, so a post can appear in many categories.
type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Virtual field populated by store methods.
	Posts []Post `json:"posts"`
}

// HasPosts reports whether any post is still linked to the category.
func (c *Category) HasPosts() bool {
	return len(c.Posts) > 0
}

// PostIDs returns the ids of the linked posts in their stored order.
func (c *Category) PostIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(c.Posts))
	for _, p := range c.Posts {
		ids = append(ids, p.ID)
	}
	return ids
}
