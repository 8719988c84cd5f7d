// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package memstore is an in-process implementation of the blog stores,
// used for development without PostgreSQL and by service and handler
// tests. It mirrors the PostgreSQL stores' contract: lookups return
// (nil, nil) on a miss, writes return store.ErrNotFound,
// store.ErrReferenced or *store.DuplicateError.
//
// Every write checks its unique keys inside the same critical section as
// the mutation, so the uniqueness guarantees hold under concurrent use.
package memstore

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"blogapi/internal/models"
)

// link is one post_categories row.
type link struct {
	categoryID uuid.UUID
	postID     uuid.UUID
}

// DB holds all tables. Records are kept in insertion order so listings
// are stable, matching the created_at ordering of the SQL stores.
type DB struct {
	mu         sync.RWMutex
	users      []*models.User
	posts      []*models.Post
	categories []*models.Category
	links      []link

	now func() time.Time
}

// New returns an empty in-memory database.
func New() *DB {
	return &DB{now: func() time.Time { return time.Now().UTC() }}
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.Profile != nil {
		p := *u.Profile
		c.Profile = &p
	}
	return &c
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	return &c
}

// cloneCategory copies c and fills Posts from the link table. Caller
// holds db.mu.
func (db *DB) cloneCategory(c *models.Category) *models.Category {
	out := *c
	out.Posts = []models.Post{}
	for _, l := range db.links {
		if l.categoryID != c.ID {
			continue
		}
		if _, p := db.postIndex(l.postID); p != nil {
			out.Posts = append(out.Posts, *p)
		}
	}
	return &out
}

func (db *DB) userIndex(id uuid.UUID) (int, *models.User) {
	for i, u := range db.users {
		if u.ID == id {
			return i, u
		}
	}
	return -1, nil
}

func (db *DB) postIndex(id uuid.UUID) (int, *models.Post) {
	for i, p := range db.posts {
		if p.ID == id {
			return i, p
		}
	}
	return -1, nil
}

func (db *DB) categoryIndex(id uuid.UUID) (int, *models.Category) {
	for i, c := range db.categories {
		if c.ID == id {
			return i, c
		}
	}
	return -1, nil
}

func (db *DB) hasLink(categoryID, postID uuid.UUID) bool {
	for _, l := range db.links {
		if l.categoryID == categoryID && l.postID == postID {
			return true
		}
	}
	return false
}
