// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package memstore

import (
	"context"

	"github.com/google/uuid"

	"blogapi/internal/models"
	"blogapi/internal/store"
)

// PostStore keeps posts in memory.
type PostStore struct {
	db *DB
}

// NewPostStore returns a PostStore backed by db.
func NewPostStore(db *DB) *PostStore {
	return &PostStore{db: db}
}

// List returns all posts in creation order.
func (s *PostStore) List(_ context.Context) ([]models.Post, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.db.posts))
	for _, p := range s.db.posts {
		posts = append(posts, *p)
	}
	return posts, nil
}

// FindByID returns the post with id, or nil if there is none.
func (s *PostStore) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if _, p := s.db.postIndex(id); p != nil {
		return clonePost(p), nil
	}
	return nil, nil
}

// Create stores a new post.
func (s *PostStore) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	now := s.db.now()
	rec := &models.Post{
		ID:        uuid.New(),
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.db.posts = append(s.db.posts, rec)
	return clonePost(rec), nil
}

// Update overwrites title and content.
func (s *PostStore) Update(_ context.Context, p *models.Post) (*models.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	_, rec := s.db.postIndex(p.ID)
	if rec == nil {
		return nil, store.ErrNotFound
	}
	rec.Title = p.Title
	rec.Content = p.Content
	rec.UpdatedAt = s.db.now()
	return clonePost(rec), nil
}

// Delete removes a post and its category links.
func (s *PostStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i, rec := s.db.postIndex(id)
	if rec == nil {
		return store.ErrNotFound
	}
	s.db.posts = append(s.db.posts[:i], s.db.posts[i+1:]...)

	kept := s.db.links[:0]
	for _, l := range s.db.links {
		if l.postID != id {
			kept = append(kept, l)
		}
	}
	s.db.links = kept
	return nil
}
