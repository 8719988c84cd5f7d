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

// CategoryStore keeps categories and their post links in memory.
type CategoryStore struct {
	db *DB
}

// NewCategoryStore returns a CategoryStore backed by db.
func NewCategoryStore(db *DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// duplicateField returns the first unique field of c already used by a
// different category, or "". Name is checked before slug. Caller holds
// db.mu.
func (s *CategoryStore) duplicateField(c *models.Category) string {
	for _, other := range s.db.categories {
		if other.ID != c.ID && other.Name == c.Name {
			return "name"
		}
	}
	for _, other := range s.db.categories {
		if other.ID != c.ID && other.Slug == c.Slug {
			return "slug"
		}
	}
	return ""
}

func (s *CategoryStore) find(match func(*models.Category) bool) *models.Category {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, c := range s.db.categories {
		if match(c) {
			return s.db.cloneCategory(c)
		}
	}
	return nil
}

// List returns all categories with their linked posts, in creation order.
func (s *CategoryStore) List(_ context.Context) ([]models.Category, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	items := make([]models.Category, 0, len(s.db.categories))
	for _, c := range s.db.categories {
		items = append(items, *s.db.cloneCategory(c))
	}
	return items, nil
}

// FindByID returns the category with id, or nil.
func (s *CategoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	return s.find(func(c *models.Category) bool { return c.ID == id }), nil
}

// FindByName returns the category named name, or nil.
func (s *CategoryStore) FindByName(_ context.Context, name string) (*models.Category, error) {
	return s.find(func(c *models.Category) bool { return c.Name == name }), nil
}

// FindBySlug returns the category with slug, or nil.
func (s *CategoryStore) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	return s.find(func(c *models.Category) bool { return c.Slug == slug }), nil
}

// Create stores a new category.
func (s *CategoryStore) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec := &models.Category{
		ID:          uuid.New(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
	if field := s.duplicateField(rec); field != "" {
		return nil, &store.DuplicateError{Field: field}
	}

	now := s.db.now()
	rec.CreatedAt, rec.UpdatedAt = now, now
	s.db.categories = append(s.db.categories, rec)
	return s.db.cloneCategory(rec), nil
}

// Update overwrites name, slug and description.
func (s *CategoryStore) Update(_ context.Context, c *models.Category) (*models.Category, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	_, rec := s.db.categoryIndex(c.ID)
	if rec == nil {
		return nil, store.ErrNotFound
	}
	if field := s.duplicateField(c); field != "" {
		return nil, &store.DuplicateError{Field: field}
	}

	rec.Name = c.Name
	rec.Slug = c.Slug
	rec.Description = c.Description
	rec.UpdatedAt = s.db.now()
	return s.db.cloneCategory(rec), nil
}

// Delete removes a category. It fails with store.ErrReferenced while
// any post is linked.
func (s *CategoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i, rec := s.db.categoryIndex(id)
	if rec == nil {
		return store.ErrNotFound
	}
	for _, l := range s.db.links {
		if l.categoryID == id {
			return store.ErrReferenced
		}
	}
	s.db.categories = append(s.db.categories[:i], s.db.categories[i+1:]...)
	return nil
}

// AttachPost links a post to a category. Linking twice is a no-op.
func (s *CategoryStore) AttachPost(_ context.Context, categoryID, postID uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, c := s.db.categoryIndex(categoryID); c == nil {
		return store.ErrNotFound
	}
	if _, p := s.db.postIndex(postID); p == nil {
		return store.ErrNotFound
	}
	if !s.db.hasLink(categoryID, postID) {
		s.db.links = append(s.db.links, link{categoryID: categoryID, postID: postID})
	}
	return nil
}

// DetachPost removes a link. Removing a missing link is a no-op.
func (s *CategoryStore) DetachPost(_ context.Context, categoryID, postID uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	kept := s.db.links[:0]
	for _, l := range s.db.links {
		if l.categoryID != categoryID || l.postID != postID {
			kept = append(kept, l)
		}
	}
	s.db.links = kept
	return nil
}
