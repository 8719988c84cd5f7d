// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"blogapi/internal/apperror"
	"blogapi/internal/models"
	"blogapi/internal/slug"
	"blogapi/internal/store"
)

const (
	msgCategoryNotFound = "Category not found"
	msgNameExists       = "Category with this name already exists"
	msgSlugExists       = "Category with this slug already exists"
	msgCategoryHasPosts = "Cannot delete category that has posts. Please reassign or delete the posts first."
)

var categoryConflicts = map[string]string{
	"name": msgNameExists,
	"slug": msgSlugExists,
}

// Categories implements the category lifecycle and its post links.
type Categories struct {
	store CategoryStore
	posts PostStore
}

// NewCategories returns a Categories service. posts is used to check that
// a post exists before linking it.
func NewCategories(s CategoryStore, posts PostStore) *Categories {
	return &Categories{store: s, posts: posts}
}

func checkSlug(s string) error {
	if !slug.Valid(s) {
		msg := "slug must contain only lowercase letters, digits and single hyphens"
		if suggestion := slug.Generate(s); suggestion != "" {
			msg += fmt.Sprintf(" (try %q)", suggestion)
		}
		return apperror.NewValidation(msg)
	}
	return nil
}

// List returns every category with its linked posts.
func (c *Categories) List(ctx context.Context) ([]models.Category, error) {
	cats, err := c.store.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal("list categories", err)
	}
	for i := range cats {
		renderPosts(&cats[i])
	}
	return cats, nil
}

// Get returns one category with its linked posts.
func (c *Categories) Get(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	cat, err := c.store.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NewInternal("find category", err)
	}
	if cat == nil {
		return nil, apperror.NewNotFound(msgCategoryNotFound)
	}
	renderPosts(cat)
	return cat, nil
}

func renderPosts(c *models.Category) {
	for i := range c.Posts {
		render(&c.Posts[i])
	}
}

// ensureUnique fails with Conflict when name or slug belongs to a
// category other than self. Name is checked first.
func (c *Categories) ensureUnique(ctx context.Context, self uuid.UUID, name, slugValue *string) error {
	if name != nil {
		other, err := c.store.FindByName(ctx, *name)
		if err != nil {
			return apperror.NewInternal("find category by name", err)
		}
		if other != nil && other.ID != self {
			return apperror.NewConflict(msgNameExists)
		}
	}
	if slugValue != nil {
		other, err := c.store.FindBySlug(ctx, *slugValue)
		if err != nil {
			return apperror.NewInternal("find category by slug", err)
		}
		if other != nil && other.ID != self {
			return apperror.NewConflict(msgSlugExists)
		}
	}
	return nil
}

// Create stores a new category. Name and slug are required and unique.
func (c *Categories) Create(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	if isBlank(in.Name) || isBlank(in.Slug) {
		return nil, apperror.NewValidation("Name and slug are required")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := checkSlug(in.Slug); err != nil {
		return nil, err
	}

	if err := c.ensureUnique(ctx, uuid.Nil, &in.Name, &in.Slug); err != nil {
		return nil, err
	}

	cat, err := c.store.Create(ctx, &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
	})
	if err != nil {
		return nil, translate("create category", err, msgCategoryNotFound, categoryConflicts)
	}

	slog.Info("category created", "id", cat.ID, "slug", cat.Slug)
	return cat, nil
}

// Update applies the supplied fields. Description may be set to the
// empty string to clear it.
func (c *Categories) Update(ctx context.Context, id uuid.UUID, in UpdateCategoryInput) (*models.Category, error) {
	if !supplied(in.Name) && !supplied(in.Slug) && !supplied(in.Description) {
		return nil, apperror.NewValidation("At least one field (name, slug, or description) is required for update")
	}
	if blank(in.Name) || blank(in.Slug) {
		return nil, apperror.NewValidation("Name and slug must not be empty")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Slug != nil {
		if err := checkSlug(*in.Slug); err != nil {
			return nil, err
		}
	}

	cat, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var newName, newSlug *string
	if in.Name != nil && *in.Name != cat.Name {
		newName = in.Name
	}
	if in.Slug != nil && *in.Slug != cat.Slug {
		newSlug = in.Slug
	}
	if err := c.ensureUnique(ctx, cat.ID, newName, newSlug); err != nil {
		return nil, err
	}

	if in.Name != nil {
		cat.Name = *in.Name
	}
	if in.Slug != nil {
		cat.Slug = *in.Slug
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}

	updated, err := c.store.Update(ctx, cat)
	if err != nil {
		return nil, translate("update category", err, msgCategoryNotFound, categoryConflicts)
	}

	slog.Info("category updated", "id", id)
	renderPosts(updated)
	return updated, nil
}

// Remove deletes a category that has no linked posts.
func (c *Categories) Remove(ctx context.Context, id uuid.UUID) (*Message, error) {
	cat, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat.HasPosts() {
		slog.Debug("category delete blocked", "id", id, "post_ids", cat.PostIDs())
		return nil, apperror.NewValidation(msgCategoryHasPosts)
	}

	if err := c.store.Delete(ctx, id); err != nil {
		// A post linked after the check above is caught by the store.
		if errors.Is(err, store.ErrReferenced) {
			return nil, apperror.NewValidation(msgCategoryHasPosts)
		}
		return nil, translate("delete category", err, msgCategoryNotFound, nil)
	}

	slog.Info("category deleted", "id", id)
	return &Message{Message: "Category deleted successfully"}, nil
}

// AttachPost links a post to the category and returns the category with
// its posts. Linking an already linked post is a no-op.
func (c *Categories) AttachPost(ctx context.Context, categoryID, postID uuid.UUID) (*models.Category, error) {
	if _, err := c.Get(ctx, categoryID); err != nil {
		return nil, err
	}
	p, err := c.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, apperror.NewInternal("find post", err)
	}
	if p == nil {
		return nil, apperror.NewNotFound(msgPostNotFound)
	}

	if err := c.store.AttachPost(ctx, categoryID, postID); err != nil {
		return nil, translate("attach post", err, msgPostNotFound, nil)
	}

	slog.Info("post linked to category", "category_id", categoryID, "post_id", postID)
	return c.Get(ctx, categoryID)
}

// DetachPost unlinks a post from the category and returns the category
// with its remaining posts. Unlinking a post that is not linked is a no-op.
func (c *Categories) DetachPost(ctx context.Context, categoryID, postID uuid.UUID) (*models.Category, error) {
	if _, err := c.Get(ctx, categoryID); err != nil {
		return nil, err
	}

	if err := c.store.DetachPost(ctx, categoryID, postID); err != nil {
		return nil, apperror.NewInternal("detach post", err)
	}

	slog.Info("post unlinked from category", "category_id", categoryID, "post_id", postID)
	return c.Get(ctx, categoryID)
}
