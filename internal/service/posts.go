// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"blogapi/internal/apperror"
	"blogapi/internal/markdown"
	"blogapi/internal/models"
)

const msgPostNotFound = "Post not found"

// Posts implements the post lifecycle.
type Posts struct {
	store PostStore
}

// NewPosts returns a Posts service backed by s.
func NewPosts(s PostStore) *Posts {
	return &Posts{store: s}
}

// render fills ContentHTML. A rendering failure leaves it empty rather
// than failing the read.
func render(p *models.Post) {
	out, err := markdown.ToHTML(p.Content)
	if err != nil {
		slog.Warn("render post content", "id", p.ID, "error", err)
		return
	}
	p.ContentHTML = out
}

// List returns every post.
func (s *Posts) List(ctx context.Context) ([]models.Post, error) {
	posts, err := s.store.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal("list posts", err)
	}
	for i := range posts {
		render(&posts[i])
	}
	return posts, nil
}

// Get returns one post.
func (s *Posts) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NewInternal("find post", err)
	}
	if p == nil {
		return nil, apperror.NewNotFound(msgPostNotFound)
	}
	render(p)
	return p, nil
}

// Create stores a new post. Title and content are both required.
func (s *Posts) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if isBlank(in.Title) || isBlank(in.Content) {
		return nil, apperror.NewValidation("Title and content are required")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	p, err := s.store.Create(ctx, &models.Post{Title: in.Title, Content: in.Content})
	if err != nil {
		return nil, apperror.NewInternal("create post", err)
	}

	slog.Info("post created", "id", p.ID)
	render(p)
	return p, nil
}

// Update applies the supplied title and/or content.
func (s *Posts) Update(ctx context.Context, id uuid.UUID, in UpdatePostInput) (*models.Post, error) {
	if !supplied(in.Title) && !supplied(in.Content) {
		return nil, apperror.NewValidation("At least one field (title or content) is required for update")
	}
	if blank(in.Title) || blank(in.Content) {
		return nil, apperror.NewValidation("Title and content must not be empty")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NewInternal("find post", err)
	}
	if p == nil {
		return nil, apperror.NewNotFound(msgPostNotFound)
	}

	if in.Title != nil {
		p.Title = *in.Title
	}
	if in.Content != nil {
		p.Content = *in.Content
	}

	updated, err := s.store.Update(ctx, p)
	if err != nil {
		return nil, translate("update post", err, msgPostNotFound, nil)
	}

	slog.Info("post updated", "id", id)
	render(updated)
	return updated, nil
}

// Delete removes a post. Its category links are dropped with it.
func (s *Posts) Delete(ctx context.Context, id uuid.UUID) (*Message, error) {
	p, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NewInternal("find post", err)
	}
	if p == nil {
		return nil, apperror.NewNotFound(msgPostNotFound)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return nil, translate("delete post", err, msgPostNotFound, nil)
	}

	slog.Info("post deleted", "id", id)
	return &Message{Message: "Post deleted successfully"}, nil
}
