// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"blogapi/internal/models"
)

// CategoryStore manages categories and their post links in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, description, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(row scanner) (*models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Posts = []models.Post{}
	return &c, nil
}

// linkedPostsQuery selects posts through the join table, in link order.
const linkedPostsQuery = `
	SELECT pc.category_id, p.id, p.title, p.content, p.created_at, p.updated_at
	FROM post_categories pc
	JOIN posts p ON p.id = pc.post_id`

// loadPosts returns linked posts keyed by category id. A nil categoryID
// loads links for every category.
func (s *CategoryStore) loadPosts(ctx context.Context, categoryID *uuid.UUID) (map[uuid.UUID][]models.Post, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if categoryID == nil {
		rows, err = s.db.QueryContext(ctx, linkedPostsQuery+` ORDER BY pc.created_at, p.created_at`)
	} else {
		rows, err = s.db.QueryContext(ctx, linkedPostsQuery+` WHERE pc.category_id = $1 ORDER BY pc.created_at, p.created_at`, *categoryID)
	}
	if err != nil {
		return nil, fmt.Errorf("load category posts: %w", err)
	}
	defer rows.Close()

	byCategory := make(map[uuid.UUID][]models.Post)
	for rows.Next() {
		var (
			catID uuid.UUID
			p     models.Post
		)
		if err := rows.Scan(&catID, &p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category post: %w", err)
		}
		byCategory[catID] = append(byCategory[catID], p)
	}
	return byCategory, rows.Err()
}

// List returns all categories in creation order, each with its linked posts.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	items := []models.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	posts, err := s.loadPosts(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if linked, ok := posts[items[i].ID]; ok {
			items[i].Posts = linked
		}
	}
	return items, nil
}

// findOne runs a single-row lookup and attaches the linked posts.
func (s *CategoryStore) findOne(ctx context.Context, op, where string, arg any) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+categoryColumns+` FROM categories WHERE `+where, arg)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	posts, err := s.loadPosts(ctx, &c.ID)
	if err != nil {
		return nil, err
	}
	if linked, ok := posts[c.ID]; ok {
		c.Posts = linked
	}
	return c, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	return s.findOne(ctx, "find category by id", "id = $1", id)
}

// FindByName retrieves a category by its unique name. Returns nil if not found.
func (s *CategoryStore) FindByName(ctx context.Context, name string) (*models.Category, error) {
	return s.findOne(ctx, "find category by name", "name = $1", name)
}

// FindBySlug retrieves a category by its unique slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	return s.findOne(ctx, "find category by slug", "slug = $1", slug)
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Description,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, writeErr("create category", err)
	}
	return result, nil
}

// Update modifies an existing category. Returns ErrNotFound if it is gone.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET
			name = $1, slug = $2, description = $3, updated_at = NOW()
		WHERE id = $4
	`, c.Name, c.Slug, c.Description, c.ID)
	if err != nil {
		return nil, writeErr("update category", err)
	}
	if err := mustAffect(res); err != nil {
		return nil, err
	}
	return s.FindByID(ctx, c.ID)
}

// Delete removes a category by ID. The post_categories foreign key is
// ON DELETE RESTRICT, so a category with links yields ErrReferenced.
func (s *CategoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return writeErr("delete category", err)
	}
	return mustAffect(res)
}

// AttachPost links a post to a category. Linking twice is a no-op.
func (s *CategoryStore) AttachPost(ctx context.Context, categoryID, postID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO post_categories (category_id, post_id)
		VALUES ($1, $2)
		ON CONFLICT (category_id, post_id) DO NOTHING
	`, categoryID, postID)
	if err != nil {
		err = writeErr("attach post", err)
		if errors.Is(err, ErrReferenced) {
			// The category or post vanished between check and insert.
			return ErrNotFound
		}
		return err
	}
	return nil
}

// DetachPost removes the link between a post and a category. Removing a
// link that does not exist is a no-op.
func (s *CategoryStore) DetachPost(ctx context.Context, categoryID, postID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM post_categories WHERE category_id = $1 AND post_id = $2
	`, categoryID, postID)
	if err != nil {
		return fmt.Errorf("detach post: %w", err)
	}
	return nil
}
