// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"blogapi/internal/models"
)

// PostStore manages posts in the database.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, content, created_at, updated_at`

func scanPost(row scanner) (*models.Post, error) {
	var p models.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all posts, oldest first.
func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// FindByID retrieves a post by ID. Returns nil if not found.
func (s *PostStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := scanPost(s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post and returns it.
func (s *PostStore) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, content)
		VALUES ($1, $2)
		RETURNING `+postColumns,
		p.Title, p.Content,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, writeErr("create post", err)
	}
	return result, nil
}

// Update overwrites title and content. Returns ErrNotFound if the post is gone.
func (s *PostStore) Update(ctx context.Context, p *models.Post) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE posts SET title = $1, content = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+postColumns,
		p.Title, p.Content, p.ID,
	)
	result, err := scanPost(row)
	if err != nil {
		return nil, writeErr("update post", err)
	}
	return result, nil
}

// Delete removes a post. Its category links go with it (ON DELETE CASCADE).
func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return writeErr("delete post", err)
	}
	return mustAffect(res)
}
