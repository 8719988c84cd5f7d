// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed email and password for the development user.
const (
	seedEmail    = "demo@blogapi.local"
	seedPassword = "demo-password"
)

// Seed populates the database with development data: one user with a
// profile, one category, and a welcome post linked to it. It is a no-op
// when any user already exists.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed begin: %w", err)
	}
	defer tx.Rollback()

	var userID string
	err = tx.QueryRow(`
		INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id
	`, seedEmail, string(hash)).Scan(&userID)
	if err != nil {
		return fmt.Errorf("seed insert user: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO profiles (bio, avatar_url, user_id) VALUES ($1, $2, $3)
	`, "Writes the demo posts.", "https://www.gravatar.com/avatar/?d=identicon", userID)
	if err != nil {
		return fmt.Errorf("seed insert profile: %w", err)
	}

	var categoryID string
	err = tx.QueryRow(`
		INSERT INTO categories (name, slug, description)
		VALUES ('General', 'general', 'Posts that do not fit anywhere else.')
		ON CONFLICT DO NOTHING
		RETURNING id
	`).Scan(&categoryID)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("seed insert category: %w", err)
	}

	var postID string
	err = tx.QueryRow(`
		INSERT INTO posts (title, content) VALUES ($1, $2) RETURNING id
	`, "Hello, world", "Welcome to the **blog**. Edit or delete this post to get started.").Scan(&postID)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	if categoryID != "" {
		if _, err := tx.Exec(`
			INSERT INTO post_categories (category_id, post_id) VALUES ($1, $2)
		`, categoryID, postID); err != nil {
			return fmt.Errorf("seed link post: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with demo data",
		"email", seedEmail,
		"password", seedPassword,
	)
	return nil
}
