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

// UserStore handles all user and profile database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// userSelect joins the optional profile so every read returns the user
// with its relation in one round trip.
const userSelect = `
	SELECT u.id, u.email, u.password_hash, u.created_at, u.updated_at,
	       p.id, p.bio, p.avatar_url, p.user_id, p.created_at, p.updated_at
	FROM users u
	LEFT JOIN profiles p ON p.user_id = u.id`

// scanUser scans a userSelect row, leaving Profile nil when the join
// produced no profile.
func scanUser(row scanner) (*models.User, error) {
	var (
		u          models.User
		pID, pUser uuid.NullUUID
		bio, url   sql.NullString
		pc, pu     sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
		&pID, &bio, &url, &pUser, &pc, &pu,
	)
	if err != nil {
		return nil, err
	}
	if pID.Valid {
		u.Profile = &models.Profile{
			ID:        pID.UUID,
			Bio:       bio.String,
			AvatarURL: url.String,
			UserID:    pUser.UUID,
			CreatedAt: pc.Time,
			UpdatedAt: pu.Time,
		}
	}
	return &u, nil
}

// List returns all users with their profiles, ordered by creation date.
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, userSelect+` ORDER BY u.created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// FindByID retrieves a user and profile by UUID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, userSelect+` WHERE u.id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// FindByEmail retrieves a user by email address. Returns nil if not found.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, userSelect+` WHERE u.email = $1`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

// Create inserts the user and, when present, its profile in a single
// transaction. PasswordHash must already be hashed.
func (s *UserStore) Create(ctx context.Context, u *models.User) (*models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var id uuid.UUID
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, u.Email, u.PasswordHash).Scan(&id)
	if err != nil {
		return nil, writeErr("create user", err)
	}

	if u.Profile != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO profiles (bio, avatar_url, user_id)
			VALUES ($1, $2, $3)
		`, u.Profile.Bio, u.Profile.AvatarURL, id)
		if err != nil {
			return nil, writeErr("create profile", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create user: %w", err)
	}
	return s.FindByID(ctx, id)
}

// Update writes the user's email and password hash, plus the profile
// fields when u.Profile is set. Returns ErrNotFound if the user is gone.
func (s *UserStore) Update(ctx context.Context, u *models.User) (*models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE users SET email = $1, password_hash = $2, updated_at = NOW()
		WHERE id = $3
	`, u.Email, u.PasswordHash, u.ID)
	if err != nil {
		return nil, writeErr("update user", err)
	}
	if err := mustAffect(res); err != nil {
		return nil, err
	}

	if u.Profile != nil {
		_, err = tx.ExecContext(ctx, `
			UPDATE profiles SET bio = $1, avatar_url = $2, updated_at = NOW()
			WHERE user_id = $3
		`, u.Profile.Bio, u.Profile.AvatarURL, u.ID)
		if err != nil {
			return nil, writeErr("update profile", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update user: %w", err)
	}
	return s.FindByID(ctx, u.ID)
}

// Delete removes the user's profile and then the user in one transaction.
func (s *UserStore) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, id); err != nil {
		return writeErr("delete profile", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return writeErr("delete user", err)
	}
	if err := mustAffect(res); err != nil {
		return err
	}

	return tx.Commit()
}

// FindProfileByUserID retrieves a profile by its owner. Returns nil if
// the user has no profile.
func (s *UserStore) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	p := &models.Profile{}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, bio, avatar_url, user_id, created_at, updated_at
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.Bio, &p.AvatarURL, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile by user id: %w", err)
	}
	return p, nil
}
