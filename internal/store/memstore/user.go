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

// UserStore keeps users and their profiles in memory.
type UserStore struct {
	db *DB
}

// NewUserStore returns a UserStore backed by db.
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// emailTaken reports whether another user than except owns email.
// Caller holds db.mu.
func (s *UserStore) emailTaken(email string, except uuid.UUID) bool {
	for _, u := range s.db.users {
		if u.Email == email && u.ID != except {
			return true
		}
	}
	return false
}

// List returns all users with their profiles in creation order.
func (s *UserStore) List(_ context.Context) ([]models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	users := make([]models.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		users = append(users, *cloneUser(u))
	}
	return users, nil
}

// FindByID returns the user with id, or nil if there is none.
func (s *UserStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if _, u := s.db.userIndex(id); u != nil {
		return cloneUser(u), nil
	}
	return nil, nil
}

// FindByEmail returns the user with email, or nil if there is none.
func (s *UserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for _, u := range s.db.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

// FindProfileByUserID returns the profile owned by userID, or nil.
func (s *UserStore) FindProfileByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	if _, u := s.db.userIndex(userID); u != nil && u.Profile != nil {
		p := *u.Profile
		return &p, nil
	}
	return nil, nil
}

// Create stores the user and its profile atomically.
func (s *UserStore) Create(_ context.Context, u *models.User) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if s.emailTaken(u.Email, uuid.Nil) {
		return nil, &store.DuplicateError{Field: "email"}
	}

	now := s.db.now()
	rec := cloneUser(u)
	rec.ID = uuid.New()
	rec.CreatedAt, rec.UpdatedAt = now, now
	if rec.Profile != nil {
		rec.Profile.ID = uuid.New()
		rec.Profile.UserID = rec.ID
		rec.Profile.CreatedAt, rec.Profile.UpdatedAt = now, now
	}

	s.db.users = append(s.db.users, rec)
	return cloneUser(rec), nil
}

// Update writes email and password hash, and the profile fields when both
// u.Profile and a stored profile exist.
func (s *UserStore) Update(_ context.Context, u *models.User) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	_, rec := s.db.userIndex(u.ID)
	if rec == nil {
		return nil, store.ErrNotFound
	}
	if s.emailTaken(u.Email, u.ID) {
		return nil, &store.DuplicateError{Field: "email"}
	}

	now := s.db.now()
	rec.Email = u.Email
	rec.PasswordHash = u.PasswordHash
	rec.UpdatedAt = now
	if u.Profile != nil && rec.Profile != nil {
		rec.Profile.Bio = u.Profile.Bio
		rec.Profile.AvatarURL = u.Profile.AvatarURL
		rec.Profile.UpdatedAt = now
	}
	return cloneUser(rec), nil
}

// Delete drops the profile and then the user.
func (s *UserStore) Delete(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	i, rec := s.db.userIndex(id)
	if rec == nil {
		return store.ErrNotFound
	}
	rec.Profile = nil
	s.db.users = append(s.db.users[:i], s.db.users[i+1:]...)
	return nil
}
