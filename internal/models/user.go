// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a blog user. Every user owns exactly one Profile.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Profile *Profile `json:"profile"`
}

// Profile holds the public-facing details of a user.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	Bio       string    `json:"bio"`
	AvatarURL string    `json:"avatar_url"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasProfile reports whether the user has a profile attached.
func (u *User) HasProfile() bool {
	return u.Profile != nil
}
