// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/apperror"
	"blogapi/internal/models"
)

const (
	msgUserNotFound    = "User not found"
	msgProfileNotFound = "Profile not found"
	msgEmailExists     = "Email already exists"
)

var userConflicts = map[string]string{"email": msgEmailExists}

// Users implements the user and profile lifecycle.
type Users struct {
	store UserStore
	cost  int
}

// NewUsers returns a Users service backed by s, hashing passwords with
// bcrypt.DefaultCost.
func NewUsers(s UserStore) *Users {
	return &Users{store: s, cost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (u *Users) WithHashCost(cost int) *Users {
	u.cost = cost
	return u
}

func (u *Users) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		// max=72 counts runes; bcrypt counts bytes.
		return "", apperror.NewValidation("password must be at most 72 bytes")
	}
	if err != nil {
		return "", apperror.NewInternal("hash password", err)
	}
	return string(h), nil
}

// List returns every user with its profile.
func (u *Users) List(ctx context.Context) ([]models.User, error) {
	users, err := u.store.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal("list users", err)
	}
	return users, nil
}

// Get returns one user with its profile.
func (u *Users) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := u.store.FindByID(ctx, id)
	if err != nil {
		return nil, apperror.NewInternal("find user", err)
	}
	if user == nil {
		return nil, apperror.NewNotFound(msgUserNotFound)
	}
	return user, nil
}

// GetProfile returns the profile owned by the user id.
func (u *Users) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	p, err := u.store.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal("find profile", err)
	}
	if p == nil {
		return nil, apperror.NewNotFound(msgProfileNotFound)
	}
	return p, nil
}

// Create registers a user and its profile. The email must be unused.
func (u *Users) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if isBlank(in.Email) || isBlank(in.Password) {
		return nil, apperror.NewValidation("Email and password are required")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	existing, err := u.store.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperror.NewInternal("find user by email", err)
	}
	if existing != nil {
		return nil, apperror.NewConflict(msgEmailExists)
	}

	hash, err := u.hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := u.store.Create(ctx, &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		Profile: &models.Profile{
			Bio:       in.Profile.Bio,
			AvatarURL: in.Profile.AvatarURL,
		},
	})
	if err != nil {
		// A concurrent create can still win the race past the pre-check;
		// the unique index turns that into a duplicate here.
		return nil, translate("create user", err, msgUserNotFound, userConflicts)
	}

	slog.Info("user created", "id", created.ID)
	return created, nil
}

// Update applies the supplied fields to an existing user. Profile fields
// are only written when the user already has a profile.
func (u *Users) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*models.User, error) {
	if !supplied(in.Email) && !supplied(in.Password) && in.Profile.empty() {
		return nil, apperror.NewValidation("At least one field (email, password or profile) is required for update")
	}
	if blank(in.Email) {
		return nil, apperror.NewValidation("email must not be empty")
	}
	if blank(in.Password) {
		return nil, apperror.NewValidation("password must not be empty")
	}
	if in.Profile != nil && (blank(in.Profile.Bio) || blank(in.Profile.AvatarURL)) {
		return nil, apperror.NewValidation("profile fields must not be empty")
	}
	if err := validateInput(in); err != nil {
		return nil, err
	}

	user, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != user.Email {
		other, err := u.store.FindByEmail(ctx, *in.Email)
		if err != nil {
			return nil, apperror.NewInternal("find user by email", err)
		}
		if other != nil && other.ID != user.ID {
			return nil, apperror.NewConflict(msgEmailExists)
		}
		user.Email = *in.Email
	}

	if in.Password != nil {
		hash, err := u.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if !in.Profile.empty() && user.HasProfile() {
		if in.Profile.Bio != nil {
			user.Profile.Bio = *in.Profile.Bio
		}
		if in.Profile.AvatarURL != nil {
			user.Profile.AvatarURL = *in.Profile.AvatarURL
		}
	} else {
		user.Profile = nil
	}

	updated, err := u.store.Update(ctx, user)
	if err != nil {
		return nil, translate("update user", err, msgUserNotFound, userConflicts)
	}

	slog.Info("user updated", "id", id)
	return updated, nil
}

// Delete removes the user's profile and then the user.
func (u *Users) Delete(ctx context.Context, id uuid.UUID) (*Message, error) {
	if _, err := u.Get(ctx, id); err != nil {
		return nil, err
	}

	if err := u.store.Delete(ctx, id); err != nil {
		return nil, translate("delete user", err, msgUserNotFound, nil)
	}

	slog.Info("user deleted", "id", id)
	return &Message{Message: "User deleted successfully"}, nil
}
