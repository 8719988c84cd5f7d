// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"blogapi/internal/models"
)

func newTestUser(email string) *models.User {
	return &models.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Profile:      &models.Profile{Bio: "hi", AvatarURL: "http://x/a.png"},
	}
}

func TestUserStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-create@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := s.Create(bg, newTestUser(email))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if user.Email != email {
		t.Errorf("email: got %q, want %q", user.Email, email)
	}
	if user.Profile == nil {
		t.Fatal("expected profile to be created with the user")
	}
	if user.Profile.UserID != user.ID {
		t.Errorf("profile user_id: got %s, want %s", user.Profile.UserID, user.ID)
	}
	if user.Profile.AvatarURL != "http://x/a.png" {
		t.Errorf("avatar: got %q", user.Profile.AvatarURL)
	}
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-dup@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	if _, err := s.Create(bg, newTestUser(email)); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	_, err := s.Create(bg, newTestUser(email))
	field, ok := IsDuplicate(err)
	if !ok {
		t.Fatalf("expected DuplicateError, got %v", err)
	}
	if field != "email" {
		t.Errorf("field: got %q, want email", field)
	}
}

func TestUserStoreFindByEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-findbyemail@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	// Not found case.
	user, err := s.FindByEmail(bg, email)
	if err != nil {
		t.Fatalf("FindByEmail (not found): %v", err)
	}
	if user != nil {
		t.Error("expected nil for non-existent user")
	}

	created, err := s.Create(bg, newTestUser(email))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	user, err = s.FindByEmail(bg, email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", user.ID, created.ID)
	}
}

func TestUserStoreFindByIDNotFound(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	user, err := s.FindByID(bg, uuid.New())
	if err != nil {
		t.Fatalf("FindByID (not found): %v", err)
	}
	if user != nil {
		t.Error("expected nil for random UUID")
	}
}

func TestUserStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-update@store-test.local"
	newEmail := "test-update-new@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email, newEmail) })

	user, err := s.Create(bg, newTestUser(email))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	user.Email = newEmail
	user.Profile.Bio = "updated bio"
	updated, err := s.Update(bg, user)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Email != newEmail {
		t.Errorf("email: got %q, want %q", updated.Email, newEmail)
	}
	if updated.Profile == nil || updated.Profile.Bio != "updated bio" {
		t.Errorf("profile not updated: %+v", updated.Profile)
	}

	_, err = s.Update(bg, &models.User{ID: uuid.New(), Email: "ghost@store-test.local"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing user: got %v, want ErrNotFound", err)
	}
}

func TestUserStoreDeleteRemovesProfile(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-delete@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := s.Create(bg, newTestUser(email))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.Delete(bg, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	found, _ := s.FindByID(bg, user.ID)
	if found != nil {
		t.Error("user should be gone after Delete")
	}
	profile, err := s.FindProfileByUserID(bg, user.ID)
	if err != nil {
		t.Fatalf("FindProfileByUserID: %v", err)
	}
	if profile != nil {
		t.Error("profile should be gone after Delete")
	}

	if err := s.Delete(bg, user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete: got %v, want ErrNotFound", err)
	}
}
