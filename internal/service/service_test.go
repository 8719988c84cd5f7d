// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/apperror"
	"blogapi/internal/models"
	"blogapi/internal/store"
	"blogapi/internal/store/memstore"
)

var bg = context.Background()

type testEnv struct {
	Users      *Users
	Posts      *Posts
	Categories *Categories
}

func newTestEnv() *testEnv {
	db := memstore.New()
	posts := memstore.NewPostStore(db)
	return &testEnv{
		Users:      NewUsers(memstore.NewUserStore(db)).WithHashCost(bcrypt.MinCost),
		Posts:      NewPosts(posts),
		Categories: NewCategories(memstore.NewCategoryStore(db), posts),
	}
}

func ptr(s string) *string { return &s }

// wantType fails the test unless err is an *apperror.AppError of type want.
func wantType(t *testing.T, err error, want apperror.ErrorType) *apperror.AppError {
	t.Helper()
	var ae *apperror.AppError
	if !errors.As(err, &ae) {
		t.Fatalf("got error %v, want %s AppError", err, want)
	}
	if ae.Type != want {
		t.Fatalf("got %s error %q, want %s", ae.Type, ae.Message, want)
	}
	return ae
}

func TestValidateInputUsesJSONNames(t *testing.T) {
	err := validateInput(CreateUserInput{
		Email:    "not-an-email",
		Password: "longenough",
		Profile:  &CreateProfileInput{Bio: "b", AvatarURL: "https://x.com/a.png"},
	})
	ae := wantType(t, err, apperror.Validation)
	if ae.Message != "email must be a valid email address" {
		t.Errorf("message = %q", ae.Message)
	}

	err = validateInput(CreateUserInput{
		Email:    "a@b.com",
		Password: "longenough",
		Profile:  &CreateProfileInput{Bio: "b", AvatarURL: "nope"},
	})
	ae = wantType(t, err, apperror.Validation)
	if ae.Message != "profile.avatar_url must be a valid URL" {
		t.Errorf("message = %q", ae.Message)
	}
}

func TestTranslate(t *testing.T) {
	dups := map[string]string{"name": "name taken"}

	tests := []struct {
		name    string
		err     error
		want    apperror.ErrorType
		wantMsg string
	}{
		{"not found", fmt.Errorf("wrap: %w", store.ErrNotFound), apperror.NotFound, "gone"},
		{"known duplicate", &store.DuplicateError{Field: "name"}, apperror.Conflict, "name taken"},
		{"unknown duplicate", &store.DuplicateError{Field: "other"}, apperror.Conflict, "Record already exists"},
		{"anything else", errors.New("boom"), apperror.Internal, "op"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := wantType(t, translate("op", tt.err, "gone", dups), tt.want)
			if ae.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", ae.Message, tt.wantMsg)
			}
		})
	}
}

func TestBlankHelpers(t *testing.T) {
	if supplied(nil) {
		t.Error("supplied(nil) = true")
	}
	if !supplied(ptr("")) {
		t.Error("supplied(\"\") = false")
	}
	if blank(nil) {
		t.Error("blank(nil) = true")
	}
	if !blank(ptr("  ")) {
		t.Error("blank(\"  \") = false")
	}
	if isBlank("x") {
		t.Error("isBlank(\"x\") = true")
	}
}

// failingPostStore returns err from every call.
type failingPostStore struct{ err error }

func (f failingPostStore) List(context.Context) ([]models.Post, error) { return nil, f.err }
func (f failingPostStore) FindByID(context.Context, uuid.UUID) (*models.Post, error) {
	return nil, f.err
}
func (f failingPostStore) Create(context.Context, *models.Post) (*models.Post, error) {
	return nil, f.err
}
func (f failingPostStore) Update(context.Context, *models.Post) (*models.Post, error) {
	return nil, f.err
}
func (f failingPostStore) Delete(context.Context, uuid.UUID) error { return f.err }

func TestStoreFailureIsInternal(t *testing.T) {
	cause := errors.New("connection refused")
	svc := NewPosts(failingPostStore{err: cause})

	_, err := svc.List(bg)
	ae := wantType(t, err, apperror.Internal)
	if !errors.Is(ae, cause) {
		t.Error("internal error should wrap the store failure")
	}

	_, err = svc.Get(bg, uuid.New())
	wantType(t, err, apperror.Internal)
}
