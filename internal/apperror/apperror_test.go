// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"validation", NewValidation("bad"), http.StatusBadRequest},
		{"conflict", NewConflict("dup"), http.StatusConflict},
		{"not found", NewNotFound("missing"), http.StatusNotFound},
		{"internal", NewInternal("boom", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.StatusCode(); got != tt.want {
				t.Errorf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("create user: %w", NewConflict("Email already exists"))

	if !IsConflict(wrapped) {
		t.Error("IsConflict should match a wrapped conflict")
	}
	if IsNotFound(wrapped) || IsValidation(wrapped) {
		t.Error("wrapped conflict matched the wrong predicate")
	}
	if IsConflict(errors.New("plain")) {
		t.Error("plain error must not be a conflict")
	}
}

func TestFrom(t *testing.T) {
	t.Run("keeps app errors", func(t *testing.T) {
		orig := NewNotFound("Post not found")
		got := From(fmt.Errorf("wrap: %w", orig))
		if got != orig {
			t.Errorf("From returned %v, want the original error", got)
		}
	})

	t.Run("wraps foreign errors as internal", func(t *testing.T) {
		cause := errors.New("connection refused")
		got := From(cause)
		if got.Type != Internal {
			t.Errorf("type: got %v, want internal", got.Type)
		}
		if !errors.Is(got, cause) {
			t.Error("internal error should unwrap to the cause")
		}
		if got.ToResponse().Error != "internal server error" {
			t.Errorf("response leaked cause: %q", got.ToResponse().Error)
		}
	})
}

func TestErrorString(t *testing.T) {
	if got := NewValidation("Title is required").Error(); got != "Title is required" {
		t.Errorf("Error() = %q", got)
	}
	got := NewInternal("list users", errors.New("timeout")).Error()
	if got != "list users: timeout" {
		t.Errorf("Error() = %q", got)
	}
}
