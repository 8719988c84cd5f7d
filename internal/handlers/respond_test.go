// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogapi/internal/apperror"
)

func TestWriteErrorStatus(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantMsg string
	}{
		{"validation", apperror.NewValidation("bad"), http.StatusBadRequest, "bad"},
		{"conflict", apperror.NewConflict("taken"), http.StatusConflict, "taken"},
		{"not found", apperror.NewNotFound("gone"), http.StatusNotFound, "gone"},
		{"internal", apperror.NewInternal("db exploded", errors.New("secret dsn")), http.StatusInternalServerError, "Internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			rec := httptest.NewRecorder()
			writeError(rec, req, tt.err)

			expectStatus(t, rec, tt.want)
			if got := errorMessage(t, rec); got != tt.wantMsg {
				t.Errorf("error = %q, want %q", got, tt.wantMsg)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"title":"x"}`, false},
		{"empty", ``, true},
		{"malformed", `{"title":`, true},
		{"wrong type", `{"title":3}`, true},
		{"too large", `{"title":"` + strings.Repeat("a", maxBodyBytes) + `"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			var dst struct {
				Title string `json:"title"`
			}
			err := decodeJSON(rec, req, &dst)
			if tt.wantErr {
				if !apperror.IsValidation(err) {
					t.Errorf("got %v, want a validation error", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
