// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Handlers run against the in-memory store through a chi mux so route
// parameters resolve the same way they do in production.
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"blogapi/internal/service"
	"blogapi/internal/store/memstore"
)

type testEnv struct {
	Mux http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := memstore.New()
	postStore := memstore.NewPostStore(db)
	users := NewUsers(service.NewUsers(memstore.NewUserStore(db)).WithHashCost(bcrypt.MinCost))
	posts := NewPosts(service.NewPosts(postStore))
	cats := NewCategories(service.NewCategories(memstore.NewCategoryStore(db), postStore))

	r := chi.NewRouter()
	r.Route("/users", func(r chi.Router) {
		r.Get("/", users.List)
		r.Post("/", users.Create)
		r.Get("/{id}", users.Get)
		r.Put("/{id}", users.Update)
		r.Delete("/{id}", users.Delete)
		r.Get("/{id}/profile", users.Profile)
	})
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", posts.List)
		r.Post("/", posts.Create)
		r.Get("/{id}", posts.Get)
		r.Put("/{id}", posts.Update)
		r.Delete("/{id}", posts.Delete)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", cats.List)
		r.Post("/", cats.Create)
		r.Get("/{id}", cats.Get)
		r.Put("/{id}", cats.Update)
		r.Delete("/{id}", cats.Delete)
		r.Put("/{id}/posts/{postID}", cats.AttachPost)
		r.Delete("/{id}/posts/{postID}", cats.DetachPost)
	})

	return &testEnv{Mux: r}
}

// do sends a request with an optional JSON body and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.Mux.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals the response body into v.
func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
}

// errorMessage returns the "error" field of an error response.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rec, &resp)
	return resp.Error
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("got status %d, want %d (body %s)", rec.Code, want, rec.Body.String())
	}
}
