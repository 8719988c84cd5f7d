// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"blogapi/internal/service"
)

const postNotFound = "Post not found"

// Posts serves /posts.
type Posts struct {
	svc *service.Posts
}

// NewPosts creates the post handler group.
func NewPosts(svc *service.Posts) *Posts {
	return &Posts{svc: svc}
}

// List handles GET /posts.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// Get handles GET /posts/{id}.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", postNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	post, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Create handles POST /posts.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreatePostInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	post, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

// Update handles PUT /posts/{id}.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", postNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.UpdatePostInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	post, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /posts/{id}.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", postNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	msg, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}
