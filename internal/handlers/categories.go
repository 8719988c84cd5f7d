// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"blogapi/internal/models"
	"blogapi/internal/service"
)

const categoryNotFound = "Category not found"

// Categories serves /categories and the category/post links below it.
type Categories struct {
	svc *service.Categories
}

// NewCategories creates the category handler group.
func NewCategories(svc *service.Categories) *Categories {
	return &Categories{svc: svc}
}

// List handles GET /categories.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cats)
}

// Get handles GET /categories/{id}.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", categoryNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	cat, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// Create handles POST /categories.
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateCategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	cat, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

// Update handles PUT /categories/{id}.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", categoryNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.UpdateCategoryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	cat, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

// Delete handles DELETE /categories/{id}.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", categoryNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	msg, err := h.svc.Remove(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// AttachPost handles PUT /categories/{id}/posts/{postID}.
func (h *Categories) AttachPost(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, h.svc.AttachPost)
}

// DetachPost handles DELETE /categories/{id}/posts/{postID}.
func (h *Categories) DetachPost(w http.ResponseWriter, r *http.Request) {
	h.link(w, r, h.svc.DetachPost)
}

func (h *Categories) link(w http.ResponseWriter, r *http.Request, op func(context.Context, uuid.UUID, uuid.UUID) (*models.Category, error)) {
	categoryID, err := parseID(r, "id", categoryNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	postID, err := parseID(r, "postID", postNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	cat, err := op(r.Context(), categoryID, postID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}
