// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"blogapi/internal/service"
)

const userNotFound = "User not found"

// Users serves /users.
type Users struct {
	svc *service.Users
}

// NewUsers creates the user handler group.
func NewUsers(svc *service.Users) *Users {
	return &Users{svc: svc}
}

// List handles GET /users.
func (h *Users) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Get handles GET /users/{id}.
func (h *Users) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", userNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Profile handles GET /users/{id}/profile.
func (h *Users) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", "Profile not found")
	if err != nil {
		writeError(w, r, err)
		return
	}
	profile, err := h.svc.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Create handles POST /users.
func (h *Users) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateUserInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Update handles PUT /users/{id}.
func (h *Users) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", userNotFound)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in service.UpdateUserInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	user, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete handles DELETE /users/{id}.
func (h *Users) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id", userNotFound)
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
