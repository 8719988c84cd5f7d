// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers exposes the user, post and category services as a
// JSON REST API.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"blogapi/internal/apperror"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError renders err as {"error": "..."} with the status of its
// apperror type. Internal errors are logged and their message replaced.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.From(err)
	status := appErr.StatusCode()

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeJSON(w, status, apperror.Response{Error: "Internal server error"})
		return
	}
	writeJSON(w, status, appErr.ToResponse())
}

// decodeJSON reads the request body into dst. A malformed or empty body
// is a validation error.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return apperror.NewValidation("Request body is required")
		case errors.As(err, &maxErr):
			return apperror.NewValidation("Request body is too large")
		default:
			return apperror.NewValidation("Invalid JSON body")
		}
	}
	return nil
}

// parseID reads a UUID route parameter. Anything that is not a UUID
// cannot name an existing record, so it is reported as notFound.
func parseID(r *http.Request, param, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		return uuid.Nil, apperror.NewNotFound(notFound)
	}
	return id, nil
}
