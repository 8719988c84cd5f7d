// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chain for the
// blog API.
package router

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blogapi/internal/handlers"
	"blogapi/internal/middleware"
)

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Options carries everything the router wires together. Limiter, Metrics
// and Checks are optional.
type Options struct {
	Users      *handlers.Users
	Posts      *handlers.Posts
	Categories *handlers.Categories

	CORSOrigins []string
	Limiter     middleware.Limiter
	Metrics     *middleware.Metrics
	Gatherer    prometheus.Gatherer
	Checks      map[string]Check
}

// New creates the chi router with all middleware and routes.
func New(o Options) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: o.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	if o.Metrics != nil {
		r.Use(o.Metrics.Handler)
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "Method not allowed"})
	})

	// Operational endpoints are not rate limited.
	r.Get("/health", healthHandler(o.Checks))
	if o.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(o.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		if o.Limiter != nil {
			r.Use(middleware.RateLimit(o.Limiter))
		}

		r.Route("/users", func(r chi.Router) {
			r.Get("/", o.Users.List)
			r.Post("/", o.Users.Create)
			r.Get("/{id}", o.Users.Get)
			r.Put("/{id}", o.Users.Update)
			r.Delete("/{id}", o.Users.Delete)
			r.Get("/{id}/profile", o.Users.Profile)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", o.Posts.List)
			r.Post("/", o.Posts.Create)
			r.Get("/{id}", o.Posts.Get)
			r.Put("/{id}", o.Posts.Update)
			r.Delete("/{id}", o.Posts.Delete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", o.Categories.List)
			r.Post("/", o.Categories.Create)
			r.Get("/{id}", o.Categories.Get)
			r.Put("/{id}", o.Categories.Update)
			r.Delete("/{id}", o.Categories.Delete)
			r.Put("/{id}/posts/{postID}", o.Categories.AttachPost)
			r.Delete("/{id}/posts/{postID}", o.Categories.DetachPost)
		})
	})

	return r
}

// healthHandler runs every check with a short timeout. Any failure turns
// the response into a 503 so load balancers stop routing here.
func healthHandler(checks map[string]Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := "ok"
		code := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				slog.Error("health check failed", "check", name, "error", err)
				results[name] = "unavailable"
				status = "unavailable"
				code = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		body := map[string]any{"status": status}
		if len(results) > 0 {
			body["checks"] = results
		}
		writeJSON(w, code, body)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}
