// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the blog API server.
// It loads configuration, opens the selected store, sets up routing, and
// starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"blogapi/internal/config"
	"blogapi/internal/database"
	"blogapi/internal/handlers"
	"blogapi/internal/middleware"
	"blogapi/internal/router"
	"blogapi/internal/service"
	"blogapi/internal/store"
	"blogapi/internal/store/memstore"
	"blogapi/internal/valkey"
)

// stores bundles one implementation of each store interface.
type stores struct {
	users      service.UserStore
	posts      service.PostStore
	categories service.CategoryStore
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Text logs in development, JSON everywhere else.
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreBackend,
	)

	checks := map[string]router.Check{}

	var st stores
	switch cfg.StoreBackend {
	case config.BackendMemory:
		db := memstore.New()
		st = stores{
			users:      memstore.NewUserStore(db),
			posts:      memstore.NewPostStore(db),
			categories: memstore.NewCategoryStore(db),
		}
		slog.Warn("using in-memory store, data is lost on restart")

	default:
		db, err := database.Connect(cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}

		// Seed development data (no-op if data already exists).
		if cfg.IsDev() {
			if err := database.Seed(db); err != nil {
				slog.Error("failed to seed database", "error", err)
				os.Exit(1)
			}
		}

		st = stores{
			users:      store.NewUserStore(db),
			posts:      store.NewPostStore(db),
			categories: store.NewCategoryStore(db),
		}
		checks["postgres"] = db.PingContext
	}

	// Valkey is optional. Without it each instance limits on its own.
	var limiter middleware.Limiter
	if cfg.RateLimitRequests > 0 {
		if cfg.ValkeyEnabled() {
			client, err := valkey.Connect(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
			if err != nil {
				slog.Error("failed to connect to valkey", "error", err)
				os.Exit(1)
			}
			defer client.Close()

			limiter = middleware.NewValkeyLimiter(client, cfg.RateLimitRequests, cfg.RateLimitWindow)
			checks["valkey"] = valkey.Check(client)
		} else {
			ml := middleware.NewMemoryLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
			defer ml.Stop()
			limiter = ml
		}
		slog.Info("rate limiting enabled",
			"requests", cfg.RateLimitRequests,
			"window", cfg.RateLimitWindow.String(),
			"shared", cfg.ValkeyEnabled(),
		)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := router.New(router.Options{
		Users:       handlers.NewUsers(service.NewUsers(st.users)),
		Posts:       handlers.NewPosts(service.NewPosts(st.posts)),
		Categories:  handlers.NewCategories(service.NewCategories(st.categories, st.posts)),
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
		Metrics:     middleware.NewMetrics(reg),
		Gatherer:    reg,
		Checks:      checks,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	case err := <-serverErr:
		slog.Error("server failed", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return
	}

	slog.Info("server stopped gracefully")
}
