// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the brandkit asset server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brandkit/internal/assets"
	"brandkit/internal/cache"
	"brandkit/internal/catalog"
	"brandkit/internal/config"
	"brandkit/internal/database"
	"brandkit/internal/engine"
	"brandkit/internal/middleware"
	"brandkit/internal/pdf"
	"brandkit/internal/router"
	"brandkit/internal/storage"
	"brandkit/internal/store"
)

func main() {
	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON everywhere else.
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, opts)
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"log_level", cfg.SlogLevel().String(),
	)

	ctx := context.Background()

	// Connect to PostgreSQL.
	db, err := database.Connect(ctx, cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(ctx, db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, db, store.NewUserStore(db)); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Load the template catalog; a broken catalog is a build defect.
	cat := catalog.Default()
	slog.Info("template catalog loaded", "templates", cat.Len())

	// Artifact storage: S3-compatible when configured, local disk otherwise.
	var artifacts storage.Store
	s3Store, err := storage.NewS3(cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if s3Store != nil {
		artifacts = s3Store
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		local, err := storage.NewLocal(cfg.StorageDir)
		if err != nil {
			slog.Error("failed to initialize local storage", "error", err)
			os.Exit(1)
		}
		artifacts = local
		slog.Warn("s3 storage not configured, writing documents to disk", "dir", cfg.StorageDir)
	}

	deps := assets.Deps{
		Catalog:   cat,
		Engine:    engine.New(),
		Users:     store.NewUserStore(db),
		Records:   store.NewAssetStore(db),
		Artifacts: artifacts,
		Backend:   pdf.New(cfg.GotenbergURL, cfg.RenderTimeout),
	}

	// Preview cache in Valkey (optional, the service runs without it).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, preview cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		deps.Previews = cache.NewPreviewCache(valkeyClient, cfg.PreviewTTL)
		deps.PreviewKey = cache.PreviewKey
	}

	manager := assets.New(deps)

	// Rendering routes are rate-limited per client.
	limiter := middleware.NewRateLimiter(cfg.RateLimitGenerate, time.Minute)
	defer limiter.Stop()

	r := router.New(manager, limiter)

	// WriteTimeout must cover a full conversion round trip to Gotenberg.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RenderTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "gotenberg", cfg.GotenbergURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
