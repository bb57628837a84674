// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// brandkit API. Rendering routes sit behind a per-client rate limiter.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"brandkit/internal/assets"
	"brandkit/internal/handlers"
	"brandkit/internal/middleware"
)

// New creates and returns the configured Chi router. limiter guards the
// generate and preview routes; nil disables rate limiting.
func New(manager *assets.Manager, limiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	r.Get("/health", healthHandler)

	a := handlers.NewAssets(manager)
	b := handlers.NewBrand(manager)
	tp := handlers.NewTemplates(manager.Catalog())

	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", tp.List)

		r.Route("/brand/{userId}", func(r chi.Router) {
			r.Get("/", b.Get)
			r.Put("/", b.Save)
		})

		r.Route("/assets", func(r chi.Router) {
			r.Post("/initialize", a.Initialize)
			r.Get("/user/{userId}", a.List)
			r.Get("/download/{assetId}", a.Download)

			// Rendering is the expensive path.
			r.Group(func(r chi.Router) {
				if limiter != nil {
					r.Use(limiter.Middleware)
				}
				r.Post("/generate/{templateId}", a.Generate)
				r.Post("/preview/{templateId}", a.Preview)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"success":false,"error":"Route not found"}`))
}

func methodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	w.Write([]byte(`{"success":false,"error":"Method not allowed"}`))
}
