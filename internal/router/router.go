// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// image generator.
package router

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"ogsvg/internal/handlers"
	"ogsvg/internal/middleware"
)

// Config holds the routing options that do not come from a handler.
type Config struct {
	// UploadDir is served read-only under UploadURL so published images
	// are reachable without object storage. Empty disables it.
	UploadDir string
	UploadURL string

	// PreviewLimiter throttles POST /og-svg/preview. Nil disables limiting.
	PreviewLimiter *middleware.RateLimiter
}

// New creates the configured Chi router.
func New(og *handlers.OG, cfg Config) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Route("/og-svg", func(r chi.Router) {
		// A panic while rendering still answers with an image.
		r.Use(middleware.RecoverWith(http.HandlerFunc(og.Fallback)))

		r.Get("/themes", og.Themes)

		r.Group(func(r chi.Router) {
			if cfg.PreviewLimiter != nil {
				r.Use(cfg.PreviewLimiter.Middleware)
			}
			r.Post("/preview", og.Preview)
		})

		r.Get("/{item}", og.Image)
		r.Get("/{item}/", og.Image)
	})

	if cfg.UploadDir != "" {
		prefix := "/" + strings.Trim(cfg.UploadURL, "/")
		if prefix == "/" {
			prefix = "/uploads"
		}
		files := http.StripPrefix(prefix+"/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get(prefix+"/*", files.ServeHTTP)
	}

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
