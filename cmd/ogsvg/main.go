// Package main is the entry point for the OpenGraph image server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"ogsvg/internal/cache"
	"ogsvg/internal/config"
	"ogsvg/internal/database"
	"ogsvg/internal/engine"
	"ogsvg/internal/handlers"
	"ogsvg/internal/imaging"
	"ogsvg/internal/inline"
	"ogsvg/internal/middleware"
	"ogsvg/internal/publish"
	"ogsvg/internal/router"
	"ogsvg/internal/storage"
	"ogsvg/internal/store"
	"ogsvg/internal/theme"
)

func main() {
	listThemes := flag.Bool("themes", false, "print the theme catalog as YAML and exit")
	flushCache := flag.Bool("flush-cache", false, "drop cached images and previews from Valkey and exit")
	flag.Parse()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: text in development, JSON elsewhere.
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	var handler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	if cfg.IsDev() {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))

	var custom []theme.CustomDefinition
	if cfg.CustomThemes != "" {
		custom, err = theme.LoadCustomDefinitions(cfg.CustomThemes)
		if err != nil {
			slog.Error("failed to load custom themes", "path", cfg.CustomThemes, "error", err)
			os.Exit(1)
		}
	}

	if *listThemes {
		if err := theme.ExportCatalog(os.Stdout, theme.NewRegistry(nil, custom...).Available()); err != nil {
			slog.Error("failed to export themes", "error", err)
			os.Exit(1)
		}
		return
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"png", cfg.PNG,
	)

	// Connect to Valkey. Images are rendered on every request without it.
	valkeyClient, err := cache.ConnectValkey(context.Background(), cache.ValkeyOptions{
		Addr:     cfg.ValkeyAddr(),
		Password: cfg.ValkeyPassword,
		DB:       cfg.ValkeyDB,
	})
	if err != nil {
		slog.Warn("valkey unavailable, image caching disabled", "error", err)
		valkeyClient = nil
	}
	if valkeyClient != nil {
		defer valkeyClient.Close()
	}
	imageCache := cache.NewImageCache(valkeyClient, cfg.ImageTTL)
	previewCache := cache.NewPreviewCache(valkeyClient, cfg.PreviewTTL)

	if *flushCache {
		os.Exit(flush(valkeyClient, imageCache, previewCache))
	}

	// Connect to PostgreSQL.
	db, err := database.Connect(context.Background(), cfg.DSN(), cfg.DBMaxConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if _, err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Default settings are always present; demo content only in development.
	if err := database.Seed(db); err != nil {
		slog.Error("failed to seed database", "error", err)
		os.Exit(1)
	}
	if cfg.IsDev() {
		if _, err := store.SeedDemo(db); err != nil {
			slog.Error("failed to seed demo content", "error", err)
			os.Exit(1)
		}
	}

	// Connect to S3-compatible object storage (optional).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}

	inlineCfg := inline.Config{
		LocalURL: cfg.UploadURL,
		LocalDir: cfg.UploadDir,
		CacheDir: cfg.CacheDir,
	}
	publishCfg := publish.Config{
		Dir:       cfg.UploadDir,
		BaseURL:   cfg.UploadURL,
		PNG:       cfg.PNG,
		Rasterize: imaging.RenderPNG,
	}
	// Assign only a non-nil client; a typed nil would look configured.
	if storageClient != nil {
		inlineCfg.Objects = storageClient
		publishCfg.Objects = storageClient
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", storageClient.Bucket(),
		)
	} else {
		slog.Warn("s3 storage not configured, images are published locally only")
	}

	if err := os.MkdirAll(filepath.Join(cfg.UploadDir, publish.Subdir), 0o755); err != nil {
		slog.Error("failed to create upload directory", "dir", cfg.UploadDir, "error", err)
		os.Exit(1)
	}

	// Initialize data stores.
	contentStore := store.NewContentStore(db)
	settingStore := store.NewSiteSettingStore(db)
	publishCfg.Records = store.NewOGImageStore(db)

	registry := theme.NewRegistry(inline.New(inlineCfg), custom...)
	slog.Info("themes registered", "themes", registry.IDs())

	eng := engine.New(registry, contentStore, settingStore, contentStore)

	og := handlers.NewOG(eng, imageCache, previewCache, publish.New(publishCfg), handlers.OGConfig{
		PNG:   cfg.PNG,
		Debug: cfg.Debug,
	})

	// Previews render on every settings change; keep editors from flooding.
	previewLimiter := middleware.NewRateLimiter(30, time.Minute)
	defer previewLimiter.Stop()

	r := router.New(og, router.Config{
		UploadDir:      cfg.UploadDir,
		UploadURL:      cfg.UploadURL,
		PreviewLimiter: previewLimiter,
	})

	// Rasterizing a theme with remote images can take a few seconds.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

// flush drops every cached image and preview and returns the exit code.
func flush(client *redis.Client, caches ...*cache.ImageCache) int {
	if client == nil {
		slog.Error("cannot flush cache: valkey unavailable")
		return 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	total := 0
	for _, c := range caches {
		total += c.InvalidateAll(ctx)
	}
	slog.Info("image cache flushed", "keys", total)
	return 0
}
