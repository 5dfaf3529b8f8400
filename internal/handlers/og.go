// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers serves generated OpenGraph images over HTTP.
package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"ogsvg/internal/cache"
	"ogsvg/internal/engine"
	"ogsvg/internal/imaging"
	"ogsvg/internal/models"
	"ogsvg/internal/publish"
)

// Response cache lifetimes.
const (
	imageCacheControl    = "public, max-age=3600"
	fallbackCacheControl = "public, max-age=300"
)

// maxPreviewBody caps the preview request body.
const maxPreviewBody = 64 << 10

// Image formats served by the image routes.
const (
	formatSVG = "svg"
	formatPNG = "png"
)

// OGConfig holds the optional behavior of the image handlers.
type OGConfig struct {
	PNG   bool // serve /og-svg/{item}.png
	Debug bool // embed render errors in the fallback image
}

// OG groups the image handlers. It checks the Valkey image cache before
// rendering and publishes fresh renders to disk.
type OG struct {
	engine    *engine.Engine
	images    *cache.ImageCache
	previews  *cache.ImageCache
	publisher *publish.Publisher
	cfg       OGConfig
}

// NewOG creates the image handlers. images, previews and publisher may be
// nil.
func NewOG(eng *engine.Engine, images, previews *cache.ImageCache, publisher *publish.Publisher, cfg OGConfig) *OG {
	return &OG{
		engine:    eng,
		images:    images,
		previews:  previews,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Image serves the image for /og-svg/{item}, where item is "home" or an
// item id, optionally followed by ".svg" or ".png".
func (h *OG) Image(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	itemID, format, ok := parseItem(chi.URLParam(r, "item"))
	if !ok || (format == formatPNG && !h.cfg.PNG) {
		http.NotFound(w, r)
		return
	}

	key := cache.ItemKey(itemID, format)
	if cached, ok := h.images.Get(ctx, key); ok {
		w.Header().Set("X-Cache", "HIT")
		writeImage(w, format, cached, imageCacheControl)
		return
	}

	res, err := h.engine.Render(ctx, itemID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("og image render failed", "item", publish.ItemKey(itemID), "error", err)
		h.fallback(w, format, err)
		return
	}

	svg := []byte(res.SVG)
	cacheControl := imageCacheControl
	if res.NotFound {
		// Unknown ids are not published or cached so requests for arbitrary
		// ids cannot fill the disk, the bucket or Valkey.
		cacheControl = fallbackCacheControl
	}

	var png []byte
	if format == formatPNG {
		if png, err = imaging.RenderPNG(svg); err != nil {
			slog.Error("og image rasterize failed", "item", publish.ItemKey(itemID), "error", err)
			h.fallback(w, format, err)
			return
		}
	}

	if h.publisher != nil && !res.NotFound {
		pub, err := h.publisher.Save(ctx, publish.Image{ItemID: itemID, ThemeID: res.ThemeID, SVG: res.SVG, PNG: png})
		if err != nil {
			slog.Error("og image publish failed", "item", publish.ItemKey(itemID), "error", err)
		} else if png == nil {
			png = pub.PNG
		}
	}

	if !res.NotFound {
		h.images.Set(ctx, cache.ItemKey(itemID, formatSVG), svg)
		if png != nil {
			h.images.Set(ctx, cache.ItemKey(itemID, formatPNG), png)
		}
	}

	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("X-OG-Theme", res.ThemeID)
	if format == formatPNG {
		writeImage(w, formatPNG, png, cacheControl)
		return
	}
	writeImage(w, formatSVG, svg, cacheControl)
}

// Fallback serves the static fallback image. It is used as the panic
// handler of the image routes.
func (h *OG) Fallback(w http.ResponseWriter, r *http.Request) {
	_, format, ok := parseItem(chi.URLParam(r, "item"))
	if !ok {
		format = formatSVG
	}
	h.fallback(w, format, nil)
}

func (h *OG) fallback(w http.ResponseWriter, format string, cause error) {
	if !h.cfg.Debug {
		cause = nil
	}
	svg := []byte(h.engine.Fallback(cause))
	if format == formatPNG {
		if png, err := imaging.RenderPNG(svg); err == nil {
			writeImage(w, formatPNG, png, fallbackCacheControl)
			return
		}
	}
	writeImage(w, formatSVG, svg, fallbackCacheControl)
}

// previewRequest is the body of POST /og-svg/preview.
type previewRequest struct {
	ItemID   *int64                    `json:"item_id"`
	Settings models.OGSettingsOverride `json:"settings"`
}

// previewResponse carries the preview as a data URI.
type previewResponse struct {
	ImageURL string `json:"image_url"`
	Theme    string `json:"theme"`
	Cached   bool   `json:"cached"`
}

// Preview renders an item with unsaved settings and returns it as a data
// URI. Results are cached per item and settings fingerprint.
func (h *OG) Preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	w.Header().Set("Cache-Control", "no-store")

	r.Body = http.MaxBytesReader(w, r.Body, maxPreviewBody)
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "Request body is too large."})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body."})
		return
	}
	if req.ItemID != nil && *req.ItemID <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "item_id must be positive."})
		return
	}
	if msg := validatePreview(req.Settings, h.engine.ThemeExists); msg != "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
		return
	}

	key := cache.PreviewKey(req.ItemID, req.Settings.Fingerprint())
	if cached, ok := h.previews.Get(ctx, key); ok {
		var resp previewResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			resp.Cached = true
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	res, err := h.engine.RenderPreview(ctx, req.ItemID, req.Settings)
	if err != nil {
		slog.Error("og preview failed", "item", publish.ItemKey(req.ItemID), "error", err)
		status := http.StatusInternalServerError
		if errors.Is(err, engine.ErrNoTitleData) {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, map[string]string{"error": "Preview could not be rendered."})
		return
	}

	resp := previewResponse{
		ImageURL: "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(res.SVG)),
		Theme:    res.ThemeID,
	}
	if data, err := json.Marshal(resp); err == nil {
		h.previews.Set(ctx, key, data)
	}
	writeJSON(w, http.StatusOK, resp)
}

// Themes lists the available themes keyed by id.
func (h *OG) Themes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, h.engine.ListThemes())
}

// parseItem splits "42.png" into the item id and format. "home" maps to a
// nil id. The format defaults to svg.
func parseItem(raw string) (*int64, string, bool) {
	raw = strings.ToLower(strings.Trim(raw, "/"))
	format := formatSVG
	if name, ok := strings.CutSuffix(raw, "."+formatPNG); ok {
		raw, format = name, formatPNG
	} else {
		raw = strings.TrimSuffix(raw, "."+formatSVG)
	}

	if raw == "home" {
		return nil, format, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, "", false
	}
	return &id, format, true
}

func writeImage(w http.ResponseWriter, format string, data []byte, cacheControl string) {
	if format == formatPNG {
		w.Header().Set("Content-Type", "image/png")
	} else {
		w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
	}
	w.Header().Set("Cache-Control", cacheControl)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
