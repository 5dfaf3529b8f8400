// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publish persists generated images to the upload directory, mirrors
// them to object storage when configured and records them in the database.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"ogsvg/internal/models"
)

// Subdir is the directory, relative to the upload root, holding published
// images.
const Subdir = "og-svg"

// ObjectStore uploads published files. storage.Client satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, key, contentType string, data []byte) error
	FileURL(key string) string
}

// Recorder stores one record per published item. store.OGImageStore
// satisfies it.
type Recorder interface {
	Upsert(img *models.OGImage) (*models.OGImage, bool, error)
}

// Rasterizer converts SVG to PNG. imaging.RenderPNG satisfies it.
type Rasterizer func(svg []byte) ([]byte, error)

// Config configures a Publisher. Objects, Records and Rasterize are optional.
type Config struct {
	Dir       string // upload root on disk
	BaseURL   string // public URL of Dir, e.g. "/uploads"
	PNG       bool   // also publish a PNG next to each SVG
	Objects   ObjectStore
	Records   Recorder
	Rasterize Rasterizer
}

// Publisher writes generated images.
type Publisher struct {
	dir       string
	baseURL   string
	png       bool
	objects   ObjectStore
	records   Recorder
	rasterize Rasterizer
}

// New creates a Publisher from cfg.
func New(cfg Config) *Publisher {
	return &Publisher{
		dir:       cfg.Dir,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		png:       cfg.PNG && cfg.Rasterize != nil,
		objects:   cfg.Objects,
		records:   cfg.Records,
		rasterize: cfg.Rasterize,
	}
}

// Image is a rendered image for one item. ItemID is nil for the home page.
// PNG may be left empty; it is rasterized when PNG publishing is enabled.
type Image struct {
	ItemID  *int64
	ThemeID string
	SVG     string
	PNG     []byte
}

// Published describes where an image was written.
type Published struct {
	SVGPath string // relative to the upload root
	SVGURL  string
	PNGURL  string
	PNG     []byte
}

// ItemKey names an item in file names and records: the id, or "home".
func ItemKey(itemID *int64) string {
	if itemID == nil {
		return "home"
	}
	return strconv.FormatInt(*itemID, 10)
}

// FileName returns the published file name, e.g. "og-svg-42.svg".
func FileName(itemID *int64, ext string) string {
	return "og-svg-" + ItemKey(itemID) + "." + ext
}

// Paths returns the upload-relative paths of an item's SVG and PNG.
func Paths(itemID *int64) (svgPath, pngPath string) {
	return path.Join(Subdir, FileName(itemID, "svg")), path.Join(Subdir, FileName(itemID, "png"))
}

// Save writes img to disk and, when configured, to object storage and the
// database. Only the local write is fatal; the rest is logged.
func (p *Publisher) Save(ctx context.Context, img Image) (Published, error) {
	if strings.TrimSpace(img.SVG) == "" {
		return Published{}, fmt.Errorf("publish %s: empty svg", ItemKey(img.ItemID))
	}
	svgPath, pngPath := Paths(img.ItemID)

	if err := p.writeFile(svgPath, []byte(img.SVG)); err != nil {
		return Published{}, err
	}
	out := Published{SVGPath: svgPath, SVGURL: p.publish(ctx, svgPath, "image/svg+xml", []byte(img.SVG))}

	if p.png {
		data := img.PNG
		if len(data) == 0 {
			var err error
			if data, err = p.rasterize([]byte(img.SVG)); err != nil {
				slog.Error("rasterizing og image", "item", ItemKey(img.ItemID), "error", err)
			}
		}
		if len(data) > 0 {
			if err := p.writeFile(pngPath, data); err != nil {
				slog.Error("writing og png", "item", ItemKey(img.ItemID), "error", err)
			} else {
				out.PNGURL = p.publish(ctx, pngPath, "image/png", data)
				out.PNG = data
			}
		}
	}

	p.record(img, out)
	return out, nil
}

// writeFile replaces rel under the upload root atomically.
func (p *Publisher) writeFile(rel string, data []byte) error {
	full := filepath.Join(p.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create publish dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(full), ".og-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", rel, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", rel, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", rel, err)
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return fmt.Errorf("rename %s: %w", rel, err)
	}
	return nil
}

// publish uploads a file when object storage is configured and returns its
// public URL. Upload failures fall back to the local URL.
func (p *Publisher) publish(ctx context.Context, rel, contentType string, data []byte) string {
	if p.objects != nil {
		if err := p.objects.Upload(ctx, rel, contentType, data); err != nil {
			slog.Error("uploading og image", "key", rel, "error", err)
		} else {
			return p.objects.FileURL(rel)
		}
	}
	return p.baseURL + "/" + rel
}

func (p *Publisher) record(img Image, out Published) {
	if p.records == nil {
		return
	}
	rec := &models.OGImage{
		ContentID: img.ItemID,
		ItemKey:   ItemKey(img.ItemID),
		ThemeID:   img.ThemeID,
		SVGPath:   out.SVGPath,
		SVGURL:    out.SVGURL,
	}
	if out.PNGURL != "" {
		rec.PNGURL = &out.PNGURL
	}
	saved, created, err := p.records.Upsert(rec)
	if err != nil {
		slog.Error("recording og image", "item", rec.ItemKey, "error", err)
		return
	}
	if created {
		slog.Info("og image published", "item", saved.ItemKey, "theme", saved.ThemeID, "url", saved.SVGURL)
	}
}
