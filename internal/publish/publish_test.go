// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package publish

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ogsvg/internal/models"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg"/>`

type fakeObjects struct {
	uploads map[string]string
	err     error
}

func (f *fakeObjects) Upload(ctx context.Context, key, contentType string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	if f.uploads == nil {
		f.uploads = make(map[string]string)
	}
	f.uploads[key] = contentType
	return nil
}

func (f *fakeObjects) FileURL(key string) string {
	return "https://cdn.example.com/" + key
}

type fakeRecorder struct {
	records []*models.OGImage
	err     error
}

func (f *fakeRecorder) Upsert(img *models.OGImage) (*models.OGImage, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	f.records = append(f.records, img)
	return img, len(f.records) == 1, nil
}

func fakePNG(svg []byte) ([]byte, error) {
	return []byte("png:" + string(svg)), nil
}

func int64p(v int64) *int64 { return &v }

func TestFileNames(t *testing.T) {
	tests := []struct {
		id      *int64
		ext     string
		want    string
		wantKey string
	}{
		{nil, "svg", "og-svg-home.svg", "home"},
		{int64p(42), "svg", "og-svg-42.svg", "42"},
		{int64p(42), "png", "og-svg-42.png", "42"},
	}
	for _, tt := range tests {
		if got := FileName(tt.id, tt.ext); got != tt.want {
			t.Errorf("FileName: got %q, want %q", got, tt.want)
		}
		if got := ItemKey(tt.id); got != tt.wantKey {
			t.Errorf("ItemKey: got %q, want %q", got, tt.wantKey)
		}
	}

	svgPath, pngPath := Paths(int64p(7))
	if svgPath != "og-svg/og-svg-7.svg" || pngPath != "og-svg/og-svg-7.png" {
		t.Errorf("Paths: got %q, %q", svgPath, pngPath)
	}
}

func TestSaveLocal(t *testing.T) {
	dir := t.TempDir()
	rec := &fakeRecorder{}
	p := New(Config{Dir: dir, BaseURL: "/uploads/", Records: rec})

	out, err := p.Save(context.Background(), Image{ItemID: int64p(42), ThemeID: "minimal", SVG: testSVG})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if out.SVGURL != "/uploads/og-svg/og-svg-42.svg" {
		t.Errorf("SVGURL: got %q", out.SVGURL)
	}
	if out.PNGURL != "" {
		t.Errorf("PNGURL: got %q, want empty when PNG is disabled", out.PNGURL)
	}

	data, err := os.ReadFile(filepath.Join(dir, "og-svg", "og-svg-42.svg"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != testSVG {
		t.Errorf("file: got %q, want %q", data, testSVG)
	}

	if len(rec.records) != 1 {
		t.Fatalf("records: got %d, want 1", len(rec.records))
	}
	got := rec.records[0]
	if got.ItemKey != "42" || *got.ContentID != 42 || got.ThemeID != "minimal" || got.PNGURL != nil {
		t.Errorf("record: got %+v", got)
	}
}

func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	p := New(Config{Dir: dir})
	ctx := context.Background()

	if _, err := p.Save(ctx, Image{SVG: "<svg>one</svg>"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := p.Save(ctx, Image{SVG: "<svg>two</svg>"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "og-svg", "og-svg-home.svg"))
	if string(data) != "<svg>two</svg>" {
		t.Errorf("got %q", data)
	}

	entries, _ := os.ReadDir(filepath.Join(dir, "og-svg"))
	if len(entries) != 1 {
		t.Errorf("expected only the published file, got %d entries", len(entries))
	}
}

func TestSaveWithPNGAndObjects(t *testing.T) {
	dir := t.TempDir()
	objects := &fakeObjects{}
	p := New(Config{Dir: dir, BaseURL: "/uploads", PNG: true, Objects: objects, Rasterize: fakePNG})

	out, err := p.Save(context.Background(), Image{SVG: testSVG})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if out.SVGURL != "https://cdn.example.com/og-svg/og-svg-home.svg" {
		t.Errorf("SVGURL: got %q", out.SVGURL)
	}
	if out.PNGURL != "https://cdn.example.com/og-svg/og-svg-home.png" {
		t.Errorf("PNGURL: got %q", out.PNGURL)
	}
	if objects.uploads["og-svg/og-svg-home.png"] != "image/png" || objects.uploads["og-svg/og-svg-home.svg"] != "image/svg+xml" {
		t.Errorf("uploads: got %v", objects.uploads)
	}
	if _, err := os.Stat(filepath.Join(dir, "og-svg", "og-svg-home.png")); err != nil {
		t.Errorf("png not written: %v", err)
	}
}

func TestSaveUsesProvidedPNG(t *testing.T) {
	p := New(Config{Dir: t.TempDir(), PNG: true, Rasterize: func([]byte) ([]byte, error) {
		t.Error("rasterizer should not run when PNG bytes are provided")
		return nil, nil
	}})
	out, err := p.Save(context.Background(), Image{SVG: testSVG, PNG: []byte("given")})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if string(out.PNG) != "given" {
		t.Errorf("PNG: got %q", out.PNG)
	}
}

func TestSaveToleratesSecondaryFailures(t *testing.T) {
	dir := t.TempDir()
	p := New(Config{
		Dir:       dir,
		BaseURL:   "/uploads",
		PNG:       true,
		Objects:   &fakeObjects{err: errors.New("bucket gone")},
		Records:   &fakeRecorder{err: errors.New("db down")},
		Rasterize: func([]byte) ([]byte, error) { return nil, errors.New("bad svg") },
	})

	out, err := p.Save(context.Background(), Image{ItemID: int64p(3), SVG: testSVG})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if out.SVGURL != "/uploads/og-svg/og-svg-3.svg" {
		t.Errorf("SVGURL: got %q, want local fallback", out.SVGURL)
	}
	if out.PNGURL != "" {
		t.Errorf("PNGURL: got %q, want empty", out.PNGURL)
	}
}

func TestSaveErrors(t *testing.T) {
	p := New(Config{Dir: t.TempDir()})
	if _, err := p.Save(context.Background(), Image{SVG: "  "}); err == nil {
		t.Error("expected error for empty svg")
	}

	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	p = New(Config{Dir: file})
	if _, err := p.Save(context.Background(), Image{SVG: testSVG}); err == nil {
		t.Error("expected error when the upload root is not a directory")
	}
}
