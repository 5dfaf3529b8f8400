// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package inline turns image references into self-contained data URIs so
// rendered SVG documents never point at external resources. References are
// resolved from local upload storage, from the S3 public bucket, or fetched
// over HTTP with a small on-disk cache in front.
//
// Every failure is absorbed: callers get (Asset{}, false) and draw a
// fallback shape instead.
package inline

import (
	"context"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// MaxBytes is the largest image that will be embedded.
	MaxBytes = 500_000

	// CacheTTL is how long a fetched remote image is served from disk.
	CacheTTL = 7 * 24 * time.Hour

	// FetchTimeout bounds a single remote fetch.
	FetchTimeout = 10 * time.Second

	// UserAgent identifies remote fetches.
	UserAgent = "ogsvg OpenGraph Image Generator"

	// defaultMIME is used when a local file's type cannot be determined.
	defaultMIME = "image/jpeg"
)

var (
	errTooLarge    = errors.New("image exceeds size limit")
	errEmptyBody   = errors.New("empty response body")
	errNotAnImage  = errors.New("response is not an image")
	errBadCacheRow = errors.New("malformed cache entry")
)

// Asset is an inlined image.
type Asset struct {
	MIME string
	Data []byte
}

// URI returns the asset as a base64 data URI.
func (a Asset) URI() string {
	return "data:" + a.MIME + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

// ObjectStore resolves references that live in object storage.
// storage.Client satisfies it.
type ObjectStore interface {
	KeyFor(rawURL string) (string, bool)
	Download(ctx context.Context, key string, limit int64) ([]byte, error)
}

// Config describes where images may come from.
type Config struct {
	// LocalURL and LocalDir map public upload URLs onto the filesystem.
	LocalURL string
	LocalDir string

	// CacheDir holds fetched remote images, one file per URL.
	CacheDir string

	// Objects is optional.
	Objects ObjectStore

	// Client overrides the HTTP client used for remote fetches.
	Client *http.Client

	// Now overrides the clock used for cache expiry.
	Now func() time.Time
}

// Inliner converts image references into data URIs.
type Inliner struct {
	localURL string
	localDir string
	cacheDir string
	objects  ObjectStore
	client   *http.Client
	now      func() time.Time
	group    singleflight.Group
}

// New creates an Inliner from cfg.
func New(cfg Config) *Inliner {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: FetchTimeout}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Inliner{
		localURL: strings.TrimRight(cfg.LocalURL, "/"),
		localDir: cfg.LocalDir,
		cacheDir: cfg.CacheDir,
		objects:  cfg.Objects,
		client:   client,
		now:      now,
	}
}

// Inline resolves ref into an Asset. The boolean is false when the image is
// unavailable for any reason; the cause is logged.
func (in *Inliner) Inline(ctx context.Context, ref string) (Asset, bool) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Asset{}, false
	}

	var (
		asset Asset
		err   error
	)
	switch {
	case in.isLocal(ref):
		asset, err = in.readLocal(ref)
	case in.objects != nil && in.hasObject(ref):
		asset, err = in.readObject(ctx, ref)
	default:
		asset, err = in.readRemote(ctx, ref)
	}
	if err != nil {
		slog.Warn("image unavailable", "ref", ref, "error", err)
		return Asset{}, false
	}
	return asset, true
}

func (in *Inliner) isLocal(ref string) bool {
	return in.localURL != "" && in.localDir != "" && strings.HasPrefix(ref, in.localURL+"/")
}

func (in *Inliner) hasObject(ref string) bool {
	_, ok := in.objects.KeyFor(ref)
	return ok
}

// readLocal reads a file under the local upload directory. The URL path is
// cleaned so a reference cannot escape the directory.
func (in *Inliner) readLocal(ref string) (Asset, error) {
	rel := strings.TrimPrefix(ref, in.localURL)
	if i := strings.IndexAny(rel, "?#"); i >= 0 {
		rel = rel[:i]
	}
	p := filepath.Join(in.localDir, filepath.FromSlash(path.Clean("/"+rel)))

	info, err := os.Stat(p)
	if err != nil {
		return Asset{}, fmt.Errorf("local image: %w", err)
	}
	if info.Size() > MaxBytes {
		return Asset{}, fmt.Errorf("local image %d bytes: %w", info.Size(), errTooLarge)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return Asset{}, fmt.Errorf("local image: %w", err)
	}
	return Asset{MIME: detectMIME(p, data), Data: data}, nil
}

func (in *Inliner) readObject(ctx context.Context, ref string) (Asset, error) {
	key, _ := in.objects.KeyFor(ref)
	data, err := in.objects.Download(ctx, key, MaxBytes+1)
	if err != nil {
		return Asset{}, fmt.Errorf("object image: %w", err)
	}
	if len(data) > MaxBytes {
		return Asset{}, fmt.Errorf("object image: %w", errTooLarge)
	}
	if len(data) == 0 {
		return Asset{}, fmt.Errorf("object image: %w", errEmptyBody)
	}
	return Asset{MIME: detectMIME(key, data), Data: data}, nil
}

// readRemote serves a fresh cache entry or fetches the URL. Concurrent
// requests for the same URL share one fetch. The shared fetch is detached
// from any single caller's cancellation and bounded by FetchTimeout; a
// cancelled caller stops waiting without failing the others.
func (in *Inliner) readRemote(ctx context.Context, rawURL string) (Asset, error) {
	key := CacheKey(rawURL)
	if asset, ok := in.readCache(key); ok {
		return asset, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := in.group.DoChan(key, func() (any, error) {
		asset, err := in.fetch(shared, rawURL)
		if err != nil {
			return Asset{}, err
		}
		in.writeCache(key, asset)
		return asset, nil
	})

	select {
	case <-ctx.Done():
		return Asset{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Asset{}, res.Err
		}
		return res.Val.(Asset), nil
	}
}

func (in *Inliner) fetch(ctx context.Context, rawURL string) (Asset, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Asset{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := in.client.Do(req)
	if err != nil {
		return Asset{}, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Asset{}, fmt.Errorf("fetch: status %d", resp.StatusCode)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "image/") {
		return Asset{}, fmt.Errorf("fetch: content type %q: %w", mediaType, errNotAnImage)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBytes+1))
	if err != nil {
		return Asset{}, fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return Asset{}, fmt.Errorf("fetch: %w", errEmptyBody)
	}
	if len(body) > MaxBytes {
		return Asset{}, fmt.Errorf("fetch: %w", errTooLarge)
	}

	return Asset{MIME: mediaType, Data: body}, nil
}

// CacheKey returns the cache file name for a remote URL.
func CacheKey(rawURL string) string {
	sum := md5.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:])
}

// readCache returns a fresh entry. Stale or unreadable entries are removed.
func (in *Inliner) readCache(key string) (Asset, bool) {
	if in.cacheDir == "" {
		return Asset{}, false
	}
	p := filepath.Join(in.cacheDir, key)

	info, err := os.Stat(p)
	if err != nil {
		return Asset{}, false
	}
	if in.now().Sub(info.ModTime()) < CacheTTL {
		asset, err := readCacheFile(p)
		if err == nil {
			return asset, true
		}
		slog.Warn("image cache entry unreadable", "key", key, "error", err)
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("image cache remove failed", "key", key, "error", err)
	}
	return Asset{}, false
}

// readCacheFile parses a "mime|base64" entry.
func readCacheFile(p string) (Asset, error) {
	raw, err := os.ReadFile(p)
	if err != nil {
		return Asset{}, err
	}
	mimeType, payload, ok := strings.Cut(string(raw), "|")
	if !ok || mimeType == "" {
		return Asset{}, errBadCacheRow
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return Asset{}, errBadCacheRow
	}
	return Asset{MIME: mimeType, Data: data}, nil
}

// writeCache stores an entry. Concurrent writers for the same key race and
// the last one wins.
func (in *Inliner) writeCache(key string, asset Asset) {
	if in.cacheDir == "" {
		return
	}
	if err := os.MkdirAll(in.cacheDir, 0o755); err != nil {
		slog.Warn("image cache dir create failed", "dir", in.cacheDir, "error", err)
		return
	}
	row := asset.MIME + "|" + base64.StdEncoding.EncodeToString(asset.Data)
	if err := os.WriteFile(filepath.Join(in.cacheDir, key), []byte(row), 0o644); err != nil {
		slog.Warn("image cache write failed", "key", key, "error", err)
	}
}

// detectMIME picks a type from the file extension, then from the content.
func detectMIME(name string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		if mediaType, _, err := mime.ParseMediaType(t); err == nil && strings.HasPrefix(mediaType, "image/") {
			return mediaType
		}
	}
	if t := http.DetectContentType(data); strings.HasPrefix(t, "image/") {
		return t
	}
	return defaultMIME
}
