// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/webp" // register the WebP decoder for imaging.Decode
)

var errNotDataURI = errors.New("not a base64 data URI")

// clipPath is a clip region. Bounding box clips are drawn relative to the
// element they clip, user space clips relative to the canvas.
type clipPath struct {
	boundingBox bool
	content     []byte
}

type clipElement struct {
	ID    string `xml:"id,attr"`
	Units string `xml:"clipPathUnits,attr"`
	Inner []byte `xml:",innerxml"`
}

func (r *renderer) collectClips(raw []byte) {
	var defs struct {
		Clips []clipElement `xml:"clipPath"`
	}
	if err := xml.Unmarshal(raw, &defs); err != nil {
		slog.Debug("imaging: unreadable defs", "error", err)
		return
	}
	for _, c := range defs.Clips {
		r.addClip(c)
	}
}

func (r *renderer) collectClip(raw []byte) {
	var c clipElement
	if err := xml.Unmarshal(raw, &c); err != nil {
		slog.Debug("imaging: unreadable clipPath", "error", err)
		return
	}
	r.addClip(c)
}

func (r *renderer) addClip(c clipElement) {
	if c.ID == "" {
		return
	}
	r.clips[c.ID] = clipPath{
		boundingBox: c.Units == "objectBoundingBox",
		content:     c.Inner,
	}
}

// clipMask returns the mask for a clip-path reference and the canvas point
// that maps onto the mask origin. The mask is nil when there is no clip.
func (r *renderer) clipMask(ref string, box image.Rectangle) (*image.RGBA, image.Point) {
	id := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(ref), "url(#"), ")")
	clip, ok := r.clips[id]
	if !ok || id == "" {
		return nil, image.Point{}
	}

	var doc bytes.Buffer
	var mask *image.RGBA
	var origin image.Point
	if clip.boundingBox {
		doc.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" width="1" height="1" viewBox="0 0 1 1">`)
		mask = image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
		origin = box.Min
	} else {
		fmt.Fprintf(&doc, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, r.w, r.h, r.w, r.h)
		mask = image.NewRGBA(image.Rect(0, 0, r.w, r.h))
	}
	doc.Write(clip.content)
	doc.WriteString("</svg>")

	if err := drawIcon(mask, doc.Bytes(), mask.Bounds()); err != nil {
		slog.Debug("imaging: clip path not drawn", "id", id, "error", err)
		return nil, image.Point{}
	}
	return mask, origin
}

// drawImage composites an <image> element. Images that cannot be decoded
// are skipped so the rest of the document still renders.
func (r *renderer) drawImage(raw []byte) {
	el, err := parseElement(raw)
	if err != nil {
		slog.Debug("imaging: unreadable image element", "error", err)
		return
	}
	x, y := el.float("x", 0), el.float("y", 0)
	box := image.Rect(int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+el.float("width", 0))), int(math.Round(y+el.float("height", 0))))
	if box.Empty() {
		return
	}

	src, err := r.decodeImage(el.attr("href"), box)
	if err != nil {
		slog.Debug("imaging: embedded image skipped", "error", err)
		return
	}

	var fitted image.Image
	dst := box
	if strings.Contains(el.attr("preserveAspectRatio"), "slice") {
		fitted = imaging.Fill(src, box.Dx(), box.Dy(), imaging.Center, imaging.Lanczos)
	} else {
		sb := src.Bounds()
		scale := math.Min(float64(box.Dx())/float64(sb.Dx()), float64(box.Dy())/float64(sb.Dy()))
		w := max(1, int(math.Round(float64(sb.Dx())*scale)))
		h := max(1, int(math.Round(float64(sb.Dy())*scale)))
		fitted = imaging.Resize(src, w, h, imaging.Lanczos)
		offset := image.Pt((box.Dx()-w)/2, (box.Dy()-h)/2)
		dst = image.Rect(0, 0, w, h).Add(box.Min.Add(offset))
	}

	mask, origin := r.clipMask(el.attr("clip-path"), box)
	if mask == nil {
		draw.Draw(r.canvas, dst, fitted, fitted.Bounds().Min, draw.Over)
		return
	}
	draw.DrawMask(r.canvas, dst, fitted, fitted.Bounds().Min, mask, dst.Min.Sub(origin), draw.Over)
}

// decodeImage decodes a data URI. SVG payloads are rasterized at the size
// of the box they are drawn into.
func (r *renderer) decodeImage(href string, box image.Rectangle) (image.Image, error) {
	mime, data, err := parseDataURI(href)
	if err != nil {
		return nil, err
	}
	if mime == "image/svg+xml" {
		icon := image.NewRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
		if err := drawIcon(icon, data, icon.Bounds()); err != nil {
			return nil, fmt.Errorf("rasterize svg image: %w", err)
		}
		return icon, nil
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", mime, err)
	}
	return img, nil
}

// parseDataURI splits data:<mime>;base64,<payload>.
func parseDataURI(href string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(href), "data:")
	if !ok {
		return "", nil, errNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errNotDataURI
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return strings.ToLower(mime), data, nil
}
