// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging rasterizes generated OpenGraph SVG documents into PNG for
// consumers that do not accept SVG. Shapes and gradients go through oksvg,
// text is drawn with the Go fonts and embedded images are decoded, fitted
// and clipped before being composited in document order.
package imaging

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
)

// Default canvas size when the root element does not declare one.
const (
	Width  = 1200
	Height = 630
)

// ErrNotSVG is returned when the document has no <svg> root.
var ErrNotSVG = errors.New("imaging: document has no svg root")

// RenderPNG rasterizes svg and encodes the result as PNG.
func RenderPNG(svg []byte) ([]byte, error) {
	img, err := Rasterize(svg)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("imaging: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Rasterize draws svg onto a transparent canvas the size of its root element.
func Rasterize(svg []byte) (*image.RGBA, error) {
	dec := xml.NewDecoder(bytes.NewReader(svg))
	root, err := findRoot(dec)
	if err != nil {
		return nil, err
	}

	r := &renderer{
		w:     dimension(root, "width", Width),
		h:     dimension(root, "height", Height),
		clips: make(map[string]clipPath),
		faces: make(map[faceKey]font.Face),
	}
	r.canvas = image.NewRGBA(image.Rect(0, 0, r.w, r.h))

	for {
		start := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("imaging: parse svg: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("imaging: parse <%s>: %w", t.Name.Local, err)
			}
			if err := r.element(t.Name.Local, svg[start:dec.InputOffset()]); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if err := r.flush(); err != nil {
				return nil, err
			}
			return r.canvas, nil
		}
	}
	return nil, fmt.Errorf("imaging: parse svg: %w", io.ErrUnexpectedEOF)
}

// findRoot advances dec past the opening <svg> tag.
func findRoot(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			return xml.StartElement{}, ErrNotSVG
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "svg" {
				return xml.StartElement{}, ErrNotSVG
			}
			return se, nil
		}
	}
}

func dimension(se xml.StartElement, name string, fallback int) int {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(a.Value), "px"), 64)
			if err == nil && v > 0 {
				return int(v)
			}
		}
	}
	return fallback
}

// renderer paints top-level elements in document order. Consecutive shapes
// are batched into one oksvg document and flushed before any text or image.
type renderer struct {
	canvas *image.RGBA
	w, h   int
	defs   bytes.Buffer
	shapes bytes.Buffer
	clips  map[string]clipPath
	faces  map[faceKey]font.Face
}

func (r *renderer) element(name string, raw []byte) error {
	switch name {
	case "defs":
		r.collectClips(raw)
		r.defs.Write(normalizeDefs(raw))
	case "clipPath":
		r.collectClip(raw)
	case "text":
		if err := r.flush(); err != nil {
			return err
		}
		return r.drawText(raw)
	case "image":
		if err := r.flush(); err != nil {
			return err
		}
		r.drawImage(raw)
	case "rect", "circle", "ellipse", "line", "polyline", "polygon", "path":
		shape, err := normalizeShape(raw)
		if err != nil {
			return fmt.Errorf("imaging: <%s>: %w", name, err)
		}
		r.shapes.WriteString(shape)
	default:
		slog.Debug("imaging: element not drawn", "element", name)
	}
	return nil
}

// flush draws the pending shapes.
func (r *renderer) flush() error {
	if r.shapes.Len() == 0 {
		return nil
	}
	var doc bytes.Buffer
	fmt.Fprintf(&doc, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, r.w, r.h, r.w, r.h)
	doc.Write(r.defs.Bytes())
	doc.Write(r.shapes.Bytes())
	doc.WriteString("</svg>")
	r.shapes.Reset()

	if err := drawIcon(r.canvas, doc.Bytes(), image.Rect(0, 0, r.w, r.h)); err != nil {
		return fmt.Errorf("imaging: draw shapes: %w", err)
	}
	return nil
}

// drawIcon renders an SVG document into the target rectangle of dst.
func drawIcon(dst *image.RGBA, doc []byte, target image.Rectangle) error {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(doc), oksvg.IgnoreErrorMode)
	if err != nil {
		return err
	}
	icon.SetTarget(float64(target.Min.X), float64(target.Min.Y), float64(target.Dx()), float64(target.Dy()))

	b := dst.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b)
	raster := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)
	icon.Draw(raster, 1.0)
	return nil
}

// element is any SVG element with its attributes.
type element struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
}

func parseElement(raw []byte) (element, error) {
	var el element
	err := xml.Unmarshal(raw, &el)
	return el, err
}

// attr returns the value of the attribute with the given local name.
func (el element) attr(name string) string {
	for _, a := range el.Attrs {
		if a.Name.Local == name {
			return strings.TrimSpace(a.Value)
		}
	}
	return ""
}

func (el element) float(name string, fallback float64) float64 {
	v := strings.TrimSuffix(el.attr(name), "px")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}
