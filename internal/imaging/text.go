// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"fmt"
	"image"
	"strconv"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// boldWeight is the lowest font-weight drawn with the bold face.
const boldWeight = 600

type fonts struct {
	regular *truetype.Font
	bold    *truetype.Font
}

var loadFonts = sync.OnceValues(func() (fonts, error) {
	regular, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return fonts{}, fmt.Errorf("imaging: parse regular font: %w", err)
	}
	bold, err := truetype.Parse(gobold.TTF)
	if err != nil {
		return fonts{}, fmt.Errorf("imaging: parse bold font: %w", err)
	}
	return fonts{regular: regular, bold: bold}, nil
})

type faceKey struct {
	bold bool
	size float64
}

// face returns a face for one render. Faces cache glyphs and are not safe
// for concurrent use, so each renderer keeps its own.
func (r *renderer) face(bold bool, size float64) (font.Face, error) {
	key := faceKey{bold: bold, size: size}
	if f, ok := r.faces[key]; ok {
		return f, nil
	}
	fs, err := loadFonts()
	if err != nil {
		return nil, err
	}
	ft := fs.regular
	if bold {
		ft = fs.bold
	}
	// At 72 DPI one point is one SVG user unit.
	f := truetype.NewFace(ft, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	r.faces[key] = f
	return f, nil
}

// drawText draws a single-line <text> element.
func (r *renderer) drawText(raw []byte) error {
	el, err := parseElement(raw)
	if err != nil {
		return fmt.Errorf("imaging: <text>: %w", err)
	}
	content := strings.Join(strings.Fields(el.Content), " ")
	if content == "" {
		return nil
	}
	if el.attr("text-transform") == "uppercase" {
		content = strings.ToUpper(content)
	}

	fill := el.attr("fill")
	if fill == "" {
		fill = "black"
	}
	col, ok := parseColor(fill)
	if !ok {
		col, _ = parseColor("black")
	}
	alpha := float64(col.A) / 255 * clamp01(el.float("opacity", 1)) * clamp01(el.float("fill-opacity", 1))
	col.A = uint8(alpha * 255)
	if col.A == 0 {
		return nil
	}

	face, err := r.face(isBold(el.attr("font-weight")), el.float("font-size", 16))
	if err != nil {
		return err
	}

	x := fixed.Int26_6(el.float("x", 0) * 64)
	y := fixed.Int26_6(el.float("y", 0) * 64)
	switch el.attr("text-anchor") {
	case "middle":
		x -= font.MeasureString(face, content) / 2
	case "end":
		x -= font.MeasureString(face, content)
	}

	d := &font.Drawer{
		Dst:  r.canvas,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: x, Y: y},
	}
	d.DrawString(content)
	return nil
}

func isBold(weight string) bool {
	switch weight {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= boldWeight
}
