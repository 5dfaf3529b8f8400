// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package imaging

import (
	"encoding/xml"
	"fmt"
	"image/color"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// oksvg would draw the contents of these as ordinary shapes.
	clipBlock   = regexp.MustCompile(`(?s)<clipPath\b.*?</clipPath>`)
	filterBlock = regexp.MustCompile(`(?s)<filter\b.*?</filter>`)

	styleAttr     = regexp.MustCompile(`style="([^"]*)"`)
	stopColorAttr = regexp.MustCompile(`stop-color="(rgba?\([^)]*\))"`)
)

// normalizeDefs prepares a <defs> block for oksvg: clip paths and filters
// are removed and rgba gradient stops become hex colors with an opacity.
func normalizeDefs(raw []byte) []byte {
	out := clipBlock.ReplaceAll(raw, nil)
	out = filterBlock.ReplaceAll(out, nil)
	out = styleAttr.ReplaceAllFunc(out, func(m []byte) []byte {
		style := styleAttr.FindSubmatch(m)[1]
		return []byte(`style="` + normalizeStopStyle(string(style)) + `"`)
	})
	out = stopColorAttr.ReplaceAllFunc(out, func(m []byte) []byte {
		hex, alpha, _ := splitAlpha(string(stopColorAttr.FindSubmatch(m)[1]))
		return []byte(`stop-color="` + hex + `" stop-opacity="` + formatFloat(alpha) + `"`)
	})
	return out
}

// normalizeStopStyle folds an rgba stop-color into stop-opacity.
func normalizeStopStyle(style string) string {
	var keys []string
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if _, seen := props[k]; !seen {
			keys = append(keys, k)
		}
		props[k] = v
	}

	hex, alpha, ok := splitAlpha(props["stop-color"])
	if !ok {
		return style
	}
	props["stop-color"] = hex
	if _, has := props["stop-opacity"]; !has {
		keys = append(keys, "stop-opacity")
	}
	props["stop-opacity"] = formatFloat(alpha * parseFloat(props["stop-opacity"], 1))

	decls := make([]string, len(keys))
	for i, k := range keys {
		decls[i] = k + ":" + props[k]
	}
	return strings.Join(decls, ";")
}

// normalizeShape rewrites a shape element into the attribute set oksvg
// understands. Element opacity and rgba alpha become fill-opacity and
// stroke-opacity; clip paths, filters and inline styles are dropped.
func normalizeShape(raw []byte) (string, error) {
	el, err := parseElement(raw)
	if err != nil {
		return "", err
	}

	opacity, fillAlpha, strokeAlpha := 1.0, 1.0, 1.0
	var attrs []xml.Attr
	for _, a := range el.Attrs {
		switch a.Name.Local {
		case "opacity":
			opacity = parseFloat(a.Value, 1)
		case "fill-opacity":
			fillAlpha *= parseFloat(a.Value, 1)
		case "stroke-opacity":
			strokeAlpha *= parseFloat(a.Value, 1)
		case "fill", "stroke":
			if hex, alpha, ok := splitAlpha(a.Value); ok {
				a.Value = hex
				if a.Name.Local == "fill" {
					fillAlpha *= alpha
				} else {
					strokeAlpha *= alpha
				}
			}
			attrs = append(attrs, a)
		case "clip-path", "filter", "style", "xmlns":
		default:
			if a.Name.Space == "xmlns" {
				continue
			}
			attrs = append(attrs, a)
		}
	}

	var sb strings.Builder
	sb.WriteString("<" + el.XMLName.Local)
	for _, a := range attrs {
		sb.WriteString(" " + a.Name.Local + `="`)
		xml.EscapeText(&sb, []byte(a.Value))
		sb.WriteString(`"`)
	}
	fmt.Fprintf(&sb, ` fill-opacity="%s" stroke-opacity="%s"/>`+"\n", formatFloat(fillAlpha*opacity), formatFloat(strokeAlpha*opacity))
	return sb.String(), nil
}

// splitAlpha converts rgb() and rgba() colors into hex and an alpha. ok is
// false for any other value, which is returned unchanged.
func splitAlpha(v string) (hex string, alpha float64, ok bool) {
	v = strings.TrimSpace(v)
	if !strings.HasPrefix(v, "rgb") {
		return v, 1, false
	}
	c, ok := parseColor(v)
	if !ok {
		return v, 1, false
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B), float64(c.A) / 255, true
}

// parseColor understands hex, rgb(), rgba() and a few keywords.
func parseColor(v string) (color.NRGBA, bool) {
	v = strings.ToLower(strings.TrimSpace(v))
	switch v {
	case "none", "transparent":
		return color.NRGBA{}, true
	case "white":
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}, true
	case "black":
		return color.NRGBA{A: 255}, true
	}

	if strings.HasPrefix(v, "#") {
		h := v[1:]
		if len(h) == 3 {
			h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		}
		if len(h) != 6 {
			return color.NRGBA{}, false
		}
		n, err := strconv.ParseUint(h, 16, 32)
		if err != nil {
			return color.NRGBA{}, false
		}
		return color.NRGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 255}, true
	}

	open, end := strings.IndexByte(v, '('), strings.LastIndexByte(v, ')')
	if open < 0 || end < open || !strings.HasPrefix(v, "rgb") {
		return color.NRGBA{}, false
	}
	parts := strings.Split(v[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.NRGBA{}, false
	}
	var ch [3]uint8
	for i := range ch {
		n, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		ch[i] = uint8(math.Max(0, math.Min(255, math.Round(n))))
	}
	alpha := 1.0
	if len(parts) == 4 {
		alpha = clamp01(parseFloat(parts[3], 1))
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: uint8(math.Round(alpha * 255))}, true
}

func parseFloat(v string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return f
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(math.Round(clamp01(f)*1e4)/1e4, 'f', -1, 64)
}
