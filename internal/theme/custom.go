// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"ogsvg/internal/markup"
	"ogsvg/internal/slug"
)

// CustomID is the id of the built-in template theme.
const CustomID = "custom"

// CustomDefinition describes a site-specific theme that reuses the template
// layout with its own palette.
type CustomDefinition struct {
	ID            string            `yaml:"id"`
	Name          string            `yaml:"name"`
	Description   string            `yaml:"description"`
	Author        string            `yaml:"author"`
	PreviewColors []string          `yaml:"preview_colors"`
	Colors        map[string]string `yaml:"colors"`
}

// Custom is the template layout: a framed card with the avatar on the left
// and the site and page titles beside it.
type Custom struct {
	Base
	def CustomDefinition
}

// NewCustom builds the built-in template theme.
func NewCustom(b Base) Theme {
	return &Custom{Base: b}
}

// customFactory returns a factory for a theme described by def.
func customFactory(def CustomDefinition) Factory {
	return func(b Base) Theme {
		return &Custom{Base: b, def: def}
	}
}

func (c *Custom) Describe() Descriptor {
	d := Descriptor{
		Name:          "Custom",
		Description:   "Custom theme for OpenGraph images",
		Author:        "Custom",
		PreviewColors: []string{"#3b82f6", "#1e40af", "#60a5fa"},
	}
	if c.def.Name != "" {
		d.Name = c.def.Name
	}
	if c.def.Description != "" {
		d.Description = c.def.Description
	}
	if c.def.Author != "" {
		d.Author = c.def.Author
	}
	if len(c.def.PreviewColors) > 0 {
		d.PreviewColors = c.def.PreviewColors
		if len(d.PreviewColors) > 3 {
			d.PreviewColors = d.PreviewColors[:3]
		}
	}
	return d
}

func (c *Custom) DefaultColors() ColorScheme {
	colors := ColorScheme{
		SlotBackground:      "#1e40af",
		SlotGradientStart:   "#3b82f6",
		SlotGradientEnd:     "#1e40af",
		SlotTextPrimary:     "#ffffff",
		SlotTextSecondary:   "#e5e7eb",
		SlotAccent:          "#60a5fa",
		SlotAccentSecondary: "#93c5fd",
	}
	for slot, v := range c.def.Colors {
		if ValidColor(v) {
			colors[slot] = v
		}
	}
	return colors
}

func (c *Custom) Render(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	colors := c.Colors(c.DefaultColors())

	var sb strings.Builder
	sb.WriteString(Header())
	sb.WriteString(Defs(BaseDefs(colors)))
	sb.WriteString(`<rect width="1200" height="630" fill="url(#bgGradient)"/>` + "\n")
	sb.WriteString(`<rect x="60" y="60" width="1080" height="510" rx="20" fill="rgba(255,255,255,0.08)" stroke="rgba(255,255,255,0.2)" stroke-width="1"/>` + "\n")

	if c.input.AvatarURL != "" {
		fmt.Fprintf(&sb, `<circle cx="200" cy="200" r="70" fill="rgba(255,255,255,0.9)" stroke="%s" stroke-width="3"/>`+"\n", colors[SlotAccent])
		if uri, ok := c.Image(ctx, c.input.AvatarURL); ok {
			fmt.Fprintf(&sb, `<image x="135" y="135" width="130" height="130" href="%s" clip-path="url(#avatarClip)"/>`+"\n", uri)
		} else {
			sb.WriteString(personIcon(200, 200, colors[SlotAccent]))
		}
	}

	fmt.Fprintf(&sb, `<text x="320" y="160" font-family="%s" font-size="42" font-weight="700" fill="%s" filter="url(#textShadow)">`+"\n", fontSans, colors[SlotTextPrimary])
	writeText(&sb, markup.Truncate(c.input.SiteTitle, 25))

	if c.input.PageTitle != "" {
		fmt.Fprintf(&sb, `<text x="320" y="210" font-family="%s" font-size="28" font-weight="400" fill="%s">`+"\n", fontSans, colors[SlotTextSecondary])
		writeText(&sb, markup.Truncate(c.input.PageTitle, 50))
	}

	fmt.Fprintf(&sb, `<rect x="320" y="280" width="100" height="4" rx="2" fill="%s"/>`+"\n", colors[SlotAccent])
	fmt.Fprintf(&sb, `<text x="320" y="320" font-family="%s" font-size="16" font-weight="500" fill="%s" opacity="0.7">`+"\n", fontSans, colors[SlotTextSecondary])
	writeText(&sb, c.CleanDomain())

	sb.WriteString(Footer())
	return sb.String(), nil
}

// LoadCustomDefinitions reads theme definitions from a YAML file holding a
// list of entries. Entries without an id get one derived from their name.
func LoadCustomDefinitions(path string) ([]CustomDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading custom themes: %w", err)
	}
	return ParseCustomDefinitions(data)
}

// ParseCustomDefinitions decodes YAML theme definitions.
func ParseCustomDefinitions(data []byte) ([]CustomDefinition, error) {
	var defs []CustomDefinition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parsing custom themes: %w", err)
	}

	seen := make(map[string]bool, len(defs))
	for i := range defs {
		if defs[i].ID == "" {
			defs[i].ID = slug.Generate(defs[i].Name)
		}
		id := defs[i].ID
		switch {
		case id == "":
			return nil, fmt.Errorf("custom theme %d: id or name is required", i+1)
		case !slug.Valid(id):
			return nil, fmt.Errorf("custom theme %d: invalid id %q (want lower-case letters, digits and hyphens, at most %d bytes)", i+1, id, slug.MaxLength)
		case isBuiltin(id):
			return nil, fmt.Errorf("custom theme %q: id is taken by a built-in theme", id)
		case seen[id]:
			return nil, fmt.Errorf("custom theme %q: duplicate id", id)
		}
		seen[id] = true

		for slot, v := range defs[i].Colors {
			if !ValidColor(v) {
				return nil, fmt.Errorf("custom theme %q: invalid color %q for %s", defs[i].ID, v, slot)
			}
		}
	}
	return defs, nil
}

func isBuiltin(id string) bool {
	for _, reg := range builtins {
		if reg.id == id {
			return true
		}
	}
	return false
}

// ExportCatalog writes the descriptors as a YAML list ordered by id.
func ExportCatalog(w io.Writer, descriptors map[string]Descriptor) error {
	list := make([]Descriptor, 0, len(descriptors))
	for id, d := range descriptors {
		d.ID = id
		list = append(list, d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encoding theme catalog: %w", err)
	}
	return enc.Close()
}
