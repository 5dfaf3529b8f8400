// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package theme

import (
	"errors"
	"log/slog"
	"sort"
)

// ErrNoThemes is returned when neither the requested theme nor the default
// theme is registered.
var ErrNoThemes = errors.New("no themes available")

// Factory builds a theme around the render inputs.
type Factory func(Base) Theme

// registration pairs an id with its factory.
type registration struct {
	id      string
	factory Factory
}

// builtins is the static table of shipped themes.
var builtins = []registration{
	{DefaultID, NewGabriel},
	{"minimal", NewMinimal},
	{"dark-author", NewDarkAuthor},
	{"modern-card", NewModernCard},
	{"purple-guide", NewPurpleGuide},
	{"simple-featured", NewSimpleFeatured},
	{"split-screen", NewSplitScreen},
	{CustomID, NewCustom},
}

type entry struct {
	factory    Factory
	descriptor Descriptor
}

// Registry maps theme ids to their factories. It is built once and only
// read afterwards, so it is safe for concurrent use.
type Registry struct {
	images  Inliner
	entries map[string]entry
}

// NewRegistry registers the built-in themes followed by the custom
// definitions. Custom definitions cannot replace a built-in.
func NewRegistry(images Inliner, custom ...CustomDefinition) *Registry {
	regs := make([]registration, 0, len(builtins)+len(custom))
	regs = append(regs, builtins...)
	for _, def := range custom {
		regs = append(regs, registration{def.ID, customFactory(def)})
	}
	return newRegistry(images, regs)
}

func newRegistry(images Inliner, regs []registration) *Registry {
	r := &Registry{images: images, entries: make(map[string]entry, len(regs))}

	for _, reg := range regs {
		switch {
		case reg.id == "":
			slog.Warn("skipping theme without id")
			continue
		case reg.factory == nil:
			slog.Warn("skipping theme without factory", "theme", reg.id)
			continue
		}
		if _, dup := r.entries[reg.id]; dup {
			slog.Warn("skipping duplicate theme", "theme", reg.id)
			continue
		}

		// Descriptors come from an empty render context.
		d := reg.factory(NewBase(Settings{}, Input{}, nil)).Describe()
		d.ID = reg.id
		r.entries[reg.id] = entry{factory: reg.factory, descriptor: d}
	}
	return r
}

// Available returns the descriptor of every registered theme keyed by id.
func (r *Registry) Available() map[string]Descriptor {
	out := make(map[string]Descriptor, len(r.entries))
	for id, e := range r.entries {
		d := e.descriptor
		d.PreviewColors = append([]string(nil), d.PreviewColors...)
		out[id] = d
	}
	return out
}

// IDs returns the registered ids in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// Info returns the descriptor for id.
func (r *Registry) Info(id string) (Descriptor, bool) {
	e, ok := r.entries[id]
	return e.descriptor, ok
}

// Resolve returns id when it is registered, otherwise the default id.
func (r *Registry) Resolve(id string) string {
	if r.Exists(id) {
		return id
	}
	return DefaultID
}

// Get builds the theme registered under id. Unknown ids fall back to the
// default theme.
func (r *Registry) Get(id string, settings Settings, input Input) (Theme, error) {
	e, ok := r.entries[id]
	if !ok {
		if id != "" {
			slog.Warn("unknown theme, using default", "theme", id, "default", DefaultID)
		}
		e, ok = r.entries[DefaultID]
		if !ok {
			return nil, ErrNoThemes
		}
	}
	return e.factory(NewBase(settings, input, r.images)), nil
}
