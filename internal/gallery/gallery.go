// Package gallery holds the built-in example diagrams served by the
// server, the CLI and the wasm bridge.
package gallery

import (
	"slices"
	"sync"

	"github.com/chalkgo/chalk/internal/diagram"
)

// Entry is a named example. Its diagram is built on first use and shared
// afterwards; diagrams are immutable so sharing needs no locking.
type Entry struct {
	Name        string
	Description string

	build func() diagram.Diagram
	once  sync.Once
	d     diagram.Diagram
}

// Diagram returns the entry's diagram, building it on first call.
func (e *Entry) Diagram() diagram.Diagram {
	e.once.Do(func() { e.d = e.build() })
	return e.d
}

var entries = []*Entry{
	{Name: "hilbert", Description: "Order 5 Hilbert curve drawn as a single polyline", build: func() diagram.Diagram { return Hilbert(5) }},
	{Name: "shapes", Description: "The basic shapes side by side", build: Shapes},
	{Name: "layout", Description: "Juxtaposition, alignment and padding", build: Layout},
	{Name: "tree", Description: "A labelled tree whose edges are found by name", build: Tree},
	{Name: "debug", Description: "Origin and bounding box markers", build: Debug},
	{Name: "snug", Description: "Shapes packed along their boundaries", build: Snug},
}

// Entries returns every entry in display order.
func Entries() []*Entry {
	return slices.Clone(entries)
}

// Names returns the entry names in display order.
func Names() []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the diagram of the named entry.
func Lookup(name string) (diagram.Diagram, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e.Diagram(), true
		}
	}
	return nil, false
}

// Catalog exposes the gallery to consumers that take a catalog value.
type Catalog struct{}

func (Catalog) Names() []string                            { return Names() }
func (Catalog) Lookup(name string) (diagram.Diagram, bool) { return Lookup(name) }

// Describe returns the description of the named entry, or "".
func (Catalog) Describe(name string) string {
	for _, e := range entries {
		if e.Name == name {
			return e.Description
		}
	}
	return ""
}
