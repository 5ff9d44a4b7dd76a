package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chalkgo/chalk/internal/diagram"
	"github.com/chalkgo/chalk/internal/geom"
)

// ErrUnknownDiagram is returned when a catalog has no diagram by the
// requested name.
var ErrUnknownDiagram = errors.New("engine: unknown diagram")

// Catalog is a source of named diagrams.
type Catalog interface {
	Names() []string
	Lookup(name string) (diagram.Diagram, bool)
}

// Engine owns the current diagram and its retained scene. It answers
// render and query requests from a frontend. An Engine is not safe for
// concurrent use; each preview session and the wasm bridge own one.
type Engine struct {
	catalog Catalog

	// Current diagram
	name    string
	diagram diagram.Diagram

	// Retained scene
	scene *Scene

	// Selection state (backend owns this)
	selection []string

	// Dirty flag - scene needs rebuild
	dirty bool
}

// NewEngine creates an engine serving diagrams from catalog.
func NewEngine(catalog Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// --- Commands (frontend → backend) ---

// Load makes the named catalog diagram current.
func (e *Engine) Load(name string) error {
	d, ok := e.catalog.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDiagram, name)
	}
	e.SetDiagram(name, d)
	return nil
}

// SetDiagram makes d current under the given name. The selection is reset.
func (e *Engine) SetDiagram(name string, d diagram.Diagram) {
	e.name = name
	e.diagram = d
	e.selection = nil
	e.dirty = true
}

// SetSelection sets the selected primitive IDs or subdiagram names.
func (e *Engine) SetSelection(items []string) {
	e.selection = items
}

// --- Queries (frontend ← backend) ---

// List returns the catalog's diagram names.
func (e *Engine) List() []string {
	return e.catalog.Names()
}

// Name returns the name of the current diagram, or "" if none is loaded.
func (e *Engine) Name() string {
	return e.name
}

// Scene returns the retained scene, rebuilding it if the diagram changed.
// It is nil until a diagram is loaded.
func (e *Engine) Scene() *Scene {
	if e.diagram == nil {
		return nil
	}
	if e.dirty || e.scene == nil {
		e.scene = BuildScene(e.diagram)
		e.dirty = false
	}
	return e.scene
}

// Commands compiles the current scene to draw commands.
func (e *Engine) Commands() []DrawCommand {
	return CompileDrawCommands(e.Scene())
}

// Render returns the draw commands of the current diagram as JSON.
func (e *Engine) Render() string {
	result, _ := DrawCommandsToJSON(e.Commands())
	return result
}

// HitTest performs a hit test at the given diagram coordinates.
// Returns the object ID of the topmost hit, or empty string.
func (e *Engine) HitTest(x, y float64) string {
	return HitTest(e.Scene(), x, y)
}

// Bounds returns the box of the current diagram.
func (e *Engine) Bounds() Rect {
	sc := e.Scene()
	if sc == nil {
		return RectFromBox(geom.EmptyBox())
	}
	return RectFromBox(sc.Bounds)
}

// SubBounds returns the box of the first subdiagram named name.
func (e *Engine) SubBounds(name string) (Rect, bool) {
	box, ok := subdiagramBounds(e.Scene(), name)
	if !ok {
		return Rect{}, false
	}
	return RectFromBox(box), true
}

// GetSelectionBounds returns the bounding box of the current selection as JSON.
func (e *Engine) GetSelectionBounds() string {
	return RectToJSON(RectFromBox(GetSelectionBounds(e.Scene(), e.selection)))
}

// GetSelection returns the current selection as JSON.
func (e *Engine) GetSelection() string {
	data, _ := json.Marshal(e.selection)
	return string(data)
}

func subdiagramBounds(sc *Scene, name string) (geom.BoundingBox, bool) {
	if sc == nil {
		return geom.EmptyBox(), false
	}
	return diagram.SubdiagramBoundingBox(sc.Diagram, name)
}
