package engine

import (
	"fmt"

	"github.com/chalkgo/chalk/internal/diagram"
	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/render"
)

// probe is the ray direction used for inside tests. It is skewed off the
// axes so rays rarely graze polygon vertices.
var probe = geom.Pt(1, 0.318309886).Normalize()

// Scene is the compiled, render-ready state of one diagram: its primitives
// in painter's order with their world boxes. It is retained by the Engine
// between queries and rebuilt only when the diagram changes.
type Scene struct {
	Diagram diagram.Diagram
	Nodes   []SceneNode
	ByID    map[string]*SceneNode
	Bounds  geom.BoundingBox
}

// SceneNode is one flattened primitive.
type SceneNode struct {
	ID        string
	Primitive diagram.Primitive

	// Bounds is the axis-aligned box of the primitive in diagram space.
	Bounds geom.BoundingBox

	trace  geom.Trace
	closed bool
}

// BuildScene flattens d and indexes the resulting primitives.
func BuildScene(d diagram.Diagram) *Scene {
	prims := diagram.ToPrimitives(d)
	sc := &Scene{
		Diagram: d,
		Nodes:   make([]SceneNode, 0, len(prims)),
		ByID:    make(map[string]*SceneNode, len(prims)),
		Bounds:  diagram.BoundingBox(d),
	}
	for _, p := range prims {
		if p.Shape == nil {
			continue
		}
		sc.Nodes = append(sc.Nodes, SceneNode{
			ID:        fmt.Sprintf("p%d", len(sc.Nodes)),
			Primitive: p,
			Bounds:    p.Shape.BoundingBox().Transform(p.Transform),
			trace:     p.Shape.Trace().Transform(p.Transform),
			closed:    render.Closed(p.Shape),
		})
	}
	for i := range sc.Nodes {
		sc.ByID[sc.Nodes[i].ID] = &sc.Nodes[i]
	}
	return sc
}

// Contains reports whether p falls on the node. Closed shapes use an
// even-odd crossing count along their trace; open paths and text use
// their box.
func (n *SceneNode) Contains(p geom.Point) bool {
	if n.Bounds.IsEmpty() || !n.Bounds.Contains(p) {
		return false
	}
	if !n.closed {
		return true
	}
	crossings := 0
	for _, t := range n.trace.Query(p, probe) {
		if t > 0 {
			crossings++
		}
	}
	return crossings%2 == 1
}
