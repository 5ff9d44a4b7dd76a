// Package diagram is the compositional diagram algebra.
//
// A Diagram is an immutable expression tree. Leaves are Primitives, each a
// shape with its own style and transform; inner nodes overlay two
// subtrees (Compose) or wrap one in a transform, a style or a name. The
// operators in this package never mutate their operands, they build new
// roots. ToPrimitives flattens a tree into the ordered, transform-baked
// list that backends paint.
//
// Coordinates are y-down: +X points right and +Y points down.
package diagram

import (
	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/shape"
	"github.com/chalkgo/chalk/internal/style"
)

// Diagram is one of Empty, Primitive, Compose, ApplyTransform, ApplyStyle
// or ApplyName. The set is closed; a nil Diagram behaves as Empty.
type Diagram interface {
	diagram()
}

// Empty is the zero of the algebra: no box, no trace, no primitives.
type Empty struct{}

// Primitive is a leaf: a shape carrying its own style and local transform.
// It is also the output element of ToPrimitives, with the accumulated
// transform and style baked in.
//
// The zero Transform collapses the shape to a point; build leaves with
// NewPrimitive or the shape helpers, which start from the identity.
type Primitive struct {
	Shape     shape.Shape
	Style     style.Style
	Transform geom.Matrix2D
}

// Compose overlays Right on Left at a shared origin. Box is the union of
// the children's boxes, or larger when padding was applied. It is fixed at
// construction.
type Compose struct {
	Box   geom.BoundingBox
	Left  Diagram
	Right Diagram
}

// ApplyTransform applies Transform to Child, in front of any transform
// accumulated from above.
type ApplyTransform struct {
	Transform geom.Matrix2D
	Child     Diagram
}

// ApplyStyle layers Style under Child: attributes set inside Child win.
type ApplyStyle struct {
	Style style.Style
	Child Diagram
}

// ApplyName tags Child for SubdiagramBoundingBox. It is invisible to
// geometry and style.
type ApplyName struct {
	Name  string
	Child Diagram
}

func (Empty) diagram()          {}
func (Primitive) diagram()      {}
func (Compose) diagram()        {}
func (ApplyTransform) diagram() {}
func (ApplyStyle) diagram()     {}
func (ApplyName) diagram()      {}

// NewPrimitive wraps a shape in a leaf with the identity transform and an
// unset style.
func NewPrimitive(s shape.Shape) Primitive {
	return Primitive{Shape: s, Transform: geom.Identity()}
}

// NewCompose overlays right on left, caching the union of their boxes.
func NewCompose(left, right Diagram) Compose {
	return Compose{
		Box:   BoundingBox(left).Union(BoundingBox(right)),
		Left:  left,
		Right: right,
	}
}
