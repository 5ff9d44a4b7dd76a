package diagram

import (
	"fmt"

	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/style"
)

// ToPrimitives flattens d into the ordered list of primitives a backend
// paints, each with its accumulated transform and merged style. Left
// subtrees come before right ones, so later primitives occlude earlier
// ones.
func ToPrimitives(d Diagram) []Primitive {
	return flatten(d, geom.Identity(), style.Default(), nil)
}

func flatten(d Diagram, t geom.Matrix2D, s style.Style, out []Primitive) []Primitive {
	switch n := d.(type) {
	case nil, Empty:
		return out
	case Primitive:
		return append(out, Primitive{
			Shape:     n.Shape,
			Style:     n.Style.Merge(s),
			Transform: t.Multiply(n.Transform),
		})
	case Compose:
		out = flatten(n.Left, t, s, out)
		return flatten(n.Right, t, s, out)
	case ApplyTransform:
		return flatten(n.Child, t.Multiply(n.Transform), s, out)
	case ApplyStyle:
		return flatten(n.Child, t, n.Style.Merge(s), out)
	case ApplyName:
		return flatten(n.Child, t, s, out)
	default:
		panic(fmt.Sprintf("diagram: unknown node %T", d))
	}
}

// BoundingBox returns the box of d in its own frame.
func BoundingBox(d Diagram) geom.BoundingBox {
	return BoundingBoxAt(d, geom.Identity())
}

// BoundingBoxAt returns the box of d under the accumulated transform t.
//
// A Compose answers from its cached box when t keeps the axes aligned,
// where transforming the union equals the union of the transformed
// children. Otherwise it recurses into its children so the result stays
// the union of the transformed leaf boxes; padding nodes, whose box is
// not implied by any child, always answer from the cache.
func BoundingBoxAt(d Diagram, t geom.Matrix2D) geom.BoundingBox {
	switch n := d.(type) {
	case nil, Empty:
		return geom.EmptyBox()
	case Primitive:
		if n.Shape == nil {
			return geom.EmptyBox()
		}
		return n.Shape.BoundingBox().Transform(t.Multiply(n.Transform))
	case Compose:
		if isPadding(n) || axisAligned(t) {
			return n.Box.Transform(t)
		}
		return BoundingBoxAt(n.Left, t).Union(BoundingBoxAt(n.Right, t))
	case ApplyTransform:
		return BoundingBoxAt(n.Child, t.Multiply(n.Transform))
	case ApplyStyle:
		return BoundingBoxAt(n.Child, t)
	case ApplyName:
		return BoundingBoxAt(n.Child, t)
	default:
		panic(fmt.Sprintf("diagram: unknown node %T", d))
	}
}

func isPadding(c Compose) bool {
	switch c.Right.(type) {
	case nil, Empty:
		return true
	}
	return false
}

// axisAligned reports whether t maps axis-aligned boxes to axis-aligned
// boxes: a scale, possibly swapped by a quarter turn, plus a translation.
func axisAligned(t geom.Matrix2D) bool {
	return (t[1] == 0 && t[2] == 0) || (t[0] == 0 && t[3] == 0)
}

// Trace returns the boundary trace of d in its own frame.
func Trace(d Diagram) geom.Trace {
	return TraceAt(d, geom.Identity())
}

// TraceAt returns the boundary trace of d under the accumulated transform
// t.
func TraceAt(d Diagram, t geom.Matrix2D) geom.Trace {
	switch n := d.(type) {
	case nil, Empty:
		return geom.EmptyTrace()
	case Primitive:
		if n.Shape == nil {
			return geom.EmptyTrace()
		}
		return n.Shape.Trace().Transform(t.Multiply(n.Transform))
	case Compose:
		return TraceAt(n.Left, t).Union(TraceAt(n.Right, t))
	case ApplyTransform:
		return TraceAt(n.Child, t.Multiply(n.Transform))
	case ApplyStyle:
		return TraceAt(n.Child, t)
	case ApplyName:
		return TraceAt(n.Child, t)
	default:
		panic(fmt.Sprintf("diagram: unknown node %T", d))
	}
}

// SubdiagramBoundingBox returns the box, in d's frame, of the first
// subdiagram named name. The search is pre-order and left-biased: an
// outer name shadows the same name further in, and a left operand of a
// Compose is searched before the right one. ok is false when no node
// carries the name.
func SubdiagramBoundingBox(d Diagram, name string) (box geom.BoundingBox, ok bool) {
	return SubdiagramBoundingBoxAt(d, name, geom.Identity())
}

// SubdiagramBoundingBoxAt is SubdiagramBoundingBox under the accumulated
// transform t.
func SubdiagramBoundingBoxAt(d Diagram, name string, t geom.Matrix2D) (geom.BoundingBox, bool) {
	switch n := d.(type) {
	case nil, Empty, Primitive:
		return geom.EmptyBox(), false
	case Compose:
		if b, ok := SubdiagramBoundingBoxAt(n.Left, name, t); ok {
			return b, true
		}
		return SubdiagramBoundingBoxAt(n.Right, name, t)
	case ApplyTransform:
		return SubdiagramBoundingBoxAt(n.Child, name, t.Multiply(n.Transform))
	case ApplyStyle:
		return SubdiagramBoundingBoxAt(n.Child, name, t)
	case ApplyName:
		if n.Name == name {
			return BoundingBoxAt(n.Child, t), true
		}
		return SubdiagramBoundingBoxAt(n.Child, name, t)
	default:
		panic(fmt.Sprintf("diagram: unknown node %T", d))
	}
}

// Names returns every name in d, in the order SubdiagramBoundingBox
// searches them. Duplicates are reported once.
func Names(d Diagram) []string {
	seen := make(map[string]bool)
	var out []string
	var walk func(Diagram)
	walk = func(d Diagram) {
		switch n := d.(type) {
		case nil, Empty, Primitive:
		case Compose:
			walk(n.Left)
			walk(n.Right)
		case ApplyTransform:
			walk(n.Child)
		case ApplyStyle:
			walk(n.Child)
		case ApplyName:
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
			walk(n.Child)
		default:
			panic(fmt.Sprintf("diagram: unknown node %T", d))
		}
	}
	walk(d)
	return out
}
