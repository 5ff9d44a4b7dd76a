package geom

import "math"

// BoundingBox is an axis-aligned box given by its min and max corners.
// The zero value is the empty box, which is the identity for Union.
type BoundingBox struct {
	Min Point
	Max Point

	nonEmpty bool
}

// EmptyBox returns the empty bounding box.
func EmptyBox() BoundingBox {
	return BoundingBox{}
}

// NewBox returns the smallest box containing both points.
func NewBox(p, q Point) BoundingBox {
	return BoundingBox{
		Min:      Point{X: math.Min(p.X, q.X), Y: math.Min(p.Y, q.Y)},
		Max:      Point{X: math.Max(p.X, q.X), Y: math.Max(p.Y, q.Y)},
		nonEmpty: true,
	}
}

// BoxFromPoints returns the smallest box containing every point, or the
// empty box when no points are given.
func BoxFromPoints(points ...Point) BoundingBox {
	box := EmptyBox()
	for _, p := range points {
		box = box.Enclose(p)
	}
	return box
}

// CenteredBox returns a box of the given size centered on the origin.
func CenteredBox(width, height float64) BoundingBox {
	return NewBox(Pt(-width/2, -height/2), Pt(width/2, height/2))
}

// IsEmpty reports whether the box is the empty box.
func (b BoundingBox) IsEmpty() bool {
	return !b.nonEmpty
}

// Width returns the horizontal extent, zero for the empty box.
func (b BoundingBox) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.X - b.Min.X
}

// Height returns the vertical extent, zero for the empty box.
func (b BoundingBox) Height() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.Max.Y - b.Min.Y
}

// Center returns the center point of the box. The empty box is centered on
// the origin.
func (b BoundingBox) Center() Point {
	if b.IsEmpty() {
		return Origin
	}
	return Point{X: (b.Min.X + b.Max.X) / 2, Y: (b.Min.Y + b.Max.Y) / 2}
}

// Corners returns the four corners: top-left, top-right, bottom-right,
// bottom-left (y-down). The empty box has no corners.
func (b BoundingBox) Corners() []Point {
	if b.IsEmpty() {
		return nil
	}
	return []Point{
		{X: b.Min.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Min.Y},
		{X: b.Max.X, Y: b.Max.Y},
		{X: b.Min.X, Y: b.Max.Y},
	}
}

// Contains checks if a point is inside the box (edges included).
func (b BoundingBox) Contains(p Point) bool {
	if b.IsEmpty() {
		return false
	}
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

// Enclose returns the smallest box containing b and p.
func (b BoundingBox) Enclose(p Point) BoundingBox {
	if b.IsEmpty() {
		return NewBox(p, p)
	}
	return BoundingBox{
		Min:      Point{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y)},
		Max:      Point{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y)},
		nonEmpty: true,
	}
}

// Union returns the smallest box containing both boxes.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}

	return BoundingBox{
		Min:      Point{X: math.Min(b.Min.X, other.Min.X), Y: math.Min(b.Min.Y, other.Min.Y)},
		Max:      Point{X: math.Max(b.Max.X, other.Max.X), Y: math.Max(b.Max.Y, other.Max.Y)},
		nonEmpty: true,
	}
}

// Transform returns the axis-aligned box enclosing the four transformed
// corners. The empty box stays empty.
func (b BoundingBox) Transform(m Matrix2D) BoundingBox {
	if b.IsEmpty() {
		return b
	}

	out := EmptyBox()
	for _, c := range b.Corners() {
		out = out.Enclose(m.TransformPoint(c))
	}
	return out
}

// Pad grows the box outward by the given amounts on each side. Padding the
// empty box pads the degenerate box at the origin.
func (b BoundingBox) Pad(left, top, right, bottom float64) BoundingBox {
	if b.IsEmpty() {
		b = NewBox(Origin, Origin)
	}
	return NewBox(
		Pt(b.Min.X-left, b.Min.Y-top),
		Pt(b.Max.X+right, b.Max.Y+bottom),
	)
}

// Near reports whether two boxes agree within eps. Two empty boxes are near.
func (b BoundingBox) Near(other BoundingBox, eps float64) bool {
	if b.IsEmpty() || other.IsEmpty() {
		return b.IsEmpty() == other.IsEmpty()
	}
	return b.Min.Near(other.Min, eps) && b.Max.Near(other.Max, eps)
}
