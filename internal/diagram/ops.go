package diagram

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/style"
)

// Atop overlays b on a at the shared origin; b paints over a. An Empty
// operand is dropped.
func Atop(a, b Diagram) Diagram {
	if isEmpty(a) {
		return orEmpty(b)
	}
	if isEmpty(b) {
		return a
	}
	return NewCompose(a, b)
}

// Concat overlays ds in order, each one over the ones before it.
func Concat(ds ...Diagram) Diagram {
	var acc Diagram = Empty{}
	for _, d := range ds {
		acc = Atop(acc, d)
	}
	return acc
}

// Place translates b along dir until its box edge facing -dir touches the
// edge of a's box facing dir, then overlays it on a. dir should be a unit
// vector. If either box is empty, b is not moved.
func Place(a, b Diagram, dir geom.Point) Diagram {
	return Atop(a, Translate(b, placement(BoundingBox(a), BoundingBox(b), dir)))
}

// placement is the displacement that puts box b just past box a along
// dir.
func placement(a, b geom.BoundingBox, dir geom.Point) geom.Point {
	if a.IsEmpty() || b.IsEmpty() {
		return geom.Origin
	}
	reach := math.Inf(-1)
	for _, c := range a.Corners() {
		reach = math.Max(reach, c.Dot(dir))
	}
	back := math.Inf(1)
	for _, c := range b.Corners() {
		back = math.Min(back, c.Dot(dir))
	}
	return dir.Mul(reach - back)
}

// Beside places b to the right of a.
func Beside(a, b Diagram) Diagram {
	return Place(a, b, geom.UnitX)
}

// Above places b along +Y of a. With y pointing down, b ends up
// underneath a on the page: a reads first, top to bottom.
func Above(a, b Diagram) Diagram {
	return Place(a, b, geom.UnitY)
}

// PlaceSnug is like Place but fits b against a's boundary trace instead
// of its box: b's boundary seen from its origin against dir meets a's
// boundary seen from a's origin along dir. It falls back to Place when
// either trace misses.
func PlaceSnug(a, b Diagram, dir geom.Point) Diagram {
	dir = dir.Normalize()
	ta, okA := Trace(a).Farthest(geom.Origin, dir)
	tb, okB := Trace(b).Farthest(geom.Origin, dir.Neg())
	if !okA || !okB {
		return Place(a, b, dir)
	}
	return Atop(a, Translate(b, dir.Mul(ta+tb)))
}

// AtCenter overlays b with its origin moved to the center of a's box.
func AtCenter(a, b Diagram) Diagram {
	return Atop(a, Translate(b, BoundingBox(a).Center()))
}

// CenterXY moves d so its box is centered on the origin.
func CenterXY(d Diagram) Diagram {
	box := BoundingBox(d)
	if box.IsEmpty() {
		return d
	}
	return Translate(d, box.Center().Neg())
}

// AlignT moves d so the top of its box lies on the x axis.
func AlignT(d Diagram) Diagram {
	return alignWith(d, func(b geom.BoundingBox) geom.Point { return geom.Pt(0, -b.Min.Y) })
}

// AlignB moves d so the bottom of its box lies on the x axis.
func AlignB(d Diagram) Diagram {
	return alignWith(d, func(b geom.BoundingBox) geom.Point { return geom.Pt(0, -b.Max.Y) })
}

// AlignL moves d so the left of its box lies on the y axis.
func AlignL(d Diagram) Diagram {
	return alignWith(d, func(b geom.BoundingBox) geom.Point { return geom.Pt(-b.Min.X, 0) })
}

// AlignR moves d so the right of its box lies on the y axis.
func AlignR(d Diagram) Diagram {
	return alignWith(d, func(b geom.BoundingBox) geom.Point { return geom.Pt(-b.Max.X, 0) })
}

func AlignTL(d Diagram) Diagram { return AlignL(AlignT(d)) }
func AlignTR(d Diagram) Diagram { return AlignR(AlignT(d)) }
func AlignBL(d Diagram) Diagram { return AlignL(AlignB(d)) }
func AlignBR(d Diagram) Diagram { return AlignR(AlignB(d)) }

func alignWith(d Diagram, offset func(geom.BoundingBox) geom.Point) Diagram {
	box := BoundingBox(d)
	if box.IsEmpty() {
		return d
	}
	return Translate(d, offset(box))
}

// Pad grows d's box by extra on every side without adding geometry.
func Pad(d Diagram, extra float64) Diagram {
	return padSides(d, extra, extra, extra, extra)
}

func PadL(d Diagram, extra float64) Diagram { return padSides(d, extra, 0, 0, 0) }
func PadT(d Diagram, extra float64) Diagram { return padSides(d, 0, extra, 0, 0) }
func PadR(d Diagram, extra float64) Diagram { return padSides(d, 0, 0, extra, 0) }
func PadB(d Diagram, extra float64) Diagram { return padSides(d, 0, 0, 0, extra) }

// padSides records the enlarged box on a Compose whose right child is
// Empty. An empty d is padded as the degenerate box at the origin.
func padSides(d Diagram, left, top, right, bottom float64) Diagram {
	return Compose{
		Box:   BoundingBox(d).Pad(left, top, right, bottom),
		Left:  d,
		Right: Empty{},
	}
}

// ScaleUniformToX scales d uniformly so its box is x wide.
func ScaleUniformToX(d Diagram, x float64) (Diagram, error) {
	w := BoundingBox(d).Width()
	if w == 0 {
		return nil, fmt.Errorf("scale to width %v: %w", x, ErrDegenerateScale)
	}
	return Scale(d, x/w), nil
}

// ScaleUniformToY scales d uniformly so its box is y tall.
func ScaleUniformToY(d Diagram, y float64) (Diagram, error) {
	h := BoundingBox(d).Height()
	if h == 0 {
		return nil, fmt.Errorf("scale to height %v: %w", y, ErrDegenerateScale)
	}
	return Scale(d, y/h), nil
}

// Transform applies m to d.
func Transform(d Diagram, m geom.Matrix2D) Diagram {
	return ApplyTransform{Transform: m, Child: orEmpty(d)}
}

// Translate moves d by v.
func Translate(d Diagram, v geom.Point) Diagram {
	return Transform(d, geom.TranslateBy(v))
}

// TranslateXY moves d by (dx, dy).
func TranslateXY(d Diagram, dx, dy float64) Diagram {
	return Transform(d, geom.Translate(dx, dy))
}

// Scale scales d uniformly by k about the origin.
func Scale(d Diagram, k float64) Diagram {
	return Transform(d, geom.Scale(k, k))
}

func ScaleX(d Diagram, k float64) Diagram { return Transform(d, geom.Scale(k, 1)) }
func ScaleY(d Diagram, k float64) Diagram { return Transform(d, geom.Scale(1, k)) }

// Rotate turns d by rad radians about the origin. With y pointing down a
// positive angle turns clockwise on screen.
func Rotate(d Diagram, rad float64) Diagram {
	return Transform(d, geom.Rotate(rad))
}

// RotateBy turns d by deg degrees.
func RotateBy(d Diagram, deg float64) Diagram {
	return Transform(d, geom.RotateDegrees(deg))
}

// ReflectX mirrors d across the y axis.
func ReflectX(d Diagram) Diagram { return Transform(d, geom.ReflectX()) }

// ReflectY mirrors d across the x axis.
func ReflectY(d Diagram) Diagram { return Transform(d, geom.ReflectY()) }

// WithStyle layers s under d's own styles.
func WithStyle(d Diagram, s style.Style) Diagram {
	return ApplyStyle{Style: s, Child: orEmpty(d)}
}

func LineWidth(d Diagram, w float64) Diagram {
	return WithStyle(d, style.WithLineWidth(w))
}

func LineColor(d Diagram, c colorful.Color) Diagram {
	return WithStyle(d, style.WithLineColor(c))
}

func FillColor(d Diagram, c colorful.Color) Diagram {
	return WithStyle(d, style.WithFillColor(c))
}

func FillOpacity(d Diagram, o float64) Diagram {
	return WithStyle(d, style.WithFillOpacity(o))
}

func Dashing(d Diagram, pattern []float64, offset float64) Diagram {
	return WithStyle(d, style.WithDashing(pattern, offset))
}

// Named tags d with name for SubdiagramBoundingBox.
func Named(d Diagram, name string) Diagram {
	return ApplyName{Name: name, Child: orEmpty(d)}
}

// ShowOrigin overlays a small red dot at d's origin.
func ShowOrigin(d Diagram) Diagram {
	box := BoundingBox(d)
	r := math.Min(box.Width(), box.Height()) / 50
	if r == 0 {
		r = 0.02
	}
	dot := LineWidth(FillColor(Circle(r), style.MustColor("red")), 0)
	return Atop(d, dot)
}

// ShowBoundingBox overlays the outline of d's box in red.
func ShowBoundingBox(d Diagram) Diagram {
	box := BoundingBox(d)
	if box.IsEmpty() {
		return d
	}
	outline := Rect(box.Width(), box.Height())
	outline = LineColor(FillOpacity(outline, 0), style.MustColor("red"))
	return Atop(d, Translate(outline, box.Center()))
}

func isEmpty(d Diagram) bool {
	switch d.(type) {
	case nil, Empty:
		return true
	}
	return false
}

func orEmpty(d Diagram) Diagram {
	if d == nil {
		return Empty{}
	}
	return d
}
