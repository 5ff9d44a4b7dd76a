package diagram

import (
	"fmt"
	"math"

	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/shape"
)

// The helpers below build single-primitive diagrams. They panic with an
// error wrapping shape.ErrMalformedShape on invalid input; use the shape
// package constructors with NewPrimitive to handle the error instead.

func must(s shape.Shape, err error) Diagram {
	if err != nil {
		panic(err)
	}
	return NewPrimitive(s)
}

// Circle is a circle of radius r centered on the origin.
func Circle(r float64) Diagram {
	return must(shape.NewCircle(r))
}

// Rect is a w by h rectangle centered on the origin.
func Rect(w, h float64) Diagram {
	return must(shape.NewRectangle(w, h))
}

// Square is a side by side square centered on the origin.
func Square(side float64) Diagram {
	return Rect(side, side)
}

// Polyline is an open path through points.
func Polyline(points ...geom.Point) Diagram {
	return must(shape.NewPath(points, false))
}

// Polygon is a closed path through points.
func Polygon(points ...geom.Point) Diagram {
	return must(shape.NewPath(points, true))
}

// HRule is a horizontal segment of the given length centered on the
// origin.
func HRule(length float64) Diagram {
	return Polyline(geom.Pt(-length/2, 0), geom.Pt(length/2, 0))
}

// VRule is a vertical segment of the given length centered on the origin.
func VRule(length float64) Diagram {
	return Polyline(geom.Pt(0, -length/2), geom.Pt(0, length/2))
}

// RegularPolygon is a polygon with sides vertices on a circle of radius r,
// the first vertex straight up.
func RegularPolygon(sides int, r float64) Diagram {
	if sides < 3 {
		panic(fmt.Errorf("%w: regular polygon needs at least 3 sides, got %d", shape.ErrMalformedShape, sides))
	}
	points := make([]geom.Point, sides)
	for i := range points {
		theta := -math.Pi/2 + 2*math.Pi*float64(i)/float64(sides)
		sin, cos := math.Sincos(theta)
		points[i] = geom.Pt(r*cos, r*sin)
	}
	return Polygon(points...)
}

// Text is a line of text centered on the origin, measured with the
// current font at the given em size.
func Text(content string, size float64) Diagram {
	return must(shape.NewText(content, size))
}

// Spacer takes up a w by h box centered on the origin and draws nothing.
func Spacer(w, h float64) Diagram {
	return must(shape.NewSpacer(w, h))
}
