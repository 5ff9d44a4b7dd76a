// Package shape defines the leaf geometry of a diagram.
//
// A shape knows its bounding box and boundary trace in its own frame,
// before any diagram transform is applied. Closed shapes are centered on
// the origin; paths live wherever their points put them.
package shape

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/chalkgo/chalk/internal/geom"
)

// ErrMalformedShape is returned when a shape is constructed with invalid
// parameters such as a negative radius.
var ErrMalformedShape = errors.New("malformed shape")

// Shape is the capability the diagram core needs from a leaf.
type Shape interface {
	// BoundingBox returns the local, untransformed bounding box.
	BoundingBox() geom.BoundingBox
	// Trace returns the local, untransformed boundary trace.
	Trace() geom.Trace
}

// Circle is a circle of the given radius centered on the origin.
type Circle struct {
	Radius float64
}

// NewCircle validates the radius.
func NewCircle(radius float64) (Circle, error) {
	if err := checkLength("radius", radius); err != nil {
		return Circle{}, err
	}
	return Circle{Radius: radius}, nil
}

func (c Circle) BoundingBox() geom.BoundingBox {
	return geom.CenteredBox(2*c.Radius, 2*c.Radius)
}

func (c Circle) Trace() geom.Trace {
	r := c.Radius
	return geom.NewTrace(func(origin, dir geom.Point) []float64 {
		return geom.RayCircle(origin, dir, r)
	})
}

// Rectangle is an axis-aligned rectangle centered on the origin.
type Rectangle struct {
	Width  float64
	Height float64
}

// NewRectangle validates the dimensions.
func NewRectangle(width, height float64) (Rectangle, error) {
	if err := checkLength("width", width); err != nil {
		return Rectangle{}, err
	}
	if err := checkLength("height", height); err != nil {
		return Rectangle{}, err
	}
	return Rectangle{Width: width, Height: height}, nil
}

func (r Rectangle) BoundingBox() geom.BoundingBox {
	return geom.CenteredBox(r.Width, r.Height)
}

func (r Rectangle) Trace() geom.Trace {
	return boxTrace(r.BoundingBox())
}

// Path is a polyline through Points, closed into a polygon when Closed is
// set.
type Path struct {
	Points []geom.Point
	Closed bool
}

// NewPath validates the points and copies them.
func NewPath(points []geom.Point, closed bool) (Path, error) {
	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			return Path{}, fmt.Errorf("%w: path point %d is not finite: %v", ErrMalformedShape, i, p)
		}
	}
	return Path{Points: slices.Clone(points), Closed: closed}, nil
}

func (p Path) BoundingBox() geom.BoundingBox {
	return geom.BoxFromPoints(p.Points...)
}

func (p Path) Trace() geom.Trace {
	if len(p.Points) < 2 {
		return geom.EmptyTrace()
	}
	points, closed := p.Points, p.Closed
	return geom.NewTrace(func(origin, dir geom.Point) []float64 {
		return geom.RayPolyline(origin, dir, points, closed)
	})
}

// Spacer occupies space without being drawn. It contributes a bounding box
// but no boundary.
type Spacer struct {
	Width  float64
	Height float64
}

// NewSpacer validates the dimensions.
func NewSpacer(width, height float64) (Spacer, error) {
	if err := checkLength("width", width); err != nil {
		return Spacer{}, err
	}
	if err := checkLength("height", height); err != nil {
		return Spacer{}, err
	}
	return Spacer{Width: width, Height: height}, nil
}

func (s Spacer) BoundingBox() geom.BoundingBox {
	return geom.CenteredBox(s.Width, s.Height)
}

func (s Spacer) Trace() geom.Trace {
	return geom.EmptyTrace()
}

// boxTrace traces the outline of an axis-aligned box.
func boxTrace(b geom.BoundingBox) geom.Trace {
	corners := b.Corners()
	if corners == nil {
		return geom.EmptyTrace()
	}
	return geom.NewTrace(func(origin, dir geom.Point) []float64 {
		return geom.RayPolyline(origin, dir, corners, true)
	})
}

func checkLength(name string, v float64) error {
	if !finite(v) || v < 0 {
		return fmt.Errorf("%w: %s must be finite and non-negative, got %v", ErrMalformedShape, name, v)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
