package geom

import (
	"math"
	"slices"
)

// traceEps is the tolerance used to merge crossings that hit a shared
// vertex and to treat near-parallel rays as missing a segment.
const traceEps = 1e-9

// TraceFunc answers a ray query (origin, dir) with the ray parameters t at
// which origin + t*dir crosses a boundary. The result need not be sorted.
type TraceFunc func(origin, dir Point) []float64

// Trace is a boundary query attached to geometry. Query results are ray
// parameters in units of dir, so a unit dir yields Euclidean distances.
// The zero value is the empty trace, which reports no crossings.
type Trace struct {
	f TraceFunc
}

// EmptyTrace returns the trace with no boundary.
func EmptyTrace() Trace {
	return Trace{}
}

// NewTrace wraps a query function. A nil function yields the empty trace.
func NewTrace(f TraceFunc) Trace {
	return Trace{f: f}
}

// IsEmpty reports whether the trace has no boundary at all.
func (t Trace) IsEmpty() bool {
	return t.f == nil
}

// Query returns the crossings of the ray origin + t*dir, ascending.
func (t Trace) Query(origin, dir Point) []float64 {
	if t.f == nil {
		return nil
	}
	hits := slices.Clone(t.f(origin, dir))
	slices.Sort(hits)
	return hits
}

// Union returns a trace answering with the crossings of both traces,
// merged and sorted.
func (t Trace) Union(other Trace) Trace {
	if t.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return t
	}
	f, g := t.f, other.f
	return Trace{f: func(origin, dir Point) []float64 {
		hits := append(slices.Clone(f(origin, dir)), g(origin, dir)...)
		slices.Sort(hits)
		return hits
	}}
}

// Transform returns the trace of the geometry after applying m. The query
// ray is mapped back through m's inverse; ray parameters are preserved by
// affine maps. A singular m collapses the geometry and yields the empty
// trace.
func (t Trace) Transform(m Matrix2D) Trace {
	if t.IsEmpty() {
		return t
	}
	inv, ok := m.Invert()
	if !ok {
		return EmptyTrace()
	}
	f := t.f
	return Trace{f: func(origin, dir Point) []float64 {
		return f(inv.TransformPoint(origin), inv.TransformVector(dir))
	}}
}

// Nearest returns the smallest crossing at or ahead of the origin.
func (t Trace) Nearest(origin, dir Point) (float64, bool) {
	for _, h := range t.Query(origin, dir) {
		if h >= -traceEps {
			return math.Max(h, 0), true
		}
	}
	return 0, false
}

// Farthest returns the largest crossing along the ray, which may lie
// behind the origin.
func (t Trace) Farthest(origin, dir Point) (float64, bool) {
	hits := t.Query(origin, dir)
	if len(hits) == 0 {
		return 0, false
	}
	return hits[len(hits)-1], true
}

// Point returns the first boundary point at or ahead of the origin.
func (t Trace) Point(origin, dir Point) (Point, bool) {
	h, ok := t.Nearest(origin, dir)
	if !ok {
		return Point{}, false
	}
	return origin.Add(dir.Mul(h)), true
}

// RaySegment intersects the ray origin + t*dir with the segment [a, b].
// Rays parallel to the segment report no crossing.
func RaySegment(origin, dir, a, b Point) (float64, bool) {
	e := b.Sub(a)
	denom := dir.Cross(e)
	if math.Abs(denom) < traceEps {
		return 0, false
	}
	ap := a.Sub(origin)
	s := ap.Cross(dir) / denom
	if s < -traceEps || s > 1+traceEps {
		return 0, false
	}
	return ap.Cross(e) / denom, true
}

// RayCircle intersects the ray origin + t*dir with the circle of radius r
// centered on the origin.
func RayCircle(origin, dir Point, r float64) []float64 {
	a := dir.Dot(dir)
	if a == 0 {
		return nil
	}
	b := 2 * origin.Dot(dir)
	c := origin.Dot(origin) - r*r
	disc := b*b - 4*a*c
	switch {
	case disc < 0:
		return nil
	case disc == 0:
		return []float64{-b / (2 * a)}
	}
	sq := math.Sqrt(disc)
	return []float64{(-b - sq) / (2 * a), (-b + sq) / (2 * a)}
}

// RayPolyline intersects the ray with consecutive segments of points,
// closing the loop when closed is set. Crossings through a shared vertex
// are reported once.
func RayPolyline(origin, dir Point, points []Point, closed bool) []float64 {
	if len(points) < 2 {
		return nil
	}
	var hits []float64
	n := len(points)
	last := n - 1
	if closed {
		last = n
	}
	for i := 0; i < last; i++ {
		if h, ok := RaySegment(origin, dir, points[i], points[(i+1)%n]); ok {
			hits = append(hits, h)
		}
	}
	return dedupSorted(hits)
}

func dedupSorted(hits []float64) []float64 {
	if len(hits) < 2 {
		return hits
	}
	slices.Sort(hits)
	out := hits[:1]
	for _, h := range hits[1:] {
		if math.Abs(h-out[len(out)-1]) > traceEps {
			out = append(out, h)
		}
	}
	return out
}
