package render

import (
	"math"

	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/shape"
)

// Verb is a path drawing instruction, named after its SVG path letter.
type Verb byte

const (
	MoveTo Verb = 'M'
	LineTo Verb = 'L'
	CubeTo Verb = 'C'
	Close  Verb = 'Z'
)

// Segment is one path instruction: MoveTo and LineTo carry one point,
// CubeTo two control points and an end point, Close none.
type Segment struct {
	Verb   Verb
	Points []geom.Point
}

// kappa places the control points of a cubic bezier quarter circle:
// 4 * (sqrt(2) - 1) / 3.
const kappa = 0.5522847498

// Outline returns the path of a shape in its own frame. Text and spacers
// have no outline.
func Outline(sh shape.Shape) []Segment {
	switch s := sh.(type) {
	case shape.Circle:
		r, k := s.Radius, s.Radius*kappa
		return []Segment{
			{MoveTo, []geom.Point{{X: r, Y: 0}}},
			{CubeTo, []geom.Point{{X: r, Y: k}, {X: k, Y: r}, {X: 0, Y: r}}},
			{CubeTo, []geom.Point{{X: -k, Y: r}, {X: -r, Y: k}, {X: -r, Y: 0}}},
			{CubeTo, []geom.Point{{X: -r, Y: -k}, {X: -k, Y: -r}, {X: 0, Y: -r}}},
			{CubeTo, []geom.Point{{X: k, Y: -r}, {X: r, Y: -k}, {X: r, Y: 0}}},
			{Close, nil},
		}
	case shape.Rectangle:
		w, h := s.Width/2, s.Height/2
		return []Segment{
			{MoveTo, []geom.Point{{X: -w, Y: -h}}},
			{LineTo, []geom.Point{{X: w, Y: -h}}},
			{LineTo, []geom.Point{{X: w, Y: h}}},
			{LineTo, []geom.Point{{X: -w, Y: h}}},
			{Close, nil},
		}
	case shape.Path:
		if len(s.Points) == 0 {
			return nil
		}
		segs := make([]Segment, 0, len(s.Points)+1)
		segs = append(segs, Segment{MoveTo, []geom.Point{s.Points[0]}})
		for _, p := range s.Points[1:] {
			segs = append(segs, Segment{LineTo, []geom.Point{p}})
		}
		if s.Closed {
			segs = append(segs, Segment{Close, nil})
		}
		return segs
	}
	return nil
}

// TransformOutline maps every point of segs through m.
func TransformOutline(segs []Segment, m geom.Matrix2D) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		pts := make([]geom.Point, len(s.Points))
		for j, p := range s.Points {
			pts[j] = m.TransformPoint(p)
		}
		out[i] = Segment{Verb: s.Verb, Points: pts}
	}
	return out
}

// Contour is a polyline, closed back to its first point when Closed is
// set.
type Contour struct {
	Points []geom.Point
	Closed bool
}

// cubicSteps is the number of chords a cubic is flattened into.
const cubicSteps = 16

// Flatten approximates segs with polylines.
func Flatten(segs []Segment) []Contour {
	var (
		out []Contour
		cur Contour
	)
	flush := func() {
		if len(cur.Points) > 0 {
			out = append(out, cur)
		}
		cur = Contour{}
	}
	for _, s := range segs {
		switch s.Verb {
		case MoveTo:
			flush()
			cur.Points = append(cur.Points, s.Points[0])
		case LineTo:
			cur.Points = append(cur.Points, s.Points[0])
		case CubeTo:
			if len(cur.Points) == 0 {
				continue
			}
			p0 := cur.Points[len(cur.Points)-1]
			for i := 1; i <= cubicSteps; i++ {
				cur.Points = append(cur.Points, cubicAt(p0, s.Points[0], s.Points[1], s.Points[2], float64(i)/cubicSteps))
			}
		case Close:
			cur.Closed = true
			flush()
		}
	}
	flush()
	return out
}

func cubicAt(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return geom.Pt(
		a*p0.X+b*p1.X+c*p2.X+d*p3.X,
		a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
	)
}

// Dash splits a contour into the "on" pieces of a dash pattern. Pattern
// entries alternate on and off lengths; offset shifts the start into the
// pattern. An invalid pattern leaves the contour whole.
func Dash(c Contour, pattern []float64, offset float64) []Contour {
	if !validDash(pattern) || len(c.Points) < 2 {
		return []Contour{c}
	}
	if len(pattern)%2 == 1 {
		pattern = append(pattern[:len(pattern):len(pattern)], pattern...)
	}
	var period float64
	for _, v := range pattern {
		period += v
	}

	// Find where in the pattern the contour starts.
	idx := 0
	remain := pattern[0]
	if off := math.Mod(offset, period); off != 0 {
		if off < 0 {
			off += period
		}
		for off >= remain {
			off -= remain
			idx = (idx + 1) % len(pattern)
			remain = pattern[idx]
		}
		remain -= off
	}

	pts := c.Points
	if c.Closed {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}

	var (
		out []Contour
		cur []geom.Point
	)
	on := idx%2 == 0
	if on {
		cur = []geom.Point{pts[0]}
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		seg := b.Sub(a)
		length := seg.Length()
		pos := 0.0
		for length-pos > remain {
			pos += remain
			p := a.Add(seg.Mul(pos / length))
			if on {
				cur = append(cur, p)
				out = append(out, Contour{Points: cur})
				cur = nil
			} else {
				cur = []geom.Point{p}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remain = pattern[idx]
		}
		remain -= length - pos
		if on {
			cur = append(cur, b)
		}
	}
	if on && len(cur) > 1 {
		out = append(out, Contour{Points: cur})
	}
	return out
}
