package gallery

import (
	"github.com/chalkgo/chalk/internal/diagram"
	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/style"
)

// Hilbert draws the order n Hilbert curve with unit steps, centered on the
// origin.
func Hilbert(n int) diagram.Diagram {
	moves := hilbertMoves(n)
	points := make([]geom.Point, 0, len(moves)+1)
	p := geom.Origin
	points = append(points, p)
	for _, m := range moves {
		p = p.Add(m)
		points = append(points, p)
	}
	return diagram.LineWidth(diagram.CenterXY(diagram.Polyline(points...)), 0.05)
}

// hilbertMoves returns the unit steps of the order n curve. Each order
// joins four copies of the previous one, the outer two turned a quarter
// and mirrored.
func hilbertMoves(n int) []geom.Point {
	if n <= 0 {
		return nil
	}
	h := hilbertMoves(n - 1)
	turned := mapPoints(h, func(p geom.Point) geom.Point { return geom.Pt(p.Y, -p.X) })

	out := make([]geom.Point, 0, 4*len(h)+3)
	out = append(out, mapPoints(turned, func(p geom.Point) geom.Point { return geom.Pt(p.X, -p.Y) })...)
	out = append(out, geom.Pt(0, 1))
	out = append(out, h...)
	out = append(out, geom.Pt(1, 0))
	out = append(out, h...)
	out = append(out, geom.Pt(0, -1))
	out = append(out, mapPoints(turned, func(p geom.Point) geom.Point { return geom.Pt(-p.X, p.Y) })...)
	return out
}

func mapPoints(ps []geom.Point, f func(geom.Point) geom.Point) []geom.Point {
	out := make([]geom.Point, len(ps))
	for i, p := range ps {
		out[i] = f(p)
	}
	return out
}

func Shapes() diagram.Diagram {
	fill := func(d diagram.Diagram, name string) diagram.Diagram {
		return diagram.FillColor(d, style.MustColor(name))
	}
	row := diagram.HCat([]diagram.Diagram{
		fill(diagram.Circle(1), "tomato"),
		fill(diagram.Square(2), "gold"),
		fill(diagram.RegularPolygon(3, 1.2), "mediumseagreen"),
		fill(diagram.RegularPolygon(5, 1.1), "steelblue"),
		fill(diagram.RegularPolygon(6, 1), "orchid"),
		diagram.Dashing(diagram.Circle(1), []float64{0.2, 0.1}, 0),
	}, 0.5)
	return diagram.LineWidth(diagram.CenterXY(row), 0.05)
}

// Layout arranges boxes with every juxtaposition and alignment operator.
// The parts are named so their boxes can be queried.
func Layout() diagram.Diagram {
	a := diagram.FillColor(diagram.Rect(2, 1), style.MustColor("lightblue"))
	b := diagram.FillColor(diagram.Rect(1, 2), style.MustColor("pink"))

	beside := diagram.Named(diagram.Beside(a, b), "beside")
	above := diagram.Named(diagram.Above(a, b), "above")

	aligned := diagram.HCat([]diagram.Diagram{
		diagram.AlignT(diagram.Circle(0.5)),
		diagram.AlignT(diagram.Rect(1, 2)),
		diagram.AlignT(diagram.Circle(1)),
	}, 0.25)
	aligned = diagram.Named(diagram.ShowOrigin(aligned), "aligned")

	padded := diagram.Named(diagram.ShowBoundingBox(diagram.Pad(diagram.Circle(0.75), 0.5)), "padded")

	grid := diagram.VCat([]diagram.Diagram{
		diagram.HCat([]diagram.Diagram{beside, above}, 1),
		diagram.HCat([]diagram.Diagram{aligned, padded}, 1),
	}, 1)
	return diagram.LineWidth(diagram.CenterXY(grid), 0.05)
}

// Tree lays out labelled nodes, then draws the edges between them using
// the nodes' named boxes.
func Tree() diagram.Diagram {
	node := func(label string) diagram.Diagram {
		circle := diagram.FillColor(diagram.Circle(0.6), style.MustColor("lightyellow"))
		return diagram.Named(diagram.Atop(circle, diagram.Text(label, 0.5)), label)
	}
	level := func(labels ...string) diagram.Diagram {
		ds := make([]diagram.Diagram, len(labels))
		for i, l := range labels {
			ds[i] = node(l)
		}
		return diagram.CenterXY(diagram.HCat(ds, 0.8))
	}
	nodes := diagram.VCat([]diagram.Diagram{
		level("root"),
		level("a", "b"),
		level("a1", "a2", "b1"),
	}, 1)

	var edges []diagram.Diagram
	for _, e := range [][2]string{{"root", "a"}, {"root", "b"}, {"a", "a1"}, {"a", "a2"}, {"b", "b1"}} {
		from, ok1 := diagram.SubdiagramBoundingBox(nodes, e[0])
		to, ok2 := diagram.SubdiagramBoundingBox(nodes, e[1])
		if !ok1 || !ok2 {
			continue
		}
		edges = append(edges, diagram.Polyline(from.Center(), to.Center()))
	}
	return diagram.LineWidth(diagram.Atop(diagram.Concat(edges...), nodes), 0.04)
}

func Debug() diagram.Diagram {
	d := diagram.Beside(diagram.Circle(1), diagram.RotateBy(diagram.Rect(2, 1), 30))
	return diagram.ShowBoundingBox(diagram.ShowOrigin(d))
}

// Snug packs circles and polygons against each other by their traces
// rather than their boxes.
func Snug() diagram.Diagram {
	dir := geom.Pt(1, 1).Normalize()
	d := diagram.Circle(1)
	for i, r := range []float64{0.8, 0.6, 0.4} {
		next := diagram.Circle(r)
		if i%2 == 1 {
			next = diagram.RegularPolygon(6, r)
		}
		d = diagram.PlaceSnug(d, next, dir)
	}
	return diagram.LineWidth(diagram.FillColor(d, style.MustColor("wheat")), 0.03)
}
