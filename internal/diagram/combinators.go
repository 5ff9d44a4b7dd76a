package diagram

import "github.com/chalkgo/chalk/internal/geom"

// Cat places each diagram after the previous one along dir, leaving sep
// between consecutive boxes.
func Cat(ds []Diagram, dir geom.Point, sep float64) Diagram {
	if len(ds) == 0 {
		return Empty{}
	}
	acc := orEmpty(ds[0])
	for _, d := range ds[1:] {
		box, next := BoundingBox(acc), BoundingBox(d)
		offset := placement(box, next, dir)
		if !box.IsEmpty() && !next.IsEmpty() {
			offset = offset.Add(dir.Mul(sep))
		}
		acc = Atop(acc, Translate(d, offset))
	}
	return acc
}

// HCat lays ds out left to right.
func HCat(ds []Diagram, sep float64) Diagram {
	return Cat(ds, geom.UnitX, sep)
}

// VCat lays ds out top to bottom.
func VCat(ds []Diagram, sep float64) Diagram {
	return Cat(ds, geom.UnitY, sep)
}
