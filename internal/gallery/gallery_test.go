package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chalkgo/chalk/internal/diagram"
	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/shape"
)

func TestEntriesBuild(t *testing.T) {
	for _, e := range Entries() {
		t.Run(e.Name, func(t *testing.T) {
			d := e.Diagram()
			require.NotNil(t, d)
			assert.False(t, diagram.BoundingBox(d).IsEmpty())
			assert.NotEmpty(t, diagram.ToPrimitives(d))
			assert.NotEmpty(t, e.Description)
		})
	}
}

func TestEntryIsBuiltOnce(t *testing.T) {
	a, ok := Lookup("shapes")
	require.True(t, ok)
	b, _ := Lookup("shapes")
	assert.Equal(t, a, b)
}

func TestNamesAndLookup(t *testing.T) {
	assert.Equal(t, []string{"hilbert", "shapes", "layout", "tree", "debug", "snug"}, Names())

	_, ok := Lookup("nope")
	assert.False(t, ok)

	var c Catalog
	assert.Equal(t, Names(), c.Names())
	_, ok = c.Lookup("tree")
	assert.True(t, ok)
	assert.Equal(t, "Order 5 Hilbert curve drawn as a single polyline", c.Describe("hilbert"))
	assert.Empty(t, c.Describe("nope"))
}

func TestHilbertVisitsEveryCell(t *testing.T) {
	for n := 1; n <= 4; n++ {
		moves := hilbertMoves(n)
		side := 1<<n - 1
		require.Len(t, moves, 1<<(2*n)-1)

		seen := map[geom.Point]bool{geom.Origin: true}
		p := geom.Origin
		for _, m := range moves {
			assert.InDelta(t, 1.0, m.Length(), 1e-12)
			p = p.Add(m)
			assert.False(t, seen[p], "order %d revisits %v", n, p)
			seen[p] = true
		}
		assert.Len(t, seen, 1<<(2*n))
		assert.Equal(t, geom.Pt(float64(side), 0), p)
	}
}

func TestHilbertDiagram(t *testing.T) {
	d := Hilbert(3)
	box := diagram.BoundingBox(d)
	assert.True(t, box.Near(geom.CenteredBox(7, 7), 1e-9))

	ps := diagram.ToPrimitives(d)
	require.Len(t, ps, 1)
	path, ok := ps[0].Shape.(shape.Path)
	require.True(t, ok)
	assert.Len(t, path.Points, 64)
	assert.False(t, path.Closed)
	assert.Equal(t, 0.05, *ps[0].Style.LineWidth)
}

func TestTreeDrawsEdgesBetweenNamedNodes(t *testing.T) {
	d := Tree()
	for _, name := range []string{"root", "a", "b", "a1", "a2", "b1"} {
		_, ok := diagram.SubdiagramBoundingBox(d, name)
		assert.True(t, ok, name)
	}
	// Six nodes of a circle and a label each, plus five edges.
	assert.Len(t, diagram.ToPrimitives(d), 17)
}

func TestLayoutNames(t *testing.T) {
	d := Layout()
	assert.Subset(t, diagram.Names(d), []string{"beside", "above", "aligned", "padded"})

	beside, ok := diagram.SubdiagramBoundingBox(d, "beside")
	require.True(t, ok)
	assert.InDelta(t, 3.0, beside.Width(), 1e-9)
	assert.InDelta(t, 2.0, beside.Height(), 1e-9)
}
