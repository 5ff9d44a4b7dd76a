package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareTrace() Trace {
	pts := []Point{Pt(-1, -1), Pt(1, -1), Pt(1, 1), Pt(-1, 1)}
	return NewTrace(func(origin, dir Point) []float64 {
		return RayPolyline(origin, dir, pts, true)
	})
}

func TestEmptyTrace(t *testing.T) {
	var zero Trace
	assert.True(t, zero.IsEmpty())
	assert.Nil(t, zero.Query(Origin, UnitX))
	_, ok := zero.Nearest(Origin, UnitX)
	assert.False(t, ok)
}

func TestRayCircle(t *testing.T) {
	hits := RayCircle(Pt(-5, 0), UnitX, 2)
	require.Len(t, hits, 2)
	assert.InDelta(t, 3.0, hits[0], eps)
	assert.InDelta(t, 7.0, hits[1], eps)

	assert.Empty(t, RayCircle(Pt(-5, 3), UnitX, 2))
	assert.Len(t, RayCircle(Pt(-5, 2), UnitX, 2), 1)
}

func TestRaySegment(t *testing.T) {
	h, ok := RaySegment(Origin, UnitX, Pt(2, -1), Pt(2, 1))
	require.True(t, ok)
	assert.InDelta(t, 2.0, h, eps)

	_, ok = RaySegment(Origin, UnitX, Pt(2, 1), Pt(2, 3))
	assert.False(t, ok)

	_, ok = RaySegment(Origin, UnitX, Pt(0, 1), Pt(5, 1))
	assert.False(t, ok, "parallel segment")
}

func TestRayPolylineVertexCountedOnce(t *testing.T) {
	// The diagonal ray passes exactly through two corners.
	hits := squareTrace().Query(Origin, Pt(1, 1))
	require.Len(t, hits, 2)
	assert.InDelta(t, -1.0, hits[0], eps)
	assert.InDelta(t, 1.0, hits[1], eps)
}

func TestTraceUnionSorted(t *testing.T) {
	circle := NewTrace(func(origin, dir Point) []float64 {
		return RayCircle(origin.Sub(Pt(5, 0)), dir, 1)
	})
	u := squareTrace().Union(circle)
	assert.Equal(t, []float64{-1, 1, 4, 6}, roundAll(u.Query(Origin, UnitX)))

	assert.Equal(t, squareTrace().Query(Origin, UnitX), squareTrace().Union(EmptyTrace()).Query(Origin, UnitX))
	assert.Equal(t, squareTrace().Query(Origin, UnitX), EmptyTrace().Union(squareTrace()).Query(Origin, UnitX))
}

func TestTraceTransform(t *testing.T) {
	tr := squareTrace().Transform(Translate(10, 0).Multiply(Scale(2, 2)))

	// The square now spans x in [8, 12].
	hits := tr.Query(Origin, UnitX)
	require.Len(t, hits, 2)
	assert.InDelta(t, 8.0, hits[0], eps)
	assert.InDelta(t, 12.0, hits[1], eps)

	rot := squareTrace().Transform(Rotate(math.Pi / 4))
	h, ok := rot.Nearest(Origin, UnitX)
	require.True(t, ok)
	assert.InDelta(t, math.Sqrt2, h, eps)

	assert.True(t, squareTrace().Transform(Scale(0, 1)).IsEmpty())
}

func TestTraceNearestFarthestPoint(t *testing.T) {
	tr := squareTrace()
	h, ok := tr.Nearest(Origin, UnitY)
	require.True(t, ok)
	assert.InDelta(t, 1.0, h, eps)

	f, ok := tr.Farthest(Pt(-3, 0), UnitX)
	require.True(t, ok)
	assert.InDelta(t, 4.0, f, eps)

	p, ok := tr.Point(Pt(-3, 0), UnitX)
	require.True(t, ok)
	assert.True(t, p.Near(Pt(-1, 0), eps))

	_, ok = tr.Nearest(Pt(3, 0), UnitX)
	assert.False(t, ok)
}

func roundAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Round(x*1e6) / 1e6
	}
	return out
}
