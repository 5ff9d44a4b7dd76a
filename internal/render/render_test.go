package render

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/shape"
	"github.com/chalkgo/chalk/internal/style"
)

const eps = 1e-9

func TestNewFrameInfersWidth(t *testing.T) {
	box := geom.NewBox(geom.Pt(-1, -0.5), geom.Pt(1, 0.5))
	f, err := NewFrame(box, NewConfig(WithHeight(100)))
	require.NoError(t, err)

	assert.Equal(t, 200, f.Width)
	assert.Equal(t, 100, f.Height)
	assert.InDelta(t, 100/1.05, f.Scale, eps)

	// The box center lands on the canvas center, the box fits inside.
	assert.True(t, f.Transform.TransformPoint(geom.Origin).Near(geom.Pt(100, 50), eps))
	fitted := box.Transform(f.Transform)
	assert.GreaterOrEqual(t, fitted.Min.X, 0.0)
	assert.GreaterOrEqual(t, fitted.Min.Y, 0.0)
	assert.LessOrEqual(t, fitted.Max.X, 200.0)
	assert.LessOrEqual(t, fitted.Max.Y, 100.0)
}

func TestNewFrameFixedWidth(t *testing.T) {
	box := geom.NewBox(geom.Pt(0, 0), geom.Pt(1, 1))
	f, err := NewFrame(box, NewConfig(WithHeight(100), WithWidth(50), WithPadding(0)))
	require.NoError(t, err)
	assert.Equal(t, 50, f.Width)
	assert.InDelta(t, 50.0, f.Scale, eps)
}

func TestNewFrameFlatBox(t *testing.T) {
	box := geom.NewBox(geom.Pt(-2, 0), geom.Pt(2, 0))
	f, err := NewFrame(box, NewConfig(WithHeight(64)))
	require.NoError(t, err)
	assert.Equal(t, 64, f.Width)
	assert.InDelta(t, 64/(1.05*4), f.Scale, eps)
}

func TestNewFrameClampsThinBox(t *testing.T) {
	box := geom.CenteredBox(10, 2e-7)
	f, err := NewFrame(box, NewConfig(WithHeight(MaxCanvas)))
	require.NoError(t, err)

	assert.Equal(t, MaxCanvas, f.Width)
	assert.Equal(t, MaxCanvas, f.Height)
	assert.InDelta(t, float64(MaxCanvas)/(1.05*10), f.Scale, 1e-6)

	fitted := box.Transform(f.Transform)
	assert.GreaterOrEqual(t, fitted.Min.X, 0.0)
	assert.LessOrEqual(t, fitted.Max.X, float64(MaxCanvas))
}

func TestNewFrameErrors(t *testing.T) {
	_, err := NewFrame(geom.EmptyBox(), NewConfig())
	assert.ErrorIs(t, err, ErrEmptyDiagram)

	_, err = NewFrame(geom.NewBox(geom.Origin, geom.Origin), NewConfig())
	assert.ErrorIs(t, err, ErrEmptyDiagram)

	_, err = NewFrame(geom.CenteredBox(1, 1), NewConfig(WithHeight(0)))
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewFrame(geom.CenteredBox(1, 1), NewConfig(WithHeight(MaxCanvas+1)))
	assert.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewFrame(geom.CenteredBox(1, 1), NewConfig(WithWidth(MaxCanvas+1)))
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestResolveDefaults(t *testing.T) {
	p := Resolve(style.Default(), shape.Circle{Radius: 1})
	assert.True(t, p.Filled)
	assert.Equal(t, DefaultFill, p.Fill)
	assert.Equal(t, DefaultStroke, p.Stroke)
	assert.Equal(t, DefaultLineWidth, p.LineWidth)
	assert.Nil(t, p.Dash)
}

func TestResolveOverrides(t *testing.T) {
	s := style.WithFillOpacity(0).
		Merge(style.WithLineWidth(0.5)).
		Merge(style.WithDashing([]float64{1, 1}, 0.5)).
		Merge(style.WithLineColor(style.MustColor("red")))
	p := Resolve(s, shape.Rectangle{Width: 1, Height: 1})

	assert.False(t, p.Filled, "a fully transparent fill is not painted")
	assert.Equal(t, 0.5, p.LineWidth)
	assert.Equal(t, style.MustColor("red"), p.Stroke)
	assert.Equal(t, []float64{1, 1}, p.Dash)
	assert.Equal(t, 0.5, p.DashOffset)
}

func TestResolveOpenPathIsNotFilled(t *testing.T) {
	open := shape.Path{Points: []geom.Point{{X: 0}, {X: 1}, {X: 1, Y: 1}}}
	assert.False(t, Resolve(style.Default(), open).Filled)

	open.Closed = true
	assert.True(t, Resolve(style.Default(), open).Filled)
}

func TestResolveIgnoresInvalidDash(t *testing.T) {
	p := Resolve(style.WithDashing([]float64{0, 0}, 0), shape.Circle{Radius: 1})
	assert.Nil(t, p.Dash)
}

func TestTextColor(t *testing.T) {
	assert.Equal(t, DefaultStroke, TextColor(style.Default()))
	blue := style.MustColor("blue")
	assert.Equal(t, blue, TextColor(style.WithLineColor(blue)))
	green := style.MustColor("green")
	assert.Equal(t, green, TextColor(style.WithLineColor(blue).Merge(style.WithFillColor(green))))
}

func TestOutlineRectangle(t *testing.T) {
	segs := Outline(shape.Rectangle{Width: 2, Height: 4})
	contours := Flatten(segs)
	require.Len(t, contours, 1)
	assert.True(t, contours[0].Closed)
	want := []geom.Point{{X: -1, Y: -2}, {X: 1, Y: -2}, {X: 1, Y: 2}, {X: -1, Y: 2}}
	assert.Equal(t, want, contours[0].Points)
}

func TestOutlineCircleStaysNearRadius(t *testing.T) {
	contours := Flatten(Outline(shape.Circle{Radius: 3}))
	require.Len(t, contours, 1)
	assert.Len(t, contours[0].Points, 1+4*cubicSteps)
	for _, p := range contours[0].Points {
		assert.InDelta(t, 3.0, p.Length(), 3*1e-3)
	}
}

func TestOutlineOpenPath(t *testing.T) {
	contours := Flatten(Outline(shape.Path{Points: []geom.Point{{X: 0}, {X: 1}}}))
	require.Len(t, contours, 1)
	assert.False(t, contours[0].Closed)
	assert.Nil(t, Outline(shape.Spacer{Width: 1, Height: 1}))
	assert.Nil(t, Outline(shape.Text{Content: "x"}))
}

func TestTransformOutline(t *testing.T) {
	segs := TransformOutline(Outline(shape.Rectangle{Width: 2, Height: 2}), geom.Translate(10, 0))
	assert.Equal(t, geom.Pt(9, -1), segs[0].Points[0])
}

func TestDash(t *testing.T) {
	line := Contour{Points: []geom.Point{{X: 0}, {X: 10}}}
	pieces := Dash(line, []float64{2, 1}, 0)

	var got [][2]float64
	for _, p := range pieces {
		got = append(got, [2]float64{p.Points[0].X, p.Points[len(p.Points)-1].X})
	}
	want := [][2]float64{{0, 2}, {3, 5}, {6, 8}, {9, 10}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, eps)); diff != "" {
		t.Errorf("dashes mismatch (-want +got):\n%s", diff)
	}
}

func TestDashOffsetAndCorners(t *testing.T) {
	// Offset 1 starts halfway through the first dash.
	line := Contour{Points: []geom.Point{{X: 0}, {X: 4}}}
	pieces := Dash(line, []float64{2, 2}, 1)
	require.Len(t, pieces, 2)
	assert.InDelta(t, 1.0, pieces[0].Points[1].X, eps)
	assert.InDelta(t, 3.0, pieces[1].Points[0].X, eps)

	// A dash running around a corner keeps the corner vertex.
	corner := Contour{Points: []geom.Point{{X: 0}, {X: 1}, {X: 1, Y: 1}}}
	pieces = Dash(corner, []float64{1.5, 10}, 0)
	require.Len(t, pieces, 1)
	assert.Equal(t, []geom.Point{{X: 0}, {X: 1}, {X: 1, Y: 0.5}}, pieces[0].Points)
}

func TestDashClosedContourWraps(t *testing.T) {
	square := Contour{Points: []geom.Point{{X: 0}, {X: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}}, Closed: true}
	pieces := Dash(square, []float64{100}, 0)
	require.Len(t, pieces, 1)
	assert.Len(t, pieces[0].Points, 5)
}

func TestDashInvalidPatternKeepsContour(t *testing.T) {
	line := Contour{Points: []geom.Point{{X: 0}, {X: 4}}}
	assert.Equal(t, []Contour{line}, Dash(line, nil, 0))
	assert.Equal(t, []Contour{line}, Dash(line, []float64{-1, 2}, 0))
}

func TestLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("hello", "k", 1)
	assert.Contains(t, buf.String(), "hello")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(t.Context(), slog.LevelError))
}
