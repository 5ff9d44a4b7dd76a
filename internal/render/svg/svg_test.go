package svg

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chalkgo/chalk/internal/diagram"
	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/render"
	"github.com/chalkgo/chalk/internal/style"
)

func TestRenderDocument(t *testing.T) {
	d := diagram.Beside(
		diagram.FillColor(diagram.Circle(1), style.MustColor("red")),
		diagram.Rect(2, 1),
	)
	out, err := Render(d, render.WithHeight(100))
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 200 100" width="200" height="100">`))
	assert.Contains(t, doc, `<circle transform="matrix(1 0 0 1 0 0)" r="1" fill="#ff0000" stroke="#000000" stroke-width="0.01"/>`)
	assert.Contains(t, doc, `<rect transform="matrix(1 0 0 1 2 0)" x="-1" y="-0.5" width="2" height="1"`)

	// Painter's order: the circle comes first.
	assert.Less(t, strings.Index(doc, "<circle"), strings.Index(doc, "<rect"))
	assertWellFormed(t, out)
}

func TestRenderPathsAndStyles(t *testing.T) {
	d := diagram.Concat(
		diagram.Dashing(diagram.LineWidth(diagram.HRule(2), 0.1), []float64{0.2, 0.1}, 0.05),
		diagram.FillOpacity(diagram.RegularPolygon(3, 1), 0.5),
		diagram.LineWidth(diagram.Square(0.5), 0),
	)
	out, err := Render(d)
	require.NoError(t, err)
	doc := string(out)

	assert.Contains(t, doc, `<polyline transform="matrix(1 0 0 1 0 0)" points="-1,0 1,0" fill="none" stroke="#000000" stroke-width="0.1" stroke-dasharray="0.2 0.1" stroke-dashoffset="0.05"/>`)
	assert.Contains(t, doc, `<polygon `)
	assert.Contains(t, doc, `fill-opacity="0.5"`)
	assert.Contains(t, doc, `stroke="none"`)
	assertWellFormed(t, out)
}

func TestRenderTextIsEscaped(t *testing.T) {
	d := diagram.Atop(diagram.Rect(4, 1), diagram.Text("a < b & c", 0.5))
	out, err := Render(d)
	require.NoError(t, err)
	assert.Contains(t, string(out), "a &lt; b &amp; c</text>")
	assertWellFormed(t, out)
}

func TestRenderSkipsSpacers(t *testing.T) {
	d := diagram.Beside(diagram.Circle(1), diagram.Spacer(3, 1))
	out, err := Render(d)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(out), "transform=\"matrix(1 0 0 1"))
}

func TestRenderBackground(t *testing.T) {
	out, err := Render(diagram.Circle(1), render.WithBackground(style.MustColor("white")))
	require.NoError(t, err)
	assert.Contains(t, string(out), `<rect width="100%" height="100%" fill="#ffffff"/>`)
}

func TestRenderEmpty(t *testing.T) {
	_, err := Render(diagram.Empty{})
	assert.ErrorIs(t, err, render.ErrEmptyDiagram)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, diagram.Translate(diagram.Circle(1), geom.Pt(1, 1))))
	assert.True(t, strings.HasSuffix(buf.String(), "</svg>\n"))
}

func TestNum(t *testing.T) {
	assert.Equal(t, "0", num(-1e-12))
	assert.Equal(t, "0.333333", num(1.0/3))
	assert.Equal(t, "12", num(12))
}

func assertWellFormed(t *testing.T, doc []byte) {
	t.Helper()
	dec := xml.NewDecoder(bytes.NewReader(doc))
	for {
		_, err := dec.Token()
		if err != nil {
			assert.EqualError(t, err, "EOF")
			return
		}
	}
}
