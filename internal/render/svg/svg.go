// Package svg renders diagrams as SVG markup.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/chalkgo/chalk/internal/diagram"
	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/render"
	"github.com/chalkgo/chalk/internal/shape"
)

// Render fits d into a canvas and returns the SVG document.
func Render(d diagram.Diagram, opts ...render.Option) ([]byte, error) {
	cfg := render.NewConfig(opts...)
	frame, err := render.NewFrame(diagram.BoundingBox(d), cfg)
	if err != nil {
		return nil, fmt.Errorf("svg: %w", err)
	}

	prims := diagram.ToPrimitives(d)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d">`+"\n",
		frame.Width, frame.Height, frame.Width, frame.Height)
	if cfg.Background != nil {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", cfg.Background.Hex())
	}
	fmt.Fprintf(&buf, `  <g transform="%s">`+"\n", matrix(frame.Transform))
	for _, p := range prims {
		writePrimitive(&buf, p)
	}
	buf.WriteString("  </g>\n</svg>\n")

	render.Logger().Debug("svg rendered",
		"primitives", len(prims), "width", frame.Width, "height", frame.Height, "bytes", buf.Len())
	return buf.Bytes(), nil
}

// Write renders d and writes the document to w.
func Write(w io.Writer, d diagram.Diagram, opts ...render.Option) error {
	data, err := Render(d, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writePrimitive(buf *bytes.Buffer, p diagram.Primitive) {
	t := matrix(p.Transform)
	switch s := p.Shape.(type) {
	case shape.Circle:
		fmt.Fprintf(buf, `    <circle transform="%s" r="%s" %s/>`+"\n", t, num(s.Radius), paintAttrs(p))
	case shape.Rectangle:
		fmt.Fprintf(buf, `    <rect transform="%s" x="%s" y="%s" width="%s" height="%s" %s/>`+"\n",
			t, num(-s.Width/2), num(-s.Height/2), num(s.Width), num(s.Height), paintAttrs(p))
	case shape.Path:
		if len(s.Points) == 0 {
			return
		}
		elem := "polyline"
		if s.Closed {
			elem = "polygon"
		}
		fmt.Fprintf(buf, `    <%s transform="%s" points="%s" %s/>`+"\n", elem, t, points(s.Points), paintAttrs(p))
	case shape.Text:
		fmt.Fprintf(buf, `    <text transform="%s" x="%s" y="%s" font-family="Go, sans-serif" font-size="%s" fill="%s">%s</text>`+"\n",
			t, num(-s.Width/2), num(s.Baseline()), num(s.FontSize), hex(render.TextColor(p.Style)), escape(s.Content))
	case shape.Spacer:
	default:
		render.Logger().Warn("svg: skipping unsupported shape", "type", fmt.Sprintf("%T", p.Shape))
	}
}

func paintAttrs(p diagram.Primitive) string {
	paint := render.Resolve(p.Style, p.Shape)
	var b strings.Builder
	if paint.Filled {
		fmt.Fprintf(&b, `fill="%s"`, hex(paint.Fill))
		if paint.FillOpacity < 1 {
			fmt.Fprintf(&b, ` fill-opacity="%s"`, num(paint.FillOpacity))
		}
	} else {
		b.WriteString(`fill="none"`)
	}
	if !paint.Stroked() {
		b.WriteString(` stroke="none"`)
		return b.String()
	}
	fmt.Fprintf(&b, ` stroke="%s" stroke-width="%s"`, hex(paint.Stroke), num(paint.LineWidth))
	if len(paint.Dash) > 0 {
		dash := make([]string, len(paint.Dash))
		for i, v := range paint.Dash {
			dash[i] = num(v)
		}
		fmt.Fprintf(&b, ` stroke-dasharray="%s"`, strings.Join(dash, " "))
		if paint.DashOffset != 0 {
			fmt.Fprintf(&b, ` stroke-dashoffset="%s"`, num(paint.DashOffset))
		}
	}
	return b.String()
}

func matrix(m geom.Matrix2D) string {
	return fmt.Sprintf("matrix(%s %s %s %s %s %s)", num(m[0]), num(m[1]), num(m[2]), num(m[3]), num(m[4]), num(m[5]))
}

func points(pts []geom.Point) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p.X) + "," + num(p.Y)
	}
	return strings.Join(parts, " ")
}

func hex(c colorful.Color) string {
	return c.Clamped().Hex()
}

// num formats a coordinate with at most six decimals.
func num(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
