// Package raster renders diagrams to images with golang.org/x/image/vector.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/chalkgo/chalk/internal/diagram"
	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/render"
	"github.com/chalkgo/chalk/internal/shape"
)

// Render fits d into a canvas and paints it. The canvas is transparent
// unless a background is configured.
func Render(d diagram.Diagram, opts ...render.Option) (*image.RGBA, error) {
	cfg := render.NewConfig(opts...)
	frame, err := render.NewFrame(diagram.BoundingBox(d), cfg)
	if err != nil {
		return nil, fmt.Errorf("raster: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	if cfg.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(rgba(*cfg.Background, 1)), image.Point{}, draw.Src)
	}

	c := &canvas{dst: img, z: vector.NewRasterizer(frame.Width, frame.Height)}
	prims := diagram.ToPrimitives(d)
	for _, p := range prims {
		if err := c.paint(p, frame.Transform.Multiply(p.Transform)); err != nil {
			return nil, fmt.Errorf("raster: %w", err)
		}
	}

	render.Logger().Debug("raster rendered",
		"primitives", len(prims), "width", frame.Width, "height", frame.Height)
	return img, nil
}

// EncodePNG renders d and writes it to w as PNG.
func EncodePNG(w io.Writer, d diagram.Diagram, opts ...render.Option) error {
	img, err := Render(d, opts...)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("raster: encode png: %w", err)
	}
	return nil
}

type canvas struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

func (c *canvas) paint(p diagram.Primitive, m geom.Matrix2D) error {
	if t, ok := p.Shape.(shape.Text); ok {
		return c.text(t, render.TextColor(p.Style), m)
	}

	segs := render.Outline(p.Shape)
	if len(segs) == 0 {
		return nil
	}
	paint := render.Resolve(p.Style, p.Shape)
	contours := render.Flatten(render.TransformOutline(segs, m))

	if paint.Filled {
		c.reset()
		for _, ct := range contours {
			c.polygon(ct.Points)
		}
		c.draw(rgba(paint.Fill, paint.FillOpacity))
	}

	if paint.Stroked() {
		k := m.ScaleFactor()
		width := paint.LineWidth * k
		c.reset()
		for _, ct := range contours {
			pieces := []render.Contour{ct}
			if len(paint.Dash) > 0 {
				pieces = render.Dash(ct, scaled(paint.Dash, k), paint.DashOffset*k)
			}
			for _, piece := range pieces {
				c.stroke(piece, width)
			}
		}
		c.draw(rgba(paint.Stroke, 1))
	}
	return nil
}

func (c *canvas) reset() {
	b := c.dst.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
}

func (c *canvas) draw(col color.Color) {
	c.z.Draw(c.dst, c.dst.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *canvas) polygon(pts []geom.Point) {
	if len(pts) < 3 {
		return
	}
	c.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p.X), float32(p.Y))
	}
	c.z.ClosePath()
}

// stroke adds one quad per segment plus a joint at every vertex. Every
// quad and joint winds the same way, so overlaps accumulate instead of
// cancelling.
func (c *canvas) stroke(ct render.Contour, width float64) {
	pts := ct.Points
	if ct.Closed && len(pts) > 1 {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}
	h := width / 2
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		d := b.Sub(a)
		if d.Length() == 0 {
			continue
		}
		n := d.Normalize().Perp().Mul(h)
		c.polygon([]geom.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)})
	}
	for _, p := range pts {
		c.polygon(joint(p, h))
	}
}

// joint approximates a round join with an octagon.
func joint(p geom.Point, r float64) []geom.Point {
	out := make([]geom.Point, 8)
	for i := range out {
		sin, cos := math.Sincos(-float64(i) * math.Pi / 4)
		out[i] = geom.Pt(p.X+r*cos, p.Y+r*sin)
	}
	return out
}

// text draws a line of text upright at the transformed position. Glyphs
// follow the primitive's translation and scale but not its rotation.
func (c *canvas) text(t shape.Text, col colorful.Color, m geom.Matrix2D) error {
	size := t.FontSize * m.ScaleFactor()
	if t.Content == "" || size <= 0 {
		return nil
	}
	f, err := parsedFont(shape.CurrentFont())
	if err != nil {
		return err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return fmt.Errorf("text face: %w", err)
	}
	defer face.Close()

	dot := m.TransformPoint(geom.Pt(-t.Width/2, t.Baseline()))
	d := font.Drawer{
		Dst:  c.dst,
		Src:  image.NewUniform(rgba(col, 1)),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.Int26_6(dot.X * 64), Y: fixed.Int26_6(dot.Y * 64)},
	}
	d.DrawString(t.Content)
	return nil
}

var (
	fontsMu sync.Mutex
	fonts   = map[*shape.Font]*opentype.Font{}
)

// parsedFont caches the sfnt parse of each measuring font.
func parsedFont(f *shape.Font) (*opentype.Font, error) {
	fontsMu.Lock()
	defer fontsMu.Unlock()
	if p, ok := fonts[f]; ok {
		return p, nil
	}
	p, err := opentype.Parse(f.Data())
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	fonts[f] = p
	return p, nil
}

func scaled(pattern []float64, k float64) []float64 {
	out := make([]float64, len(pattern))
	for i, v := range pattern {
		out[i] = v * k
	}
	return out
}

func rgba(c colorful.Color, opacity float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(opacity * 255))}
}
