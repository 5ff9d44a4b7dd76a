// Package render holds what the output backends share: fitting a diagram
// into a canvas, resolving styles against backend defaults, and turning
// shapes into outlines.
//
// The backends live in the svg and raster subpackages. They consume a
// diagram only through diagram.ToPrimitives and diagram.BoundingBox.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/chalkgo/chalk/internal/geom"
)

const (
	DefaultHeight  = 128
	DefaultPadding = 0.05

	// MaxCanvas bounds both canvas dimensions in pixels. An inferred width
	// is clamped to it.
	MaxCanvas = 4096
)

var (
	// ErrEmptyDiagram is returned when a diagram has no extent to frame.
	ErrEmptyDiagram = errors.New("render: diagram has no extent")
	// ErrInvalidSize is returned for canvas sizes outside 1..MaxCanvas.
	ErrInvalidSize = errors.New("render: invalid canvas size")
)

// Config collects the options shared by every backend.
type Config struct {
	Height     int
	Width      int // 0 infers the width from the diagram's aspect ratio
	Padding    float64
	Background *colorful.Color
}

type Option func(*Config)

func WithHeight(h int) Option      { return func(c *Config) { c.Height = h } }
func WithWidth(w int) Option       { return func(c *Config) { c.Width = w } }
func WithPadding(p float64) Option { return func(c *Config) { c.Padding = p } }
func WithBackground(bg colorful.Color) Option {
	return func(c *Config) { c.Background = &bg }
}

// NewConfig applies opts over the defaults.
func NewConfig(opts ...Option) Config {
	cfg := Config{Height: DefaultHeight, Padding: DefaultPadding}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Frame maps diagram coordinates onto a canvas of Width by Height pixels.
type Frame struct {
	Width  int
	Height int
	// Scale is the uniform diagram-unit to pixel factor.
	Scale float64
	// Transform maps diagram coordinates to canvas pixels.
	Transform geom.Matrix2D
}

// NewFrame fits box into the canvas described by cfg. The box is scaled
// uniformly so that it plus a Padding fraction fits the canvas, and is
// centered.
func NewFrame(box geom.BoundingBox, cfg Config) (Frame, error) {
	if box.IsEmpty() || (box.Width() == 0 && box.Height() == 0) {
		return Frame{}, ErrEmptyDiagram
	}
	if cfg.Height <= 0 || cfg.Height > MaxCanvas || cfg.Width < 0 || cfg.Width > MaxCanvas || cfg.Padding < 0 {
		return Frame{}, fmt.Errorf("%w: height %d, width %d, padding %v", ErrInvalidSize, cfg.Height, cfg.Width, cfg.Padding)
	}

	bw, bh := box.Width(), box.Height()
	height, width := cfg.Height, cfg.Width
	if width == 0 {
		inferred := float64(height)
		if bh > 0 {
			inferred = math.Round(float64(height) * bw / bh)
		}
		width = int(math.Min(math.Max(inferred, 1), MaxCanvas))
	}

	k := 1 + cfg.Padding
	scale := math.Inf(1)
	if bw > 0 {
		scale = float64(width) / (k * bw)
	}
	if bh > 0 {
		scale = math.Min(scale, float64(height)/(k*bh))
	}

	c := box.Center()
	t := geom.Translate(float64(width)/2, float64(height)/2).
		Multiply(geom.Scale(scale, scale)).
		Multiply(geom.Translate(-c.X, -c.Y))

	return Frame{Width: width, Height: height, Scale: scale, Transform: t}, nil
}
