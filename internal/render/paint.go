package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/chalkgo/chalk/internal/shape"
	"github.com/chalkgo/chalk/internal/style"
)

// Defaults applied to attributes left unset all the way to the root.
var (
	DefaultFill      = colorful.Color{R: 1, G: 1, B: 1}
	DefaultStroke    = colorful.Color{}
	DefaultLineWidth = 0.01
)

// Paint is a fully resolved style.
type Paint struct {
	Fill        colorful.Color
	FillOpacity float64
	// Filled is false for shapes without an interior and for fully
	// transparent fills.
	Filled bool

	Stroke    colorful.Color
	LineWidth float64

	Dash       []float64
	DashOffset float64
}

// Stroked reports whether the outline is drawn at all.
func (p Paint) Stroked() bool {
	return p.LineWidth > 0
}

// Resolve fills in backend defaults for the unset attributes of s. Only
// closed shapes are filled.
func Resolve(s style.Style, sh shape.Shape) Paint {
	p := Paint{
		Fill:        DefaultFill,
		FillOpacity: 1,
		Stroke:      DefaultStroke,
		LineWidth:   DefaultLineWidth,
	}
	if s.FillColor != nil {
		p.Fill = *s.FillColor
	}
	if s.FillOpacity != nil {
		p.FillOpacity = clamp01(*s.FillOpacity)
	}
	if s.LineColor != nil {
		p.Stroke = *s.LineColor
	}
	if s.LineWidth != nil {
		p.LineWidth = max(*s.LineWidth, 0)
	}
	if s.Dashing != nil && validDash(s.Dashing.Pattern) {
		p.Dash = s.Dashing.Pattern
		p.DashOffset = s.Dashing.Offset
	}
	p.Filled = Closed(sh) && p.FillOpacity > 0
	return p
}

// TextColor is the color glyphs are painted with: the fill color when one
// is set, else the line color, else black.
func TextColor(s style.Style) colorful.Color {
	switch {
	case s.FillColor != nil:
		return *s.FillColor
	case s.LineColor != nil:
		return *s.LineColor
	}
	return DefaultStroke
}

// Closed reports whether a shape has an interior to fill.
func Closed(sh shape.Shape) bool {
	switch s := sh.(type) {
	case shape.Circle, shape.Rectangle:
		return true
	case shape.Path:
		return s.Closed && len(s.Points) > 2
	}
	return false
}

func validDash(pattern []float64) bool {
	var sum float64
	for _, v := range pattern {
		if v < 0 {
			return false
		}
		sum += v
	}
	return sum > 0
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
