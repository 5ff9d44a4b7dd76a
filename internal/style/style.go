// Package style holds the inheritable paint attributes of a diagram.
//
// Every attribute is optional. A nil attribute is unset and inherits from
// the enclosing style when styles are merged during compilation; an
// attribute unset all the way to the root is left for the backend to
// default.
package style

import (
	"fmt"
	"slices"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Dash is a stroke dash pattern: alternating on/off lengths and a start
// offset into the pattern.
type Dash struct {
	Pattern []float64
	Offset  float64
}

// Style is a set of optional paint attributes.
type Style struct {
	LineWidth   *float64
	LineColor   *colorful.Color
	FillColor   *colorful.Color
	FillOpacity *float64
	Dashing     *Dash
}

// Default returns the style with every attribute unset.
func Default() Style {
	return Style{}
}

// IsZero reports whether no attribute is set.
func (s Style) IsZero() bool {
	return s.LineWidth == nil && s.LineColor == nil && s.FillColor == nil &&
		s.FillOpacity == nil && s.Dashing == nil
}

// Merge returns s layered over parent: each attribute set on s wins,
// unset attributes fall through to parent.
func (s Style) Merge(parent Style) Style {
	return Style{
		LineWidth:   pick(s.LineWidth, parent.LineWidth),
		LineColor:   pick(s.LineColor, parent.LineColor),
		FillColor:   pick(s.FillColor, parent.FillColor),
		FillOpacity: pick(s.FillOpacity, parent.FillOpacity),
		Dashing:     pick(s.Dashing, parent.Dashing),
	}
}

func pick[T any](child, parent *T) *T {
	if child != nil {
		return child
	}
	return parent
}

func WithLineWidth(w float64) Style {
	return Style{LineWidth: &w}
}

func WithLineColor(c colorful.Color) Style {
	return Style{LineColor: &c}
}

func WithFillColor(c colorful.Color) Style {
	return Style{FillColor: &c}
}

func WithFillOpacity(o float64) Style {
	return Style{FillOpacity: &o}
}

// WithDashing sets a dash pattern. The pattern slice is copied.
func WithDashing(pattern []float64, offset float64) Style {
	return Style{Dashing: &Dash{Pattern: slices.Clone(pattern), Offset: offset}}
}

// Color resolves a CSS/SVG color name ("red", "steelblue") or a hex string
// ("#f00", "#ff0000") to a color.
func Color(name string) (colorful.Color, error) {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "#") {
		c, err := colorful.Hex(name)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("parse color %q: %w", name, err)
		}
		return c, nil
	}
	rgba, ok := colornames.Map[strings.ToLower(name)]
	if !ok {
		return colorful.Color{}, fmt.Errorf("unknown color %q", name)
	}
	c, _ := colorful.MakeColor(rgba)
	return c, nil
}

// MustColor is like Color but panics on an unknown color.
func MustColor(name string) colorful.Color {
	c, err := Color(name)
	if err != nil {
		panic(err)
	}
	return c
}
