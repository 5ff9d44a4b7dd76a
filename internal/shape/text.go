package shape

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/chalkgo/chalk/internal/geom"
)

// measureSize is the em size text is shaped at. Shaping is linear in size,
// so metrics are scaled from here; a large reference size keeps the 26.6
// fixed-point rounding negligible for small diagram units.
const measureSize = 256

// Metrics describes a shaped line of text. Ascent and Descent are both
// positive distances from the baseline.
type Metrics struct {
	Advance float64
	Ascent  float64
	Descent float64
}

// Font is a parsed font used to measure text. It is safe for concurrent
// use.
type Font struct {
	data []byte
	font *font.Font

	// HarfbuzzShaper keeps internal buffers and is not safe for
	// concurrent use; pool one per goroutine.
	shapers sync.Pool
}

// ParseFont parses TrueType/OpenType font data.
func ParseFont(data []byte) (*Font, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Font{
		data: data,
		font: face.Font,
		shapers: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}, nil
}

// Data returns the raw font bytes, for backends that rasterize glyphs.
func (f *Font) Data() []byte {
	return f.data
}

// Measure shapes a single line of text at the given em size.
func (f *Font) Measure(text string, size float64) Metrics {
	runes := []rune(text)
	empty := len(runes) == 0
	if empty {
		// Still shape something to get the line bounds.
		runes = []rune{' '}
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(f.font),
		Size:      fixed.I(measureSize),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	sh := f.shapers.Get().(*shaping.HarfbuzzShaper)
	out := sh.Shape(input)
	f.shapers.Put(sh)

	k := size / measureSize
	m := Metrics{
		Advance: fixedToFloat(out.Advance) * k,
		Ascent:  fixedToFloat(out.LineBounds.Ascent) * k,
		Descent: -fixedToFloat(out.LineBounds.Descent) * k,
	}
	if empty {
		m.Advance = 0
	}
	return m
}

var (
	defaultFontOnce sync.Once
	defaultFont     *Font
	currentFont     atomic.Pointer[Font]
)

// DefaultFont returns the Go Regular font bundled with x/image.
func DefaultFont() *Font {
	defaultFontOnce.Do(func() {
		f, err := ParseFont(goregular.TTF)
		if err != nil {
			panic(fmt.Sprintf("shape: bundled font: %v", err))
		}
		defaultFont = f
	})
	return defaultFont
}

// SetFont replaces the font used by NewText. Pass nil to restore the
// default font. Texts already constructed keep their measured extents.
func SetFont(f *Font) {
	currentFont.Store(f)
}

// CurrentFont returns the font used by NewText.
func CurrentFont() *Font {
	if f := currentFont.Load(); f != nil {
		return f
	}
	return DefaultFont()
}

// Text is a single line of text centered on the origin. Its extents are
// measured once, at construction.
type Text struct {
	Content  string
	FontSize float64

	Width   float64
	Ascent  float64
	Descent float64
}

// NewText normalizes content to NFC and measures it with the current
// font at the given em size.
func NewText(content string, size float64) (Text, error) {
	if !finite(size) || size <= 0 {
		return Text{}, fmt.Errorf("%w: font size must be finite and positive, got %v", ErrMalformedShape, size)
	}
	content = norm.NFC.String(content)
	m := CurrentFont().Measure(content, size)
	return Text{
		Content:  content,
		FontSize: size,
		Width:    m.Advance,
		Ascent:   m.Ascent,
		Descent:  m.Descent,
	}, nil
}

// Height is the line height, ascent plus descent.
func (t Text) Height() float64 {
	return t.Ascent + t.Descent
}

// Baseline is the y coordinate of the baseline in the text's frame
// (y-down, box centered on the origin).
func (t Text) Baseline() float64 {
	return -t.Height()/2 + t.Ascent
}

func (t Text) BoundingBox() geom.BoundingBox {
	return geom.CenteredBox(t.Width, t.Height())
}

// Trace traces the text's bounding box.
func (t Text) Trace() geom.Trace {
	return boxTrace(t.BoundingBox())
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
