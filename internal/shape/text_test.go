package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/chalkgo/chalk/internal/geom"
)

func TestNewTextMeasures(t *testing.T) {
	txt, err := NewText("Hello", 1)
	require.NoError(t, err)

	assert.Greater(t, txt.Width, 0.0)
	assert.Greater(t, txt.Ascent, 0.0)
	assert.Greater(t, txt.Descent, 0.0)

	box := txt.BoundingBox()
	assert.InDelta(t, txt.Width, box.Width(), eps)
	assert.InDelta(t, txt.Height(), box.Height(), eps)
	assert.True(t, box.Center().Near(geom.Origin, eps))
}

func TestTextScalesWithSize(t *testing.T) {
	small, err := NewText("scale me", 1)
	require.NoError(t, err)
	big, err := NewText("scale me", 3)
	require.NoError(t, err)

	assert.InDelta(t, 3*small.Width, big.Width, 1e-9)
	assert.InDelta(t, 3*small.Ascent, big.Ascent, 1e-9)
}

func TestTextLongerIsWider(t *testing.T) {
	a, err := NewText("ab", 1)
	require.NoError(t, err)
	b, err := NewText("abab", 1)
	require.NoError(t, err)
	assert.Greater(t, b.Width, a.Width)
}

func TestTextNormalizesToNFC(t *testing.T) {
	decomposed, err := NewText("e\u0301", 1)
	require.NoError(t, err)
	composed, err := NewText("\u00e9", 1)
	require.NoError(t, err)

	assert.Equal(t, composed.Content, decomposed.Content)
	assert.InDelta(t, composed.Width, decomposed.Width, 1e-9)
}

func TestEmptyTextHasLineHeight(t *testing.T) {
	txt, err := NewText("", 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, txt.Width)
	assert.Greater(t, txt.Height(), 0.0)
}

func TestTextBaseline(t *testing.T) {
	txt, err := NewText("Ag", 1)
	require.NoError(t, err)
	box := txt.BoundingBox()
	assert.InDelta(t, box.Min.Y+txt.Ascent, txt.Baseline(), eps)
	assert.InDelta(t, box.Max.Y-txt.Descent, txt.Baseline(), eps)
}

func TestSetFont(t *testing.T) {
	t.Cleanup(func() { SetFont(nil) })

	f, err := ParseFont(goregular.TTF)
	require.NoError(t, err)
	SetFont(f)
	assert.Same(t, f, CurrentFont())

	SetFont(nil)
	assert.Same(t, DefaultFont(), CurrentFont())
}

func TestParseFontRejectsGarbage(t *testing.T) {
	_, err := ParseFont([]byte("not a font"))
	assert.Error(t, err)
}
