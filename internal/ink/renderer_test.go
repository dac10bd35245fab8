package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveWidthPressureFloor(t *testing.T) {
	// Zero pressure must not make a pen stroke vanish.
	w := effectiveWidth(ToolPen, 10, Point{Pressure: 0})
	assert.InDelta(t, 1.0, w, 1e-9)
}

func TestEffectiveWidthPressureScale(t *testing.T) {
	w := effectiveWidth(ToolPen, 10, Point{Pressure: 1})
	assert.InDelta(t, 19.0, w, 1e-9)
}

func TestEffectiveWidthTiltNib(t *testing.T) {
	base := effectiveWidth(ToolPen, 10, Point{Pressure: 0.5})
	assert.InDelta(t, 10.0, base, 1e-9)

	tilted := effectiveWidth(ToolPen, 10, Point{Pressure: 0.5, TiltX: 20, TiltY: 10})
	assert.InDelta(t, 10.0*(1+30.0/180), tilted, 1e-9)

	// Below the 15 degree threshold on both axes tilt is ignored.
	flat := effectiveWidth(ToolPen, 10, Point{Pressure: 0.5, TiltX: 14, TiltY: 14})
	assert.InDelta(t, 10.0, flat, 1e-9)
}

func TestEffectiveWidthPerTool(t *testing.T) {
	p := Point{Pressure: 0.5}
	assert.InDelta(t, 25.0, effectiveWidth(ToolMarker, 10, p), 1e-9)
	assert.InDelta(t, 50.0, effectiveWidth(ToolHighlighter, 10, Point{Pressure: 0}), 1e-9,
		"highlighter ignores pressure")
	assert.InDelta(t, 40.0, effectiveWidth(ToolEraser, 10, p), 1e-9)
}

func TestRendererPaintsVisibleInk(t *testing.T) {
	r := NewRenderer(60, 60)
	path := SerializedPath{Tool: ToolPen, Color: "#000000", Size: 4, Points: []Point{
		{X: 10, Y: 30, Pressure: 0.5}, {X: 30, Y: 30, Pressure: 0.5}, {X: 50, Y: 30, Pressure: 0.5},
	}}
	r.Replay([]SerializedPath{path})

	assert.Positive(t, r.Image().NRGBAAt(30, 30).A, "the stroke center must be painted")
}

func TestRendererZeroPressureStillVisible(t *testing.T) {
	r := NewRenderer(60, 60)
	path := SerializedPath{Tool: ToolPen, Color: "#000000", Size: 8, Points: []Point{
		{X: 10, Y: 30, Pressure: 0}, {X: 30, Y: 30, Pressure: 0}, {X: 50, Y: 30, Pressure: 0},
	}}
	r.Replay([]SerializedPath{path})

	var covered bool
	for x := 12; x < 48; x++ {
		if r.Image().NRGBAAt(x, 30).A > 0 {
			covered = true
			break
		}
	}
	assert.True(t, covered, "a zero-pressure stroke keeps the width floor")
}

func TestRendererReplayIdempotent(t *testing.T) {
	paths := []SerializedPath{
		{Tool: ToolPen, Color: "#202020", Size: 3, Points: []Point{
			{X: 5, Y: 5, Pressure: 0.4}, {X: 40, Y: 20, Pressure: 0.7}, {X: 70, Y: 60, Pressure: 0.9},
		}},
		{Tool: ToolHighlighter, Color: "#ffee00", Size: 4, Points: []Point{
			{X: 10, Y: 15, Pressure: 0.5}, {X: 60, Y: 15, Pressure: 0.5},
		}},
		{Tool: ToolEraser, Color: "#000000", Size: 2, Points: []Point{
			{X: 30, Y: 0, Pressure: 0.5}, {X: 30, Y: 70, Pressure: 0.5},
		}},
	}

	r := NewRenderer(80, 80)
	r.Replay(paths)
	first := make([]byte, len(r.Image().Pix))
	copy(first, r.Image().Pix)

	r.Replay(paths)
	assert.Equal(t, first, r.Image().Pix, "replaying the same history twice yields the same raster")
}

func TestRendererEraserSubtracts(t *testing.T) {
	pen := SerializedPath{Tool: ToolPen, Color: "#000000", Size: 6, Points: []Point{
		{X: 5, Y: 30, Pressure: 1}, {X: 30, Y: 30, Pressure: 1}, {X: 55, Y: 30, Pressure: 1},
	}}
	eraser := SerializedPath{Tool: ToolEraser, Color: "#000000", Size: 6, Points: []Point{
		{X: 30, Y: 5, Pressure: 0.5}, {X: 30, Y: 30, Pressure: 0.5}, {X: 30, Y: 55, Pressure: 0.5},
	}}

	r := NewRenderer(60, 60)
	r.Replay([]SerializedPath{pen})
	before := r.Image().NRGBAAt(30, 30).A
	require.Positive(t, before)

	r.Replay([]SerializedPath{pen, eraser})
	after := r.Image().NRGBAAt(30, 30).A
	assert.Less(t, after, before, "eraser reduces destination alpha where it crosses")
}

func TestRendererResizeDiscardsRaster(t *testing.T) {
	r := NewRenderer(40, 40)
	r.Replay([]SerializedPath{{Tool: ToolPen, Color: "#000000", Size: 5, Points: []Point{
		{X: 5, Y: 20, Pressure: 1}, {X: 20, Y: 20, Pressure: 1}, {X: 35, Y: 20, Pressure: 1},
	}}})

	r.Resize(80, 80)
	w, h := r.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 80, h)
	assert.Zero(t, r.Image().NRGBAAt(20, 20).A, "resized raster starts blank until replayed")
}

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		r, g, b float64
	}{
		{"#ff0000", 1, 0, 0},
		{"#0f0", 0, 1, 0},
		{"rgb(0, 0, 255)", 0, 0, 1},
		{"rgba(255, 255, 255, 0.5)", 1, 1, 1},
		{"black", 0, 0, 0},
		{"not-a-color", 0, 0, 0},
	}
	for _, c := range cases {
		r, g, b := parseColor(c.in)
		assert.InDelta(t, c.r, r, 1e-2, c.in)
		assert.InDelta(t, c.g, g, 1e-2, c.in)
		assert.InDelta(t, c.b, b, 1e-2, c.in)
	}
}
