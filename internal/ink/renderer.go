package ink

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// blendOp is the per-tool compositing operation applied when a stroked
// segment lands on the raster.
type blendOp int

const (
	blendNormal blendOp = iota // source over destination
	blendMultiply
	blendDstOut // subtractive: destination alpha reduced by source coverage
)

func toolComposite(tool Tool) (blendOp, float64) {
	switch tool {
	case ToolMarker:
		return blendNormal, 0.7
	case ToolHighlighter:
		return blendMultiply, 0.25
	case ToolEraser:
		return blendDstOut, 1.0
	}
	return blendNormal, 1.0
}

// effectiveWidth applies the pressure formula and tool scaling.
// The 0.1 floor keeps a zero-pressure touch visible.
func effectiveWidth(tool Tool, size float64, p Point) float64 {
	w := size * (0.1 + p.Pressure*1.8)
	switch tool {
	case ToolPen:
		// Past 15 degrees of tilt the nib widens like a calligraphy pen.
		if math.Abs(p.TiltX) > 15 || math.Abs(p.TiltY) > 15 {
			w *= 1 + (math.Abs(p.TiltX)+math.Abs(p.TiltY))/180
		}
	case ToolMarker:
		w *= 2.5
	case ToolHighlighter:
		w = 5 * size
	case ToolEraser:
		w = 4 * size
	}
	return w
}

// Renderer paints stroked segments onto an owned raster. Segments are
// rasterized with anti-aliasing by a gg context sized to the segment's
// bounding box, then composited into the raster with the tool's blend
// operation. The raster uses straight (non-premultiplied) alpha so the
// eraser can subtract coverage directly.
type Renderer struct {
	img  *image.NRGBA
	w, h int
}

func NewRenderer(w, h int) *Renderer {
	return &Renderer{img: image.NewNRGBA(image.Rect(0, 0, w, h)), w: w, h: h}
}

// Image exposes the raster for display. The host must not retain it
// across a Resize.
func (r *Renderer) Image() *image.NRGBA { return r.img }

func (r *Renderer) Size() (int, int) { return r.w, r.h }

// Resize replaces the raster. Prior raster content is lost; the caller
// must follow up with a full replay.
func (r *Renderer) Resize(w, h int) {
	if w == r.w && h == r.h {
		return
	}
	r.w, r.h = w, h
	r.img = image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Clear resets every pixel to transparent.
func (r *Renderer) Clear() {
	pix := r.img.Pix
	for i := range pix {
		pix[i] = 0
	}
}

// DrawStrokeSegment paints the segment of a stroke ending at points[i].
// Segments run between consecutive sample midpoints with the shared
// sample as the quadratic control point, which is what smooths a
// polyline of raw input into a curve. Incremental painting and full
// replay both go through here, so the two produce identical rasters.
func (r *Renderer) DrawStrokeSegment(points []Point, i int, tool Tool, color string, size float64) {
	if i < 1 || i >= len(points) {
		return
	}
	prev, cur := points[i-1], points[i]
	start := prev
	if i >= 2 {
		start = midpoint(points[i-2], prev)
	}
	end := midpoint(prev, cur)
	r.paintQuad(start, prev, end, tool, color, effectiveWidth(tool, size, cur))
}

// Replay clears the raster and repaints the full history in paint
// order. Replaying the same history twice yields the same raster.
func (r *Renderer) Replay(paths []SerializedPath) {
	r.Clear()
	for _, p := range paths {
		for i := 1; i < len(p.Points); i++ {
			r.DrawStrokeSegment(p.Points, i, p.Tool, p.Color, p.Size)
		}
	}
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// paintQuad rasterizes one quadratic segment into a scratch context and
// composites it into the raster.
func (r *Renderer) paintQuad(start, ctrl, end Point, tool Tool, color string, width float64) {
	pad := width/2 + 2
	x0 := int(math.Floor(min3(start.X, ctrl.X, end.X) - pad))
	y0 := int(math.Floor(min3(start.Y, ctrl.Y, end.Y) - pad))
	x1 := int(math.Ceil(max3(start.X, ctrl.X, end.X) + pad))
	y1 := int(math.Ceil(max3(start.Y, ctrl.Y, end.Y) + pad))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > r.w {
		x1 = r.w
	}
	if y1 > r.h {
		y1 = r.h
	}
	if x0 >= x1 || y0 >= y1 {
		return
	}

	// Opaque white in the scratch context; its alpha channel is the
	// anti-aliased coverage mask for the segment.
	sc := gg.NewContext(x1-x0, y1-y0)
	sc.SetRGBA(1, 1, 1, 1)
	sc.SetLineCap(gg.LineCapRound)
	sc.SetLineWidth(width)
	sc.MoveTo(start.X-float64(x0), start.Y-float64(y0))
	sc.QuadraticTo(ctrl.X-float64(x0), ctrl.Y-float64(y0), end.X-float64(x0), end.Y-float64(y0))
	if err := sc.Stroke(); err != nil {
		return
	}
	mask := sc.Image()

	op, alpha := toolComposite(tool)
	cr, cg, cb := parseColor(color)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			_, _, _, ma := mask.At(x-x0, y-y0).RGBA()
			cov := float64(ma>>8) / 255 * alpha
			if cov == 0 {
				continue
			}
			r.blendPixel(x, y, cr, cg, cb, cov, op)
		}
	}
}

func (r *Renderer) blendPixel(x, y int, sr, sg, sb, sa float64, op blendOp) {
	o := r.img.PixOffset(x, y)
	pix := r.img.Pix
	dr := float64(pix[o]) / 255
	dg := float64(pix[o+1]) / 255
	db := float64(pix[o+2]) / 255
	da := float64(pix[o+3]) / 255

	switch op {
	case blendDstOut:
		pix[o+3] = to8(da * (1 - sa))
		return
	case blendMultiply:
		// Multiply against the backdrop where it is covered, plain
		// color where the raster is still transparent.
		sr = sr*(1-da) + sr*dr*da
		sg = sg*(1-da) + sg*dg*da
		sb = sb*(1-da) + sb*db*da
	}

	oa := sa + da*(1-sa)
	if oa <= 0 {
		pix[o], pix[o+1], pix[o+2], pix[o+3] = 0, 0, 0, 0
		return
	}
	pix[o] = to8((sr*sa + dr*da*(1-sa)) / oa)
	pix[o+1] = to8((sg*sa + dg*da*(1-sa)) / oa)
	pix[o+2] = to8((sb*sa + db*da*(1-sa)) / oa)
	pix[o+3] = to8(oa)
}

func to8(v float64) uint8 {
	return uint8(clamp(v, 0, 1)*255 + 0.5)
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
