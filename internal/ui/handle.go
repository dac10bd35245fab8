package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// expandHandle is the drag bar under the surface that grows the
// drawing area past the passage text.
type expandHandle struct {
	widget.BaseWidget
	onDrag func(dy float64)
}

var _ fyne.Widget = (*expandHandle)(nil)
var _ fyne.Draggable = (*expandHandle)(nil)

func newExpandHandle(onDrag func(dy float64)) *expandHandle {
	h := &expandHandle{onDrag: onDrag}
	h.ExtendBaseWidget(h)
	return h
}

func (h *expandHandle) Dragged(e *fyne.DragEvent) {
	if h.onDrag != nil {
		h.onDrag(float64(e.Dragged.DY))
	}
}

func (h *expandHandle) DragEnd() {}

func (h *expandHandle) CreateRenderer() fyne.WidgetRenderer {
	bar := canvas.NewRectangle(color.NRGBA{R: 160, G: 160, B: 160, A: 180})
	bar.CornerRadius = 3
	return widget.NewSimpleRenderer(bar)
}

func (h *expandHandle) MinSize() fyne.Size {
	return fyne.NewSize(60, 8)
}
