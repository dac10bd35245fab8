package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"StudyInk/internal/ink"
)

// SurfaceWidget displays one annotation surface's raster over the
// passage text and feeds input into the engine. Desktop mouse events
// arrive on the pointer channel; mobile touches arrive on the touch
// channel. The engine picks one per stroke.
type SurfaceWidget struct {
	widget.BaseWidget
	ctrl   *ink.Controller
	raster *canvas.Raster

	naturalHeight float32
	lastPos       fyne.Position
	touchDown     bool
}

var _ fyne.Widget = (*SurfaceWidget)(nil)
var _ fyne.Draggable = (*SurfaceWidget)(nil)
var _ desktop.Mouseable = (*SurfaceWidget)(nil)
var _ mobile.Touchable = (*SurfaceWidget)(nil)

func NewSurfaceWidget(ctrl *ink.Controller) *SurfaceWidget {
	s := &SurfaceWidget{ctrl: ctrl, naturalHeight: 300}
	s.raster = canvas.NewRaster(func(w, h int) image.Image {
		return s.ctrl.Raster().Image()
	})
	s.ExtendBaseWidget(s)
	return s
}

// SetNaturalHeight tells the surface how tall the passage beneath it
// is; the drawing area always at least covers the text.
func (s *SurfaceWidget) SetNaturalHeight(h float32) {
	s.naturalHeight = h
	s.Refresh()
}

// SetActive switches between editable ink and the faint read-only
// overlay.
func (s *SurfaceWidget) SetActive(active bool) {
	s.ctrl.SetActive(active)
	s.applyMode()
}

func (s *SurfaceWidget) applyMode() {
	if s.ctrl.Active() {
		s.raster.Translucency = 0
		s.raster.Show()
	} else {
		s.raster.Translucency = 1 - ink.PassiveAlpha
		// An empty passive surface draws nothing at all.
		if s.ctrl.HasInk() {
			s.raster.Show()
		} else {
			s.raster.Hide()
		}
	}
	s.raster.Refresh()
}

// Tick drives the engine's render scheduler once per frame.
func (s *SurfaceWidget) Tick() {
	if s.ctrl.Tick() {
		s.raster.Refresh()
	}
}

func pointerSample(p fyne.Position) ink.InputEvent {
	return ink.InputEvent{
		Channel: ink.ChannelPointer,
		Primary: ink.Sample{X: float64(p.X), Y: float64(p.Y)},
	}
}

func touchSample(p fyne.Position) ink.InputEvent {
	return ink.InputEvent{
		Channel: ink.ChannelTouch,
		// Fyne's touch event carries no device class, so every touch
		// contact is treated as stylus-class. A quick finger double-tap
		// therefore triggers the pen/eraser toggle too.
		Stylus:  true,
		Primary: ink.Sample{X: float64(p.X), Y: float64(p.Y)},
	}
}

func (s *SurfaceWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	s.lastPos = e.Position
	s.ctrl.HandleDown(pointerSample(e.Position))
}

func (s *SurfaceWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	s.ctrl.HandleUp(pointerSample(e.Position))
}

// Dragged serves both input sources: the mobile driver has no touch
// move event, so moves of a touch contact arrive here too. The event
// is tagged with the channel the contact started on, otherwise the
// stroke's channel lock would drop every move of a touch drag.
func (s *SurfaceWidget) Dragged(e *fyne.DragEvent) {
	s.lastPos = e.Position
	if s.touchDown {
		s.ctrl.HandleMove(touchSample(e.Position))
		return
	}
	s.ctrl.HandleMove(pointerSample(e.Position))
}

func (s *SurfaceWidget) DragEnd() {
	if s.touchDown {
		s.ctrl.HandleUp(touchSample(s.lastPos))
		return
	}
	s.ctrl.HandleUp(pointerSample(s.lastPos))
}

func (s *SurfaceWidget) TouchDown(e *mobile.TouchEvent) {
	s.lastPos = e.Position
	s.touchDown = true
	s.ctrl.HandleDown(touchSample(e.Position))
}

func (s *SurfaceWidget) TouchUp(e *mobile.TouchEvent) {
	s.touchDown = false
	s.ctrl.HandleUp(touchSample(e.Position))
}

func (s *SurfaceWidget) TouchCancel(e *mobile.TouchEvent) {
	s.touchDown = false
	s.ctrl.HandleCancel()
}

func (s *SurfaceWidget) CreateRenderer() fyne.WidgetRenderer {
	return &surfaceRenderer{widget: s}
}

type surfaceRenderer struct {
	widget *SurfaceWidget
}

func (r *surfaceRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.widget.raster}
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	r.widget.raster.Resize(size)
	// Surface-local coordinates are widget units, so the raster is
	// sized in the same units as the input events.
	r.widget.ctrl.Resize(int(size.Width), int(size.Height))
}

func (r *surfaceRenderer) MinSize() fyne.Size {
	return fyne.NewSize(300, r.widget.naturalHeight+float32(r.widget.ctrl.ExtraHeight()))
}

func (r *surfaceRenderer) Refresh() {
	r.widget.applyMode()
	canvas.Refresh(r.widget)
}

func (r *surfaceRenderer) Destroy() {}
