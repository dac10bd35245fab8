package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"StudyInk/internal/ink"
)

// colorSwatch is a tappable square of one ink color.
type colorSwatch struct {
	widget.BaseWidget
	color    color.Color
	hex      string
	onTapped func(hex string)
}

func newColorSwatch(c color.Color, hex string, tapped func(string)) *colorSwatch {
	s := &colorSwatch{color: c, hex: hex, onTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.onTapped != nil {
		s.onTapped(s.hex)
	}
}

// NewToolbar builds the tool strip. It mutates the shared tool state,
// so when two panels of the same chapter are open both see the change
// immediately.
func NewToolbar(tools *ink.ToolState, onUndo, onClear func()) fyne.CanvasObject {
	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() { tools.SetTool(ink.ToolPen) }),
		widget.NewToolbarAction(theme.ColorPaletteIcon(), func() { tools.SetTool(ink.ToolMarker) }),
		widget.NewToolbarAction(theme.ColorChromaticIcon(), func() { tools.SetTool(ink.ToolHighlighter) }),
		widget.NewToolbarAction(theme.DeleteIcon(), func() { tools.SetTool(ink.ToolEraser) }),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() {
			if onUndo != nil {
				onUndo()
			}
		}),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() {
			if onClear != nil {
				onClear()
			}
		}),
	)

	onColorTapped := func(hex string) { tools.SetColor(hex) }
	colorBox := container.NewHBox(
		newColorSwatch(color.Black, "#1a1a1a", onColorTapped),
		newColorSwatch(color.NRGBA{R: 200, G: 40, B: 40, A: 255}, "#c82828", onColorTapped),
		newColorSwatch(color.NRGBA{R: 40, G: 100, B: 200, A: 255}, "#2864c8", onColorTapped),
		newColorSwatch(color.NRGBA{R: 30, G: 140, B: 70, A: 255}, "#1e8c46", onColorTapped),
		newColorSwatch(color.NRGBA{R: 240, G: 210, B: 40, A: 255}, "#f0d228", onColorTapped),
	)

	sizeSlider := widget.NewSlider(1, 20)
	sizeSlider.SetValue(3)
	sizeSlider.OnChanged = func(v float64) { tools.SetSize(v) }
	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(140, 35)), sizeSlider)

	return container.NewHBox(
		tb,
		widget.NewSeparator(),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		layout.NewSpacer(),
	)
}
