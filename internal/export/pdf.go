// Package export renders a chapter and its ink overlay to PDF for
// printing.
package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"StudyInk/internal/ink"
)

const (
	pageMargin  = 10.0 // mm
	contentMM   = 190.0
	fallbackPxW = 800.0
)

// ChapterPDF writes an A4 page with the passage text and the surface's
// strokes drawn over it. Eraser paths are skipped; a subtractive
// operation has no PDF line equivalent.
func ChapterPDF(path, title, passage string, paths []ink.SerializedPath, surfaceWidthPx float64) error {
	if surfaceWidthPx <= 0 {
		surfaceWidthPx = fallbackPxW
	}
	scale := contentMM / surfaceWidthPx

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 8, title, "", "L", false)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, passage, "", "L", false)

	for _, p := range paths {
		if p.Tool == ink.ToolEraser || len(p.Points) < 2 {
			continue
		}
		r, g, b := ink.ColorRGB(p.Color)
		pdf.SetDrawColor(int(r), int(g), int(b))
		switch p.Tool {
		case ink.ToolHighlighter:
			pdf.SetAlpha(0.25, "Multiply")
			pdf.SetLineWidth(5 * p.Size * scale)
		case ink.ToolMarker:
			pdf.SetAlpha(0.7, "Normal")
			pdf.SetLineWidth(2.5 * p.Size * scale)
		default:
			pdf.SetAlpha(1, "Normal")
			pdf.SetLineWidth(p.Size * scale)
		}
		for i := 1; i < len(p.Points); i++ {
			a, c := p.Points[i-1], p.Points[i]
			pdf.Line(
				pageMargin+a.X*scale, pageMargin+a.Y*scale,
				pageMargin+c.X*scale, pageMargin+c.Y*scale,
			)
		}
	}
	pdf.SetAlpha(1, "Normal")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}
