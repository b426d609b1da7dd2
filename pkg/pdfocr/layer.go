package pdfocr

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/ocrproof/pkg/layout"
)

// drawTextLayer draws the words of one page onto a layer.
// The pageNum parameter is used to create unique layer names for each page.
// With hidden set the text is invisible but still searchable and selectable.
func drawTextLayer(
	pdf *fpdf.Fpdf,
	page Page,
	config OCRConfig,
	pageNum int,
	hidden bool,
	transform func(x, y float64) (float64, float64),
) error {
	// Format layer name with page number if not already included
	layerName := config.LayerName
	if pageNum > 0 {
		layerName = fmt.Sprintf("%s (Page %d)", config.LayerName, pageNum)
	}

	layer := pdf.AddLayer(layerName, true)
	pdf.BeginLayer(layer)
	pdf.SetFont(config.Font.Name, config.Font.Style, config.Font.Size)

	switch {
	case config.Debug:
		pdf.SetTextColor(255, 0, 0) // highlight text in red
		pdf.SetDrawColor(255, 0, 0)
	case hidden:
		pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	default:
		pdf.SetTextColor(0, 0, 0)
	}

	encodingErrors := 0
	for _, item := range page.Words {
		drawWord(pdf, item, transform, config.Font, config.Debug, &encodingErrors)
	}

	pdf.EndLayer()
	pdf.SetAlpha(1.0, "Normal")

	// Report encoding errors if more than a threshold
	wordCount := len(page.Words)
	if wordCount > 0 && encodingErrors > 0 && encodingErrors > wordCount/10 {
		return fmt.Errorf("character encoding issues in %d of %d words",
			encodingErrors, wordCount)
	}

	return nil
}

// drawWord renders a single word onto the PDF layer, stretched to the width
// of its box
func drawWord(pdf *fpdf.Fpdf, item layout.Item, transform func(x, y float64) (float64, float64),
	fontConfig FontConfig, debug bool, encodingErrors *int) {

	word := item.Word
	x, y := transform(word.BBox.X1, word.BBox.Y1)
	x2, y2 := transform(word.BBox.X2, word.BBox.Y2)
	wordWidth := x2 - x

	// Convert text to ISO-8859-1 to avoid PDF encoding issues
	latin1, err := charmap.ISO8859_1.NewEncoder().String(word.Text)
	if err != nil {
		// Track encoding errors but continue
		*encodingErrors++
		latin1 = word.Text // fallback to raw text
	}

	strWidth := pdf.GetStringWidth(latin1)
	if strWidth > 0 {
		scale := wordWidth / strWidth
		pdf.SetFontSize(fontConfig.Size * scale)
	}

	baseline := y
	if word.HasBaseline {
		_, baseline = transform(word.BBox.X1, word.BaselineY())
	} else {
		fontSize, _ := pdf.GetFontSize()
		baseline += fontSize * fontConfig.AscentRatio
	}

	pdf.Text(x, baseline, latin1)
	pdf.SetFontSize(fontConfig.Size)

	if debug {
		pdf.Rect(x, y, wordWidth, y2-y, "D")
	}
}
