// Package pdfocr draws proof sheets: PDF documents with one page per hOCR
// page, showing the page image with the proofread word text laid over it.
//
// Each word is drawn at its bounding box and stretched to the box width, the
// same way the layout overlay shows it. When a page has an image the text is
// drawn on an invisible layer over it, which makes the sheet a searchable PDF
// carrying the corrected text. Pages without an image show the text itself.
// Debug mode draws the text in red and outlines every word box.
//
// The text layer of every page can be toggled on/off in compatible PDF readers.
package pdfocr

import (
	"bytes"
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/ocrproof/pkg/hocr"
	"github.com/gardar/ocrproof/pkg/layout"
)

// Page is one page of a proof sheet
type Page struct {
	Box   hocr.BoundingBox // Page frame in hOCR units
	Image []byte           // Encoded page image, may be empty
	Words []layout.Item    // Rendered words
}

// PageFromOverlay captures the page currently drawn in an overlay. It reports
// false when the overlay shows no page.
func PageFromOverlay(o *layout.Overlay, image []byte) (Page, bool) {
	box, ok := o.PageBox()
	if !ok || box.Width() <= 0 || box.Height() <= 0 {
		return Page{}, false
	}
	return Page{Box: box, Image: image, Words: o.Items()}, true
}

// ProofSheet builds a PDF with one page for each of pages, starting at
// config.StartPage.
func ProofSheet(pages []Page, config OCRConfig) ([]byte, error) {
	// Validate inputs
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages to draw")
	}
	if config.StartPage < 1 {
		return nil, fmt.Errorf("start page must be at least 1, got %d", config.StartPage)
	}
	if config.StartPage > len(pages) {
		return nil, fmt.Errorf("start page %d is past the last page (%d)", config.StartPage, len(pages))
	}

	// Validate image formats
	imageTypes := make([]string, len(pages))
	for i, page := range pages {
		if page.Box.Width() <= 0 || page.Box.Height() <= 0 {
			return nil, fmt.Errorf("page %d has an empty bounding box", i+1)
		}
		if len(page.Image) == 0 {
			continue
		}
		imageType, err := detectImageType(page.Image)
		if err != nil {
			return nil, fmt.Errorf("image of page %d has invalid format: %w", i+1, err)
		}
		imageTypes[i] = imageType
		config.Logger.Debug().Int("page", i+1).Str("type", imageType).Msg("page image detected")
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	for i := config.StartPage - 1; i < len(pages); i++ {
		page := pages[i]
		hocrW, hocrH := page.Box.Width(), page.Box.Height()
		w, h := pageSize(hocrW, hocrH, config.PageWidth)

		// Add page with appropriate dimensions
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		if imageTypes[i] != "" {
			imageName := fmt.Sprintf("img%d", i)
			opts := fpdf.ImageOptions{ReadDpi: false, ImageType: imageTypes[i]}
			pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(page.Image))
			pdf.ImageOptions(imageName, 0, 0, w, h, false, opts, 0, "")
		}

		// Create transformation function for this page
		box := page.Box
		transform := func(x, y float64) (float64, float64) {
			return normalizeCoords(x-box.X1, y-box.Y1, hocrW, hocrH, w, h)
		}

		hidden := imageTypes[i] != ""
		if err := drawTextLayer(pdf, page, config, i+1, hidden, transform); err != nil {
			return nil, fmt.Errorf("failed to draw text layer for page %d: %w", i+1, err)
		}
		config.Logger.Debug().Int("page", i+1).Int("words", len(page.Words)).Msg("page drawn")
	}

	// Generate final PDF
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
