package pdfocr

import (
	"github.com/rs/zerolog"
)

// OCRConfig holds user options for drawing proof sheets
type OCRConfig struct {
	Debug     bool           // Show the text in red and outline every word box
	LayerName string         // Base name of the text layer (page number will be appended)
	StartPage int            // First page to include, 1-based
	PageWidth float64        // Width of a PDF page in points, 0 keeps the hOCR units
	Logger    zerolog.Logger // Receives warnings about pages and words that were skipped
	Font      FontConfig
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() OCRConfig {
	return OCRConfig{
		Debug:     false,
		LayerName: "Proof Text", // Will be formatted as "Proof Text (Page X)" in the final PDF
		StartPage: 1,
		Logger:    zerolog.Nop(),
		Font:      DefaultFont,
	}
}

// FontConfig contains font settings for word text rendering
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Default font size
	AscentRatio float64 // Vertical positioning ratio for words without a baseline
}

// DefaultFont sets the default font to Helvetica which is tried and tested for the text layer
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}
