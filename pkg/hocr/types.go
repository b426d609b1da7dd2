package hocr

// Class names of the hOCR elements the proofreader works with
const (
	ClassPage      = "ocr_page"
	ClassArea      = "ocr_carea"
	ClassParagraph = "ocr_par"
	ClassLine      = "ocr_line"
	ClassWord      = "ocrx_word"
)

// BoundingBox represents a rectangle in the document
// Used to store hOCR 'bbox' property values
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// NewBoundingBox creates a bounding box from coordinates
// x1, y1 represent the top-left corner, while x2, y2 represent the bottom-right corner.
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

// Width returns the horizontal extent of the box
func (b BoundingBox) Width() float64 { return b.X2 - b.X1 }

// Height returns the vertical extent of the box
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }

// Baseline describes where a text line sits relative to the bottom edge of
// its box. Used to store hOCR 'baseline' property values.
type Baseline struct {
	Slope  float64
	Offset float64
}
