package pdfocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"
)

// normalizeCoords rescales hOCR Bounding Box (bbox) coords to the PDF coords.
func normalizeCoords(x, y, hocrW, hocrH, pdfW, pdfH float64) (float64, float64) {
	nx := (x / hocrW) * pdfW
	ny := (y / hocrH) * pdfH
	return nx, ny
}

// pageSize returns the PDF page size for a page of the given hOCR size
func pageSize(hocrW, hocrH, pageWidth float64) (float64, float64) {
	if pageWidth <= 0 {
		return hocrW, hocrH
	}
	return pageWidth, hocrH * pageWidth / hocrW
}

// detectImageType tries to figure out whether the data is PNG, JPEG, etc.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), nil
}
