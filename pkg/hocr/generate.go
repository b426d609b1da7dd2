package hocr

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
)

// Render serializes the document tree back to hOCR markup.
func Render(doc *Document) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, doc.Root); err != nil {
		return "", fmt.Errorf("error rendering hOCR document: %w", err)
	}
	return buf.String(), nil
}
