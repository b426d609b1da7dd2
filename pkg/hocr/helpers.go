package hocr

import (
	"strings"

	"golang.org/x/net/html"
)

// PageText extracts the text of a page as currently edited.
// Words sharing a parent element are joined by spaces, each parent ends a line.
func PageText(page *html.Node) string {
	var builder strings.Builder
	var line *html.Node

	for _, word := range ElementsByClass(page, ClassWord) {
		if line != nil && word.Parent != line {
			builder.WriteString("\n")
		} else if line != nil {
			builder.WriteString(" ")
		}
		line = word.Parent
		builder.WriteString(strings.TrimSpace(TextContent(word)))
	}
	if line != nil {
		builder.WriteString("\n")
	}

	return builder.String()
}

// DocumentText extracts the text of all pages. Pages are separated by an
// empty line.
func DocumentText(doc *Document) string {
	var builder strings.Builder
	for i, page := range doc.Pages() {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(PageText(page))
	}
	return builder.String()
}
