package hocr

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// Document is a parsed hOCR document. The tree is live: callers edit it in
// place and Render serializes whatever it currently holds.
type Document struct {
	Root     *html.Node // Document node returned by the HTML parser
	Head     *html.Node
	Body     *html.Node
	Encoding string // Character encoding the input was decoded from
}

// Parse converts raw hOCR data into a Document.
// Documents without pages are valid; they simply have nothing to show.
func Parse(data []byte) (*Document, error) {
	// Figure out the character encoding
	name := sniffCharset(data)
	decoded := data
	if name != "utf-8" {
		enc, err := htmlindex.Get(name)
		if err != nil {
			// Unknown labels are most often some Latin-1 variant
			enc = charmap.ISO8859_1
		}
		decoded, err = decode(enc, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", name, err)
		}
	}

	root, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR markup: %w", err)
	}

	doc := &Document{
		Root:     root,
		Head:     findElement(root, "head"),
		Body:     findElement(root, "body"),
		Encoding: name,
	}
	if doc.Head == nil || doc.Body == nil {
		return nil, fmt.Errorf("hOCR markup has no head or body")
	}
	return doc, nil
}

// Pages returns the page elements of the document in document order
func (d *Document) Pages() []*html.Node {
	return ElementsByClass(d.Body, ClassPage)
}

// sniffCharset looks for a charset declaration in the markup and returns its
// lower-cased label, "utf-8" when there is none.
func sniffCharset(data []byte) string {
	content := string(data)
	idx := strings.Index(strings.ToLower(content), "charset=")
	if idx < 0 {
		return "utf-8"
	}
	snippet := content[idx+len("charset="):]
	if len(snippet) > 40 {
		snippet = snippet[:40]
	}
	fields := strings.FieldsFunc(snippet, func(r rune) bool {
		return r == '"' || r == ';' || r == '\'' || r == '>' || r == ' ' || r == '/'
	})
	if len(fields) == 0 {
		return "utf-8"
	}
	enc := strings.ToLower(fields[0])
	if enc == "utf8" {
		enc = "utf-8"
	}
	return enc
}

func decode(enc encoding.Encoding, data []byte) ([]byte, error) {
	return enc.NewDecoder().Bytes(data)
}
