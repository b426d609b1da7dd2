package layout

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/gardar/ocrproof/pkg/hocr"
)

const svgNamespace = "http://www.w3.org/2000/svg"

// DefaultFontFamily is used for word text when none is configured
const DefaultFontFamily = "Liberation Serif, serif"

// Item is one rendered word: its geometry and the two visual nodes drawn for it
type Item struct {
	ID       string            // id of the rectangle node
	Word     hocr.WordGeometry // Resolved geometry
	FontSize float64
	Text     *html.Node // svg text node
	Rect     *html.Node // svg rect node
}

// Overlay is the SVG tree drawn over a page image.
//
// The tree has a fixed skeleton: a transparent background rect, the page
// image, a group of word texts and a group of word rectangles. Rendering a
// page only ever touches the children of the two groups.
type Overlay struct {
	Root       *html.Node
	Background *html.Node
	Image      *html.Node
	Words      *html.Node
	Rects      *html.Node

	items     []Item
	byNode    map[*html.Node]int
	page      hocr.BoundingBox
	hasPage   bool
	zoom      Zoom
	showWords bool
}

// NewOverlay creates an empty overlay. It starts in page-width zoom with the
// page image shown and the word text hidden.
func NewOverlay(fontFamily string) *Overlay {
	if fontFamily == "" {
		fontFamily = DefaultFontFamily
	}

	o := &Overlay{
		Root:       svgElem("svg", "class", "layout", "xmlns", svgNamespace),
		Background: svgElem("rect", "class", "background", "x", "0", "y", "0", "width", "100%", "height", "100%", "style", "fill: none"),
		Image:      svgElem("image", "x", "0", "y", "0", "width", "100%", "height", "100%"),
		Words:      svgElem("g", "class", "words"),
		Rects:      svgElem("g", "class", "rects"),
		byNode:     make(map[*html.Node]int),
	}
	o.Root.AppendChild(o.Background)
	o.Root.AppendChild(o.Image)
	o.Root.AppendChild(o.Words)
	o.Root.AppendChild(o.Rects)

	setStyle(o.Words, "font-family", fontFamily)
	o.applyBackdrop()
	o.SetZoom(ZoomPageWidth)
	return o
}

// Clear discards every word text and word rectangle
func (o *Overlay) Clear() {
	removeChildren(o.Words)
	removeChildren(o.Rects)
	o.items = nil
	o.byNode = make(map[*html.Node]int)
}

// Reset clears the words and forgets the page frame and image
func (o *Overlay) Reset() {
	o.Clear()
	o.hasPage = false
	o.page = hocr.BoundingBox{}
	hocr.RemoveAttr(o.Root, "viewBox")
	hocr.RemoveAttr(o.Image, "href")
	hocr.SetAttr(o.Image, "x", "0")
	hocr.SetAttr(o.Image, "y", "0")
	hocr.SetAttr(o.Image, "width", "100%")
	hocr.SetAttr(o.Image, "height", "100%")
	o.SetZoom(o.zoom)
}

// SetPage sets the coordinate frame to the page box and the backdrop image.
// An empty href removes the image.
func (o *Overlay) SetPage(box hocr.BoundingBox, imageHref string) {
	o.page = box
	o.hasPage = true
	// viewBox is origin then size; the image covers exactly that frame
	hocr.SetAttr(o.Root, "viewBox", strings.Join([]string{
		formatFloat(box.X1), formatFloat(box.Y1), formatFloat(box.Width()), formatFloat(box.Height()),
	}, " "))
	hocr.SetAttr(o.Image, "x", formatFloat(box.X1))
	hocr.SetAttr(o.Image, "y", formatFloat(box.Y1))
	hocr.SetAttr(o.Image, "width", formatFloat(box.Width()))
	hocr.SetAttr(o.Image, "height", formatFloat(box.Height()))
	if imageHref != "" {
		hocr.SetAttr(o.Image, "href", imageHref)
	} else {
		hocr.RemoveAttr(o.Image, "href")
	}
	o.SetZoom(o.zoom)
}

// PageBox returns the box set by SetPage
func (o *Overlay) PageBox() (hocr.BoundingBox, bool) {
	return o.page, o.hasPage
}

// ImageHref returns the backdrop image reference, empty when there is none
func (o *Overlay) ImageHref() string {
	href, _ := hocr.Attr(o.Image, "href")
	return href
}

// AddWord appends a text run and a rectangle for one word. The text run is
// stretched to exactly the width of the word box.
func (o *Overlay) AddWord(id string, g hocr.WordGeometry, fontSize float64) Item {
	text := svgElem("text",
		"x", formatFloat(g.BBox.X1),
		"y", formatFloat(g.BaselineY()),
		"font-size", formatFloat(fontSize),
		"textLength", formatFloat(g.TextLength()),
		"lengthAdjust", "spacingAndGlyphs",
	)
	text.AppendChild(&html.Node{Type: html.TextNode, Data: g.Text})
	o.Words.AppendChild(text)

	rect := svgElem("rect",
		"id", id,
		"x", formatFloat(g.BBox.X1),
		"y", formatFloat(g.BBox.Y1),
		"width", formatFloat(g.BBox.Width()),
		"height", formatFloat(g.BBox.Height()),
	)
	o.Rects.AppendChild(rect)

	item := Item{ID: id, Word: g, FontSize: fontSize, Text: text, Rect: rect}
	o.byNode[text] = len(o.items)
	o.byNode[rect] = len(o.items)
	o.items = append(o.items, item)
	return item
}

// Items returns the rendered words in drawing order
func (o *Overlay) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// Lookup returns the word drawn with node n, either its text or its rectangle
func (o *Overlay) Lookup(n *html.Node) (Item, bool) {
	i, ok := o.byNode[n]
	if !ok {
		return Item{}, false
	}
	return o.items[i], true
}

// Zoom returns the current zoom mode
func (o *Overlay) Zoom() Zoom { return o.zoom }

// SetZoom sizes the SVG element for the zoom mode. In original mode the
// element gets the pixel size of the page box.
func (o *Overlay) SetZoom(z Zoom) {
	o.zoom = z
	switch z {
	case ZoomPageFull:
		setStyle(o.Root, "width", "")
		setStyle(o.Root, "height", "")
		setStyle(o.Root, "max-width", "100%")
		setStyle(o.Root, "max-height", "100%")
	case ZoomPageWidth:
		setStyle(o.Root, "width", "")
		setStyle(o.Root, "height", "")
		setStyle(o.Root, "max-width", "100%")
		setStyle(o.Root, "max-height", "")
	case ZoomOriginal:
		width, height := "", ""
		if o.hasPage {
			width = formatFloat(o.page.Width()) + "px"
			height = formatFloat(o.page.Height()) + "px"
		}
		setStyle(o.Root, "width", width)
		setStyle(o.Root, "height", height)
		setStyle(o.Root, "max-width", "")
		setStyle(o.Root, "max-height", "")
	}
}

// ToggleBackdrop switches between showing the page image and showing the
// word text
func (o *Overlay) ToggleBackdrop() {
	o.showWords = !o.showWords
	o.applyBackdrop()
}

// ShowsWords reports whether the word text is shown instead of the image
func (o *Overlay) ShowsWords() bool { return o.showWords }

func (o *Overlay) applyBackdrop() {
	if o.showWords {
		setStyle(o.Words, "display", "block")
		setStyle(o.Image, "display", "none")
	} else {
		setStyle(o.Words, "display", "none")
		setStyle(o.Image, "display", "block")
	}
}

// SVG renders the overlay as standalone SVG markup
func (o *Overlay) SVG() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, o.Root); err != nil {
		return "", fmt.Errorf("error rendering layout overlay: %w", err)
	}
	return buf.String(), nil
}

// svgElem creates an element in the svg namespace from key/value pairs
func svgElem(tag string, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag, Namespace: "svg"}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func removeChildren(n *html.Node) {
	for n.LastChild != nil {
		n.RemoveChild(n.LastChild)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
