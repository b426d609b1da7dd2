package hocr

import (
	"strings"

	"golang.org/x/net/html"
)

// MaxInheritDepth is how many ancestors of a word are consulted for
// properties the word does not carry itself: the line, then the element
// containing the line.
const MaxInheritDepth = 2

// Inherit returns the first of scopes that defines key. Scopes are ordered
// from the most specific to the least specific.
func Inherit(key string, scopes ...Options) (Options, bool) {
	for _, s := range scopes {
		if s.Has(key) {
			return s, true
		}
	}
	return nil, false
}

// ancestorScopes returns the options of up to MaxInheritDepth ancestors of n,
// closest first.
func ancestorScopes(n *html.Node) []Options {
	scopes := make([]Options, 0, MaxInheritDepth)
	for p := n.Parent; p != nil && len(scopes) < MaxInheritDepth; p = p.Parent {
		if p.Type != html.ElementNode {
			break
		}
		scopes = append(scopes, NodeOptions(p))
	}
	return scopes
}

// WordGeometry holds everything needed to draw one word over the page image
type WordGeometry struct {
	BBox        BoundingBox // Word coordinates
	LineBBox    BoundingBox // Box whose bottom edge anchors the baseline
	Baseline    Baseline    // Inherited baseline, zero when HasBaseline is false
	HasBaseline bool
	Text        string // Word text as currently shown in the editor
}

// BaselineY is the y coordinate of the text baseline. Without an inherited
// baseline the text sits on the bottom of the reference box.
func (g WordGeometry) BaselineY() float64 {
	return g.LineBBox.Y2 + g.Baseline.Offset
}

// TextLength is the width the rendered text run must be stretched to.
func (g WordGeometry) TextLength() float64 {
	return g.BBox.Width()
}

// ResolveWord derives the geometry of a word element. It reports false when
// the word has no usable bbox, in which case nothing is drawn for it.
//
// The baseline comes from the parent, or from the grandparent when the
// parent does not define one. Deeper ancestors are never consulted. The
// baseline offset applies to the box of the scope defining it, or to the
// word box when that scope has none.
func ResolveWord(word *html.Node) (WordGeometry, bool) {
	bbox, ok := NodeOptions(word).BBox()
	if !ok {
		return WordGeometry{}, false
	}

	g := WordGeometry{
		BBox:     bbox,
		LineBBox: bbox,
		Text:     strings.TrimSpace(TextContent(word)),
	}

	scopes := ancestorScopes(word)
	if line, ok := Inherit("baseline", scopes...); ok {
		g.Baseline, g.HasBaseline = line.Baseline()
		// A baseline without a box of its own is relative to the word box
		if ref, ok := line.BBox(); ok {
			g.LineBBox = ref
		}
		return g, true
	}
	for _, s := range scopes {
		if ref, ok := s.BBox(); ok {
			g.LineBBox = ref
			break
		}
	}
	return g, true
}
