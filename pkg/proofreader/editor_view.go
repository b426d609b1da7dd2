package proofreader

import (
	"math"

	"golang.org/x/net/html"

	"github.com/gardar/ocrproof/pkg/hocr"
	"github.com/gardar/ocrproof/pkg/layout"
)

// EditorView lays the pages of the edited document out one below the other,
// each scaled to the width of the container, and places every element at its
// bbox. Elements without a bbox take the box of their closest ancestor that
// has one.
type EditorView struct {
	bounds    layout.Rect
	body      *html.Node
	top, left float64
}

// NewEditorView creates a view occupying bounds on screen
func NewEditorView(bounds layout.Rect) *EditorView {
	return &EditorView{bounds: bounds}
}

// AttachDocument lays out a new document and scrolls back to the top
func (v *EditorView) AttachDocument(body *html.Node) {
	v.body = body
	v.top, v.left = 0, 0
}

func (v *EditorView) ScrollTop() float64    { return v.top }
func (v *EditorView) ScrollLeft() float64   { return v.left }
func (v *EditorView) ClientHeight() float64 { return v.bounds.Height() }
func (v *EditorView) Bounds() layout.Rect   { return v.bounds }

// ScrollHeight is the height of all pages stacked
func (v *EditorView) ScrollHeight() float64 {
	total := 0.0
	v.eachPage(func(_ *html.Node, _ hocr.BoundingBox, _, height float64) bool {
		total += height
		return true
	})
	return math.Max(total, v.ClientHeight())
}

// ScrollTo moves the scroll position, clamped to the content. The pages
// always fit horizontally.
func (v *EditorView) ScrollTo(top, _ float64) {
	v.top = clamp(top, 0, v.ScrollHeight()-v.ClientHeight())
	v.left = 0
}

// OffsetRect returns the position of n inside the stacked pages
func (v *EditorView) OffsetRect(n *html.Node) (layout.Rect, bool) {
	page := hocr.Ancestor(n, hocr.ClassPage)
	if page == nil {
		return layout.Rect{}, false
	}

	var (
		found     bool
		pageBox   hocr.BoundingBox
		pageTop   float64
		pageScale float64
	)
	v.eachPage(func(p *html.Node, box hocr.BoundingBox, top, _ float64) bool {
		if p != page {
			return true
		}
		found, pageBox, pageTop = true, box, top
		pageScale = v.scale(box)
		return false
	})
	if !found {
		return layout.Rect{}, false
	}

	box, ok := boxOf(n, page)
	if !ok {
		box = pageBox
	}
	return layout.Rect{
		Left:   (box.X1 - pageBox.X1) * pageScale,
		Top:    pageTop + (box.Y1-pageBox.Y1)*pageScale,
		Right:  (box.X2 - pageBox.X1) * pageScale,
		Bottom: pageTop + (box.Y2-pageBox.Y1)*pageScale,
	}, true
}

// ClientRect returns the on-screen rectangle of n
func (v *EditorView) ClientRect(n *html.Node) (layout.Rect, bool) {
	r, ok := v.OffsetRect(n)
	if !ok {
		return layout.Rect{}, false
	}
	return r.Translate(v.bounds.Left-v.left, v.bounds.Top-v.top), true
}

// ScrollIntoView aligns the top or bottom edge of n with the container
func (v *EditorView) ScrollIntoView(n *html.Node, align layout.Align) {
	r, ok := v.OffsetRect(n)
	if !ok {
		return
	}
	if align == layout.AlignEnd {
		v.ScrollTo(r.Bottom-v.ClientHeight(), 0)
	} else {
		v.ScrollTo(r.Top, 0)
	}
}

func (v *EditorView) scale(box hocr.BoundingBox) float64 {
	if box.Width() <= 0 {
		return 1
	}
	return v.bounds.Width() / box.Width()
}

// eachPage calls fn with every page, its box and its vertical extent in
// content coordinates, until fn returns false. Pages without a bbox take up
// one screen.
func (v *EditorView) eachPage(fn func(page *html.Node, box hocr.BoundingBox, top, height float64) bool) {
	if v.body == nil {
		return
	}
	top := 0.0
	for c := v.body.FirstChild; c != nil; c = c.NextSibling {
		if !hocr.HasClass(c, hocr.ClassPage) {
			continue
		}
		box, ok := hocr.NodeOptions(c).BBox()
		height := v.ClientHeight()
		if ok {
			height = box.Height() * v.scale(box)
		} else {
			box = hocr.NewBoundingBox(0, 0, v.bounds.Width(), height)
		}
		if !fn(c, box, top, height) {
			return
		}
		top += height
	}
}

// boxOf returns the bbox of n or of its closest ancestor below page
func boxOf(n, page *html.Node) (hocr.BoundingBox, bool) {
	for ; n != nil && n != page; n = n.Parent {
		if box, ok := hocr.NodeOptions(n).BBox(); ok {
			return box, true
		}
	}
	return hocr.BoundingBox{}, false
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(v, hi))
}
