package layout

import (
	"math"

	"golang.org/x/net/html"
)

// Viewport is the scrollable container an Overlay is mounted in. It computes
// the on-screen geometry of the overlay from the page box and the zoom mode,
// which is what a browser would report for the rendered SVG.
type Viewport struct {
	overlay   *Overlay
	bounds    Rect
	top, left float64
}

// NewViewport mounts o in a container occupying bounds on screen
func NewViewport(o *Overlay, bounds Rect) *Viewport {
	return &Viewport{overlay: o, bounds: bounds}
}

// Scale is the number of screen pixels per page unit
func (v *Viewport) Scale() float64 {
	box, ok := v.overlay.PageBox()
	if !ok || box.Width() <= 0 || box.Height() <= 0 {
		return 1
	}
	switch v.overlay.Zoom() {
	case ZoomOriginal:
		return 1
	case ZoomPageFull:
		return math.Min(v.bounds.Width()/box.Width(), v.bounds.Height()/box.Height())
	default:
		return v.bounds.Width() / box.Width()
	}
}

func (v *Viewport) ScrollTop() float64    { return v.top }
func (v *Viewport) ScrollLeft() float64   { return v.left }
func (v *Viewport) ClientHeight() float64 { return v.bounds.Height() }
func (v *Viewport) Bounds() Rect          { return v.bounds }

// ScrollHeight is the height of the scrollable content
func (v *Viewport) ScrollHeight() float64 {
	box, ok := v.overlay.PageBox()
	if !ok {
		return v.bounds.Height()
	}
	return math.Max(box.Height()*v.Scale(), v.bounds.Height())
}

func (v *Viewport) scrollWidth() float64 {
	box, ok := v.overlay.PageBox()
	if !ok {
		return v.bounds.Width()
	}
	return math.Max(box.Width()*v.Scale(), v.bounds.Width())
}

// ScrollTo moves the scroll position, clamped to the content
func (v *Viewport) ScrollTo(top, left float64) {
	v.top = clamp(top, 0, v.ScrollHeight()-v.ClientHeight())
	v.left = clamp(left, 0, v.scrollWidth()-v.bounds.Width())
}

// ClientRect returns the on-screen rectangle of an overlay node, the way
// getBoundingClientRect would report it.
func (v *Viewport) ClientRect(n *html.Node) (Rect, bool) {
	item, ok := v.overlay.Lookup(n)
	if !ok {
		return Rect{}, false
	}

	var r Rect
	if n == item.Text {
		r = Rect{
			Left:   item.Word.BBox.X1,
			Top:    item.Word.BaselineY() - item.FontSize,
			Right:  item.Word.BBox.X1 + item.Word.TextLength(),
			Bottom: item.Word.BaselineY(),
		}
	} else {
		r = Rect{Left: item.Word.BBox.X1, Top: item.Word.BBox.Y1, Right: item.Word.BBox.X2, Bottom: item.Word.BBox.Y2}
	}

	box, _ := v.overlay.PageBox()
	s := v.Scale()
	return Rect{
		Left:   (r.Left-box.X1)*s + v.bounds.Left - v.left,
		Top:    (r.Top-box.Y1)*s + v.bounds.Top - v.top,
		Right:  (r.Right-box.X1)*s + v.bounds.Left - v.left,
		Bottom: (r.Bottom-box.Y1)*s + v.bounds.Top - v.top,
	}, true
}

// OffsetRect is not available for vector nodes
func (v *Viewport) OffsetRect(*html.Node) (Rect, bool) {
	return Rect{}, false
}

// ScrollIntoView scrolls so that the node's top (AlignStart) or bottom
// (AlignEnd) edge meets the matching edge of the viewport. Scrolling is
// immediate; there is no animation to wait for.
func (v *Viewport) ScrollIntoView(n *html.Node, align Align) {
	r, ok := v.ClientRect(n)
	if !ok {
		return
	}
	content := r.Translate(v.left-v.bounds.Left, v.top-v.bounds.Top)
	if align == AlignEnd {
		v.ScrollTo(content.Bottom-v.ClientHeight(), v.left)
	} else {
		v.ScrollTo(content.Top, v.left)
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Max(lo, math.Min(v, hi))
}
