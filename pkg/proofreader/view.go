package proofreader

import (
	"golang.org/x/net/html"

	"github.com/gardar/ocrproof/pkg/layout"
)

// View is a scrollable container one side of the widget is mounted in.
//
// Markup nodes report their position inside the scrolled content through
// OffsetRect. Vector nodes have no offset metrics, so for them the widget
// converts ClientRect into content coordinates itself.
type View interface {
	ScrollTop() float64
	ScrollLeft() float64
	ClientHeight() float64
	ScrollHeight() float64
	ScrollTo(top, left float64)

	// Bounds is the on-screen rectangle of the container
	Bounds() layout.Rect
	// ClientRect is the on-screen rectangle of n
	ClientRect(n *html.Node) (layout.Rect, bool)
	// OffsetRect is the rectangle of n relative to the scrolled content
	OffsetRect(n *html.Node) (layout.Rect, bool)
	// ScrollIntoView aligns an edge of n with the same edge of the container
	ScrollIntoView(n *html.Node, align layout.Align)
}

// documentAttacher is implemented by views that lay out the editable
// document themselves and need to know when it changes.
type documentAttacher interface {
	AttachDocument(body *html.Node)
}

// Side identifies the view a pointer event originates from
type Side int

const (
	SideLayout Side = iota
	SideEditor
)

// ParseSide maps "layout" and "editor" to their Side
func ParseSide(s string) (Side, bool) {
	switch s {
	case "layout":
		return SideLayout, true
	case "editor":
		return SideEditor, true
	}
	return 0, false
}

func (s Side) String() string {
	if s == SideEditor {
		return "editor"
	}
	return "layout"
}
