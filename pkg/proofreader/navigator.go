package proofreader

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	"github.com/gardar/ocrproof/pkg/hocr"
)

// Target names a page relative to the document or to the current page
type Target int

const (
	TargetFirst Target = iota
	TargetLast
	TargetNext
	TargetPrevious
)

// ErrUnknownTarget is returned by ParseTarget for unsupported names
var ErrUnknownTarget = errors.New("unknown page target")

// ParseTarget maps first, last, next and previous to their Target
func ParseTarget(s string) (Target, error) {
	switch s {
	case "first":
		return TargetFirst, nil
	case "last":
		return TargetLast, nil
	case "next":
		return TargetNext, nil
	case "previous":
		return TargetPrevious, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

func (t Target) String() string {
	switch t {
	case TargetFirst:
		return "first"
	case TargetLast:
		return "last"
	case TargetNext:
		return "next"
	case TargetPrevious:
		return "previous"
	}
	return fmt.Sprintf("Target(%d)", int(t))
}

// Navigator tracks the current page among the page elements of a document.
// Pages are the children of the body carrying the page class; they are looked
// up in the live tree on every move, never cached, so edits to the document
// are picked up immediately.
//
// Once a move runs past either end of the document the navigator is in the
// empty state, and next and previous keep it there: no page follows or
// precedes "no page". Only first, last or GotoNode leave that state.
type Navigator struct {
	body      *html.Node
	current   *html.Node
	exhausted bool
}

// Reset points the navigator at a new document body with no current page
func (n *Navigator) Reset(body *html.Node) {
	n.body = body
	n.current = nil
	n.exhausted = false
}

// Current returns the current page, nil in the empty state
func (n *Navigator) Current() *html.Node {
	return n.current
}

// Pages returns the page elements in navigation order
func (n *Navigator) Pages() []*html.Node {
	if n.body == nil {
		return nil
	}
	var pages []*html.Node
	for c := n.body.FirstChild; c != nil; c = c.NextSibling {
		if hocr.HasClass(c, hocr.ClassPage) {
			pages = append(pages, c)
		}
	}
	return pages
}

// Index returns the position of the current page, -1 when there is none
func (n *Navigator) Index() int {
	for i, p := range n.Pages() {
		if p == n.current {
			return i
		}
	}
	return -1
}

// Goto moves to the target page and returns it. When the scan finds no page
// the navigator enters the empty state and returns nil.
func (n *Navigator) Goto(target Target) *html.Node {
	if n.body == nil {
		n.current = nil
		return nil
	}

	relative := target == TargetNext || target == TargetPrevious
	if relative && n.current == nil && n.exhausted {
		return nil
	}

	var (
		node        *html.Node
		backward    bool
		skipCurrent bool
	)
	switch target {
	case TargetFirst:
		node = n.body.FirstChild
	case TargetLast:
		node = n.body.LastChild
		backward = true
	case TargetNext:
		node = n.current
		if node == nil {
			node = n.body.FirstChild
		}
		skipCurrent = true
	case TargetPrevious:
		node = n.current
		if node == nil {
			node = n.body.LastChild
		}
		backward = true
		skipCurrent = true
	}

	// The starting node is skipped for next/previous, even if it is not
	// itself a page.
	for node != nil && (skipCurrent || !hocr.HasClass(node, hocr.ClassPage)) {
		if backward {
			node = node.PrevSibling
		} else {
			node = node.NextSibling
		}
		skipCurrent = false
	}

	n.current = node
	n.exhausted = node == nil
	return node
}

// GotoNode makes page the current page. It reports whether page lies before
// the previous current page in document order, in which case the layout view
// should end up scrolled to the bottom.
func (n *Navigator) GotoNode(page *html.Node) (backward bool) {
	for tmp := n.current; tmp != nil; {
		tmp = tmp.PrevSibling
		if tmp == page {
			backward = true
			break
		}
	}
	n.current = page
	n.exhausted = false
	return backward
}
