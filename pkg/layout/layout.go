// Package layout builds the visual side of the proofreader: an SVG overlay
// drawn over the page image, with one rectangle and one stretched text run
// per recognized word.
//
// The overlay is an ordinary x/net/html node tree in the svg namespace, so it
// can be rendered to markup with html.Render, embedded into a page served to
// a browser, or rasterized. Viewport models the scrollable container the
// overlay is mounted in and answers the geometry questions of hover
// synchronization.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// Zoom is a presentation mode of the overlay
type Zoom string

// Supported zoom modes
const (
	ZoomPageFull  Zoom = "page-full"  // whole page visible
	ZoomPageWidth Zoom = "page-width" // page fills the container width
	ZoomOriginal  Zoom = "original"   // one page unit per pixel
)

// ErrUnknownZoom is returned for zoom names outside the supported set
var ErrUnknownZoom = errors.New("unknown zoom mode")

// ParseZoom maps a zoom name to its mode
func ParseZoom(s string) (Zoom, error) {
	switch z := Zoom(strings.TrimSpace(s)); z {
	case ZoomPageFull, ZoomPageWidth, ZoomOriginal:
		return z, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownZoom, s)
}

// Align selects which edge of a node is brought to the matching viewport edge
type Align int

const (
	AlignStart Align = iota
	AlignEnd
)

// Rect is an axis aligned rectangle in screen or content coordinates
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Width of the rectangle
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height of the rectangle
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Translate moves the rectangle by dx, dy
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}
