package proofreader

import (
	"golang.org/x/net/html"

	"github.com/gardar/ocrproof/pkg/hocr"
	"github.com/gardar/ocrproof/pkg/layout"
)

// PointerMove handles the pointer moving over target in one of the views.
//
// In the editor, entering another page makes it the current page first. Then
// the hover mark moves to the counterpart of target, and that counterpart is
// scrolled into view in its own container when it is out of sight.
func (p *Proofreader) PointerMove(side Side, target *html.Node) {
	if target != nil && target.Type == html.TextNode {
		target = target.Parent
	}

	other := p.editorView
	if side == SideEditor {
		p.followPage(target)
		other = p.layoutView
	}

	node := p.links.Resolve(target)
	if node == p.hovered {
		return
	}
	if p.hovered != nil {
		hocr.RemoveClass(p.hovered, HoverClass)
		p.hovered = nil
	}
	if node != nil {
		hocr.AddClass(node, HoverClass)
		p.hovered = node
		scrollIntoViewIfNeeded(node, other)
	}
}

// followPage switches to the page containing target, if that is not the
// current one
func (p *Proofreader) followPage(target *html.Node) {
	page := hocr.Ancestor(target, hocr.ClassPage)
	if page == nil || page == p.nav.Current() {
		return
	}
	backward := p.nav.GotoNode(page)
	p.logger.Debug().Int("index", p.nav.Index()).Bool("backward", backward).Msg("editor entered page")
	p.Render(backward)
}

// contentRect returns the rectangle of n in the coordinates of the scrolled
// content of v
func contentRect(n *html.Node, v View) (layout.Rect, bool) {
	if n.Namespace != "svg" {
		return v.OffsetRect(n)
	}
	r, ok := v.ClientRect(n)
	if !ok {
		return layout.Rect{}, false
	}
	b := v.Bounds()
	return r.Translate(v.ScrollLeft()-b.Left, v.ScrollTop()-b.Top), true
}

// scrollIntoViewIfNeeded scrolls v when n lies below or above its visible
// region. Overflow at the bottom takes precedence.
func scrollIntoViewIfNeeded(n *html.Node, v View) {
	r, ok := contentRect(n, v)
	if !ok {
		return
	}
	switch {
	case r.Bottom > v.ScrollTop()+v.ClientHeight():
		v.ScrollIntoView(n, layout.AlignEnd)
	case r.Top < v.ScrollTop():
		v.ScrollIntoView(n, layout.AlignStart)
	}
}
