package proofreader

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/gardar/ocrproof/pkg/hocr"
)

// Render rebuilds the overlay for the current page. With scrollToBottom the
// layout view ends up scrolled all the way down, which keeps both views
// continuous when the user scrolls backward through the editor.
func (p *Proofreader) Render(scrollToBottom bool) {
	p.layoutView.ScrollTo(0, 0)

	p.overlay.Clear()
	p.links.Clear()
	if p.hovered != nil && p.hovered.Namespace == "svg" {
		// The node was just discarded
		p.hovered = nil
	}

	page := p.nav.Current()
	if page == nil {
		p.overlay.Reset()
		return
	}

	opts := hocr.NodeOptions(page)
	if box, ok := opts.BBox(); ok {
		p.overlay.SetPage(box, p.imageURL(opts))
	} else {
		p.logger.Warn().Msg("page has no bbox, rendering without a page frame")
		p.overlay.Reset()
	}

	words := hocr.ElementsByClass(page, hocr.ClassWord)
	drawn := 0
	for i, word := range words {
		g, ok := hocr.ResolveWord(word)
		if !ok {
			continue
		}
		item := p.overlay.AddWord(rectID(word, i), g, p.fontSize(g.BBox))
		p.links.Link(word, item.Rect)
		drawn++
	}

	if scrollToBottom {
		p.layoutView.ScrollTo(p.layoutView.ScrollHeight()-p.layoutView.ClientHeight(), 0)
	}

	p.logger.Debug().
		Int("words", len(words)).
		Int("drawn", drawn).
		Bool("scroll_bottom", scrollToBottom).
		Msg("page rendered")
}

// imageURL resolves the page image against the base URL of the document
func (p *Proofreader) imageURL(opts hocr.Options) string {
	image, ok := opts.Get("image")
	if !ok || image == "" {
		return ""
	}
	image = hocr.Unquote(image)
	ref, err := url.Parse(image)
	if err != nil || p.baseURL == nil || ref.IsAbs() || strings.HasPrefix(ref.Path, "/") {
		return image
	}
	if p.baseURL.IsAbs() || strings.HasPrefix(p.baseURL.Path, "/") {
		return p.baseURL.ResolveReference(ref).String()
	}
	// Relative base such as a local path
	return path.Join(path.Dir(p.baseURL.Path), image)
}

func (p *Proofreader) fontSize(box hocr.BoundingBox) float64 {
	if p.config.FontSize > 0 {
		return p.config.FontSize
	}
	return box.Height()
}

func rectID(word *html.Node, index int) string {
	if id, ok := hocr.Attr(word, "id"); ok && id != "" {
		return "rect_" + id
	}
	return "rect_" + strconv.Itoa(index)
}
