// Package proofreader keeps an editable hOCR document and its layout overlay
// in sync.
//
// A Proofreader owns one editor view (the markup tree) and one layout view
// (an SVG overlay of the current page). It renders the current page into the
// overlay, links every drawn word rectangle to its word element and moves the
// hover mark between the two views as the pointer moves. All of its state
// belongs to the instance; independent widgets never share anything.
//
// A Proofreader is not safe for concurrent use. Hosts that receive events from
// several goroutines serialize them through a Loop.
package proofreader

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/gardar/ocrproof/pkg/hocr"
	"github.com/gardar/ocrproof/pkg/layout"
)

var (
	// ErrNoDocument is returned by operations that need a loaded document
	ErrNoDocument = errors.New("no document loaded")
	// ErrUnknownNode is returned when a node id matches nothing in either view
	ErrUnknownNode = errors.New("unknown node")
)

const (
	// HoverClass marks the hovered node
	HoverClass = "hover"

	editableAttr = "contenteditable"
)

// Config holds the presentation settings of a widget
type Config struct {
	Stylesheet string      // Editor stylesheet href added on load, none when empty
	FontFamily string      // Font family of the word text layer
	FontSize   float64     // Font size of word text, 0 derives it from the box height
	Zoom       layout.Zoom // Initial zoom mode
}

// DefaultConfig returns the settings used when nothing else is configured
func DefaultConfig() Config {
	return Config{
		Stylesheet: "editor.css",
		FontFamily: layout.DefaultFontFamily,
		FontSize:   42,
		Zoom:       layout.ZoomPageWidth,
	}
}

// Proofreader is one widget instance
type Proofreader struct {
	config Config
	logger zerolog.Logger

	overlay    *layout.Overlay
	layoutView View
	editorView View

	doc        *hocr.Document
	baseURL    *url.URL
	stylesheet *html.Node

	nav     Navigator
	links   *LinkTable
	hovered *html.Node
}

// New creates a widget drawing into overlay. layoutView is the container the
// overlay is mounted in, editorView the one showing the markup.
func New(cfg Config, overlay *layout.Overlay, layoutView, editorView View, logger zerolog.Logger) *Proofreader {
	p := &Proofreader{
		config:     cfg,
		logger:     logger.With().Str("component", "proofreader").Logger(),
		overlay:    overlay,
		layoutView: layoutView,
		editorView: editorView,
		links:      NewLinkTable(),
	}
	if cfg.Zoom != "" {
		overlay.SetZoom(cfg.Zoom)
	}
	return p
}

// NewWithBounds creates a widget together with its overlay and both views.
// The bounds are the on-screen rectangles of the two mounting points.
func NewWithBounds(cfg Config, layoutBounds, editorBounds layout.Rect, logger zerolog.Logger) *Proofreader {
	overlay := layout.NewOverlay(cfg.FontFamily)
	return New(cfg, overlay, layout.NewViewport(overlay, layoutBounds), NewEditorView(editorBounds), logger)
}

// Load replaces the edited document with markup and shows its first page.
// Page images are resolved against baseURL.
func (p *Proofreader) Load(markup, baseURL string) error {
	var base *url.URL
	if baseURL != "" {
		var err error
		if base, err = url.Parse(baseURL); err != nil {
			return fmt.Errorf("invalid base URL %q: %w", baseURL, err)
		}
	}
	doc, err := hocr.Parse([]byte(markup))
	if err != nil {
		return fmt.Errorf("error loading hOCR document: %w", err)
	}

	p.doc = doc
	p.baseURL = base
	p.hovered = nil

	p.stylesheet = nil
	if p.config.Stylesheet != "" {
		p.stylesheet = &html.Node{
			Type: html.ElementNode,
			Data: "link",
			Attr: []html.Attribute{
				{Key: "type", Val: "text/css"},
				{Key: "rel", Val: "stylesheet"},
				{Key: "href", Val: p.config.Stylesheet},
			},
		}
		doc.Head.AppendChild(p.stylesheet)
	}
	hocr.SetAttr(doc.Body, editableAttr, "true")

	p.nav.Reset(doc.Body)
	if a, ok := p.editorView.(documentAttacher); ok {
		a.AttachDocument(doc.Body)
	}

	p.logger.Debug().
		Str("encoding", doc.Encoding).
		Int("pages", len(p.nav.Pages())).
		Msg("document loaded")

	return p.Goto(TargetFirst)
}

// Export serializes the edited document. The editing affordances added by
// Load and the hover mark are left out of the output and put back afterwards.
func (p *Proofreader) Export() (string, error) {
	if p.doc == nil {
		return "", ErrNoDocument
	}

	if p.stylesheet != nil && p.stylesheet.Parent != nil {
		parent := p.stylesheet.Parent
		next := p.stylesheet.NextSibling
		parent.RemoveChild(p.stylesheet)
		defer parent.InsertBefore(p.stylesheet, next)
	}
	if v, ok := hocr.Attr(p.doc.Body, editableAttr); ok {
		hocr.RemoveAttr(p.doc.Body, editableAttr)
		defer hocr.SetAttr(p.doc.Body, editableAttr, v)
	}
	if p.hovered != nil {
		hovered := p.hovered
		hocr.RemoveClass(hovered, HoverClass)
		defer hocr.AddClass(hovered, HoverClass)
	}

	return hocr.Render(p.doc)
}

// Goto moves to another page and renders it
func (p *Proofreader) Goto(target Target) error {
	if p.doc == nil {
		return ErrNoDocument
	}
	page := p.nav.Goto(target)
	if page == nil {
		p.logger.Debug().Stringer("target", target).Msg("no page found")
	} else {
		p.logger.Debug().Stringer("target", target).Int("index", p.nav.Index()).Msg("page changed")
	}
	p.Render(false)
	return nil
}

// SetZoom changes the zoom mode of the layout view
func (p *Proofreader) SetZoom(z layout.Zoom) {
	p.overlay.SetZoom(z)
	p.layoutView.ScrollTo(p.layoutView.ScrollTop(), p.layoutView.ScrollLeft())
}

// ToggleBackdrop switches the layout view between the page image and the
// word text
func (p *Proofreader) ToggleBackdrop() {
	p.overlay.ToggleBackdrop()
}

// NodeByID finds an element by id, in the document first and then in the
// overlay
func (p *Proofreader) NodeByID(id string) (*html.Node, error) {
	if p.doc != nil {
		if n := hocr.FindByID(p.doc.Root, id); n != nil {
			return n, nil
		}
	}
	if n := hocr.FindByID(p.overlay.Root, id); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
}

// Document returns the edited document, nil before Load
func (p *Proofreader) Document() *hocr.Document { return p.doc }

// Overlay returns the layout overlay
func (p *Proofreader) Overlay() *layout.Overlay { return p.overlay }

// Links returns the links of the current render
func (p *Proofreader) Links() *LinkTable { return p.links }

// Current returns the current page, nil when there is none
func (p *Proofreader) Current() *html.Node { return p.nav.Current() }

// Pages returns the pages of the edited document
func (p *Proofreader) Pages() []*html.Node { return p.nav.Pages() }

// Hovered returns the node carrying the hover mark, if any
func (p *Proofreader) Hovered() *html.Node { return p.hovered }

// LayoutView returns the view the overlay is mounted in
func (p *Proofreader) LayoutView() View { return p.layoutView }

// EditorView returns the view the document is mounted in
func (p *Proofreader) EditorView() View { return p.editorView }

// State is a summary of the widget for hosts
type State struct {
	Loaded          bool        `json:"loaded"`
	Page            int         `json:"page"` // Index of the current page, -1 when there is none
	PageID          string      `json:"page_id,omitempty"`
	Pages           int         `json:"pages"`
	Words           int         `json:"words"`
	Links           int         `json:"links"`
	Hovered         string      `json:"hovered,omitempty"`
	Zoom            layout.Zoom `json:"zoom"`
	ShowsWords      bool        `json:"shows_words"`
	LayoutScrollTop float64     `json:"layout_scroll_top"`
	EditorScrollTop float64     `json:"editor_scroll_top"`
}

// State summarizes the widget
func (p *Proofreader) State() State {
	s := State{
		Loaded:          p.doc != nil,
		Page:            p.nav.Index(),
		Pages:           len(p.nav.Pages()),
		Words:           len(p.overlay.Items()),
		Links:           p.links.Len(),
		Zoom:            p.overlay.Zoom(),
		ShowsWords:      p.overlay.ShowsWords(),
		LayoutScrollTop: p.layoutView.ScrollTop(),
		EditorScrollTop: p.editorView.ScrollTop(),
	}
	if cur := p.nav.Current(); cur != nil {
		s.PageID, _ = hocr.Attr(cur, "id")
	}
	if p.hovered != nil {
		s.Hovered, _ = hocr.Attr(p.hovered, "id")
	}
	return s
}
