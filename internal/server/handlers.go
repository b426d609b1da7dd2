package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gardar/ocrproof/pkg/hocr"
	"github.com/gardar/ocrproof/pkg/layout"
	"github.com/gardar/ocrproof/pkg/proofreader"
	"github.com/gardar/ocrproof/pkg/snapshot"
)

type pageInfo struct {
	Index   int    `json:"index"`
	ID      string `json:"id,omitempty"`
	Current bool   `json:"current"`
	Text    string `json:"text"`
}

// run executes fn on the widget loop and writes the error response when
// either the loop or fn fails. It reports whether the caller may go on.
func (s *Server) run(w http.ResponseWriter, r *http.Request, fn func() error) bool {
	var opErr error
	if err := s.loop.Do(r.Context(), func() { opErr = fn() }); err != nil {
		jsonError(w, "widget unavailable: "+err.Error(), http.StatusServiceUnavailable)
		return false
	}
	if opErr != nil {
		jsonError(w, opErr.Error(), statusFor(opErr))
		return false
	}
	return true
}

// respondState runs fn and answers with the widget state afterwards
func (s *Server) respondState(w http.ResponseWriter, r *http.Request, fn func() error) {
	var state proofreader.State
	ok := s.run(w, r, func() error {
		if err := fn(); err != nil {
			return err
		}
		state = s.widget.State()
		return nil
	})
	if ok {
		writeJSON(w, http.StatusOK, state)
	}
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.respondState(w, r, func() error { return nil })
}

// handleLoadDocument loads the hOCR markup in the request body. Page images
// are resolved against the base_url query parameter, or the configured one.
func (s *Server) handleLoadDocument(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDocumentBytes))
	if err != nil {
		jsonError(w, "failed to read document: "+err.Error(), http.StatusBadRequest)
		return
	}
	base := r.URL.Query().Get("base_url")
	if base == "" {
		base = s.cfg.BaseURL
	}
	s.respondState(w, r, func() error { return s.widget.Load(string(data), base) })
}

// handleFetchDocument loads the document behind the url query parameter,
// which also serves as base URL unless one is configured
func (s *Server) handleFetchDocument(w http.ResponseWriter, r *http.Request) {
	location := r.URL.Query().Get("url")
	if location == "" {
		jsonError(w, "url query parameter is required", http.StatusBadRequest)
		return
	}

	data, err := s.loader.Get(r.Context(), location)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadGateway)
		return
	}
	base := s.cfg.BaseURL
	if base == "" {
		base = location
	}
	s.respondState(w, r, func() error { return s.widget.Load(string(data), base) })
}

func (s *Server) handleExportDocument(w http.ResponseWriter, r *http.Request) {
	var out string
	if !s.run(w, r, func() (err error) {
		out, err = s.widget.Export()
		return err
	}) {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, out)
}

func (s *Server) handlePages(w http.ResponseWriter, r *http.Request) {
	var pages []pageInfo
	if !s.run(w, r, func() error {
		if s.widget.Document() == nil {
			return proofreader.ErrNoDocument
		}
		current := s.widget.Current()
		for i, page := range s.widget.Pages() {
			id, _ := hocr.Attr(page, "id")
			pages = append(pages, pageInfo{Index: i, ID: id, Current: page == current, Text: hocr.PageText(page)})
		}
		return nil
	}) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"pages": pages})
}

func (s *Server) handleGoto(w http.ResponseWriter, r *http.Request) {
	target, err := proofreader.ParseTarget(chi.URLParam(r, "target"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.respondState(w, r, func() error { return s.widget.Goto(target) })
}

// handleHover moves the pointer over the node with the given id, as if in
// the layout or editor view
func (s *Server) handleHover(w http.ResponseWriter, r *http.Request) {
	side, ok := proofreader.ParseSide(chi.URLParam(r, "side"))
	if !ok {
		jsonError(w, "side must be layout or editor", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	s.respondState(w, r, func() error {
		target, err := s.widget.NodeByID(id)
		if err != nil {
			return err
		}
		s.widget.PointerMove(side, target)
		return nil
	})
}

func (s *Server) handleZoom(w http.ResponseWriter, r *http.Request) {
	zoom, err := layout.ParseZoom(chi.URLParam(r, "mode"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.respondState(w, r, func() error {
		s.widget.SetZoom(zoom)
		return nil
	})
}

func (s *Server) handleToggleBackdrop(w http.ResponseWriter, r *http.Request) {
	s.respondState(w, r, func() error {
		s.widget.ToggleBackdrop()
		return nil
	})
}

func (s *Server) layoutSVG(w http.ResponseWriter, r *http.Request) (string, bool) {
	var svg string
	ok := s.run(w, r, func() (err error) {
		svg, err = s.widget.Overlay().SVG()
		return err
	})
	return svg, ok
}

func (s *Server) handleLayoutSVG(w http.ResponseWriter, r *http.Request) {
	svg, ok := s.layoutSVG(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	io.WriteString(w, svg)
}

func (s *Server) handleLayoutPNG(w http.ResponseWriter, r *http.Request) {
	svg, ok := s.layoutSVG(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	opts := snapshot.Options{Timeout: s.cfg.SnapshotTimeout, NoSandbox: s.cfg.NoSandbox, Logger: s.log}
	if err := snapshot.PNG(r.Context(), svg, &buf, opts); err != nil {
		s.log.Error().Err(err).Msg("snapshot failed")
		jsonError(w, "snapshot failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, proofreader.ErrNoDocument):
		return http.StatusConflict
	case errors.Is(err, proofreader.ErrUnknownNode):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
