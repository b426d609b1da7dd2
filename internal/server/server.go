package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/gardar/ocrproof/internal/config"
	"github.com/gardar/ocrproof/pkg/proofreader"
	"github.com/gardar/ocrproof/pkg/source"
)

// maxDocumentBytes bounds uploaded hOCR documents
const maxDocumentBytes = 64 << 20

// Server is the HTTP host of one proofreader widget. Every widget operation
// is submitted to the widget's event loop, which must be running.
type Server struct {
	router chi.Router
	widget *proofreader.Proofreader
	loop   *proofreader.Loop
	loader source.Loader
	log    zerolog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(widget *proofreader.Proofreader, loop *proofreader.Loop, log zerolog.Logger, cfg config.Config) *Server {
	s := &Server{
		widget: widget,
		loop:   loop,
		log:    log.With().Str("component", "server").Logger(),
		cfg:    cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.handleState)

		r.Post("/document", s.handleLoadDocument)
		r.Post("/document/fetch", s.handleFetchDocument)
		r.Get("/document", s.handleExportDocument)
		r.Get("/pages", s.handlePages)

		r.Post("/page/{target}", s.handleGoto)
		r.Post("/hover/{side}/{id}", s.handleHover)
		r.Put("/zoom/{mode}", s.handleZoom)
		r.Post("/backdrop/toggle", s.handleToggleBackdrop)

		r.Get("/layout.svg", s.handleLayoutSVG)
		r.Get("/layout.png", s.handleLayoutPNG)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
