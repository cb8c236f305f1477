package api

import (
	"log/slog"
	"net/http"

	"github.com/dgallion1/xmlview/internal/config"
	"github.com/dgallion1/xmlview/internal/metrics"
	"github.com/dgallion1/xmlview/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server for xmlview.
type Server struct {
	router  chi.Router
	store   *session.Store
	metrics *metrics.Registry
	log     *slog.Logger
	cfg     config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(store *session.Store, reg *metrics.Registry, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store:   store,
		metrics: reg,
		log:     log,
		cfg:     cfg,
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

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Document endpoints; authenticated only when an API key is set.
	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/documents", s.handleLoadDocument)
		r.Get("/api/documents", s.handleListDocuments)
		r.Get("/api/documents/{docID}", s.handleGetDocument)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)

		r.Get("/api/documents/{docID}/search", s.handleSearch)
		r.Get("/api/documents/{docID}/stats", s.handleDocumentStats)

		r.Post("/api/documents/{docID}/extract", s.handleExtract)
		r.Post("/api/documents/{docID}/extract/preview", s.handleExtractPreview)
		r.Get("/api/documents/{docID}/extract/download", s.handleExtractDownload)

		r.Get("/api/stats/ops", s.handleOpStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
