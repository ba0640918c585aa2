package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jinkoo2/DocuForms/internal/config"
	"github.com/jinkoo2/DocuForms/internal/docstore"
)

// Server is the HTTP API for the form-document engine.
type Server struct {
	router chi.Router
	store  *docstore.Client
	log    *slog.Logger
	cfg    config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(store *docstore.Client, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		store: store,
		log:   log,
		cfg:   cfg,
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

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.FormsAPIKey, s.log))

		r.Post("/api/render", s.handleRender)
		r.Post("/api/documents/validate", s.handleValidate)
		r.Put("/api/documents/{docID}", s.handleSaveDocument)
		r.Post("/api/documents/{docID}/submissions", s.handleCreateSubmission)
		r.Get("/api/documents/{docID}/submissions", s.handleListSubmissions)
		r.Post("/api/import", s.handleImport)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
