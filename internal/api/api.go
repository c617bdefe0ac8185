// Package api implements the REST API.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vmunix/mediatheque/internal/artwork"
	"github.com/vmunix/mediatheque/internal/auth"
	"github.com/vmunix/mediatheque/internal/cache"
	"github.com/vmunix/mediatheque/internal/catalog"
	"github.com/vmunix/mediatheque/internal/progress"
	"github.com/vmunix/mediatheque/internal/source"
)

// Server is the API server.
type Server struct {
	catalog  *catalog.Service
	source   source.Source
	artwork  *artwork.MemoryStore
	progress *progress.Store
	users    *auth.UserStore
	tokens   *auth.Service
	results  *cache.Cache
	logger   *slog.Logger
}

// Option configures the server.
type Option func(*Server)

// WithAuth enables token authentication. Without it every request is
// treated as the anonymous user.
func WithAuth(users *auth.UserStore, tokens *auth.Service) Option {
	return func(s *Server) {
		s.users = users
		s.tokens = tokens
	}
}

// WithProgress enables the playback progress endpoints.
func WithProgress(store *progress.Store) Option {
	return func(s *Server) { s.progress = store }
}

// WithArtwork enables artwork serving.
func WithArtwork(store *artwork.MemoryStore) Option {
	return func(s *Server) { s.artwork = store }
}

// WithResultCache caches category listings between requests.
func WithResultCache(c *cache.Cache) Option {
	return func(s *Server) { s.results = c }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// New creates the API server.
func New(cat *catalog.Service, src source.Source, opts ...Option) *Server {
	s := &Server{
		catalog: cat,
		source:  src,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("POST /api/v1/auth/login", s.login)

	// Catalog
	mux.HandleFunc("GET /api/v1/categories", s.auth(s.listCategories))
	mux.HandleFunc("GET /api/v1/categories/{category}", s.auth(s.listCategory))
	mux.HandleFunc("GET /api/v1/search", s.auth(s.search))

	// Media
	mux.HandleFunc("GET /api/v1/stream", s.auth(s.stream))
	mux.HandleFunc("GET /api/v1/artwork/{ref}", s.auth(s.getArtwork))

	// Progress
	mux.HandleFunc("GET /api/v1/progress", s.auth(s.requireProgress(s.listProgress)))
	mux.HandleFunc("PUT /api/v1/progress/{item}", s.auth(s.requireProgress(s.putProgress)))
	mux.HandleFunc("GET /api/v1/progress/{item}", s.auth(s.requireProgress(s.getProgress)))
	mux.HandleFunc("DELETE /api/v1/progress/{item}", s.auth(s.requireProgress(s.deleteProgress)))

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
	mux.HandleFunc("POST /api/v1/refresh", s.auth(s.refresh))
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}
