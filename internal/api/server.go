// Package api serves conversions over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/framecast/internal/config"
	"github.com/matzehuels/framecast/pkg/asset"
	"github.com/matzehuels/framecast/pkg/buildinfo"
	"github.com/matzehuels/framecast/pkg/cache"
	"github.com/matzehuels/framecast/pkg/observability"
	"github.com/matzehuels/framecast/pkg/store"
)

// Server is the HTTP API server for framecast.
type Server struct {
	router  chi.Router
	cache   cache.Cache
	store   store.Store
	fetcher asset.Fetcher
	hooks   observability.Hooks
	log     *log.Logger
	cfg     config.Config
}

// Option customizes a Server.
type Option func(*Server)

// WithFetcher replaces the HTTP image fetcher.
func WithFetcher(f asset.Fetcher) Option {
	return func(s *Server) { s.fetcher = f }
}

// WithHooks installs observability hooks on every conversion.
func WithHooks(h observability.Hooks) Option {
	return func(s *Server) { s.hooks = h }
}

// NewServer creates and configures the HTTP server. The cache is shared by
// every conversion; the caller owns and closes both backends.
func NewServer(c cache.Cache, st store.Store, logger *log.Logger, cfg config.Config, opts ...Option) *Server {
	s := &Server{
		cache: c,
		store: st,
		log:   logger,
		cfg:   cfg,
		hooks: observability.Hooks{
			Conversion: observability.NewLogConversionHooks(logger),
			Asset:      observability.NewLogAssetHooks(logger),
		},
	}
	for _, opt := range opts {
		opt(s)
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
	r.Get("/api/version", s.handleVersion)

	r.Post("/api/convert", s.handleConvert)
	r.Get("/api/conversions", s.handleListConversions)
	r.Route("/api/conversions/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetConversion)
		r.Delete("/", s.handleDeleteConversion)
		r.Get("/document", s.handleGetDocument)
		r.Get("/tree", s.handleTree)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Current())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
