// Package web provides the HTTP server and handlers for the metadata
// service: entity mutation, CSV/XML export, spreadsheet import, and the
// validation pass-through.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/SayMoreX/digame/internal/config"
	"github.com/SayMoreX/digame/internal/folder"
	"github.com/SayMoreX/digame/internal/importer"
	"github.com/SayMoreX/digame/internal/validate"
)

// Server is the HTTP server for the metadata service. It owns one in-memory
// project; persistence is out of scope and lives behind other services.
type Server struct {
	cfg       *config.Config
	project   *folder.Project
	mapping   importer.MappingTable
	validator *validate.Client

	// mu guards the shared project's field data. The project's own mutex
	// covers only its session and person collections, so concurrent field
	// mutation and export reads need this one.
	mu sync.RWMutex

	router *chi.Mux
	server *http.Server
}

// NewServer creates a new Server instance. validator may be nil, in which
// case the validation endpoint reports the service as unconfigured.
func NewServer(cfg *config.Config, mapping importer.MappingTable, validator *validate.Client) *Server {
	s := &Server{
		cfg:       cfg,
		project:   folder.NewProject(),
		mapping:   mapping,
		validator: validator,
		router:    chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))

	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// Entity mutation
		r.Put("/project", s.handleUpdateProject)
		r.Get("/project", s.handleGetProject)
		r.Post("/sessions", s.handleCreateSession)
		r.Get("/sessions", s.handleListSessions)
		r.Post("/people", s.handleCreatePerson)
		r.Get("/people", s.handleListPeople)
		r.Get("/retired-sessions", s.handleListRetiredSessions)

		// Export
		r.Get("/export/csv", s.handleExportCsvZip)
		r.Get("/export/project/xml", s.handleExportProjectXml)
		r.Get("/export/sessions/{id}/xml", s.handleExportSessionXml)
		r.Get("/export/sessions/{id}/imdi", s.handleExportSessionImdi)

		// Spreadsheet import
		r.Post("/import/sessions", s.handleImportSessions)

		// External schema validation
		r.Post("/validate/sessions/{id}", s.handleValidateSession)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	slog.Info("starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Project returns the server's in-memory project.
func (s *Server) Project() *folder.Project {
	return s.project
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// writeError writes a JSON error response and logs the full message.
func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	slog.Default().WarnContext(ctx, "request failed", "status", status, "error", message)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
