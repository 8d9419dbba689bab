// Package server exposes the chat engine and the conversation store over
// HTTP. Handlers are thin: decode, delegate, encode. Turn endpoints never
// surface engine failures as HTTP errors; the failure reply is part of
// the conversational contract and goes back with status 200.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"urbangpt/config"
	"urbangpt/engine"
	"urbangpt/logging"
	"urbangpt/storage"
)

// defaultUserID stands in when a request carries no X-User-ID header.
// Single-user deployments never set the header.
const defaultUserID = "local"

type Server struct {
	cfg    *config.Config
	store  *storage.Store
	engine *engine.Engine
	log    *logging.Logger
	http   *http.Server
}

func New(cfg *config.Config, store *storage.Store, eng *engine.Engine, log *logging.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		store:  store,
		engine: eng,
		log:    log,
	}
	s.http = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router wires middleware and routes. Split out from New so tests can
// mount the handler tree on httptest servers.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/analysis", s.handleTurn(s.engine.Analysis))
		r.Post("/qna", s.handleTurn(s.engine.QnA))
		r.Post("/report", s.handleTurn(s.engine.Report))

		r.Post("/upload", s.handleUpload)

		r.Post("/chats", s.handleCreateChat)
		r.Get("/chats", s.handleListChats)
		r.Get("/chats/{id}", s.handleGetChat)

		r.Post("/projects", s.handleCreateProject)
		r.Get("/projects", s.handleListProjects)
		r.Delete("/projects/{id}", s.handleDeleteProject)
		r.Get("/projects/{id}/stages", s.handleListStages)
		r.Post("/stages/{id}/chat", s.handleAttachChat)
		r.Post("/stages/{id}/status", s.handleStageStatus)
	})

	return r
}

func (s *Server) ListenAndServe() error {
	s.log.Printf("listening on %s", s.http.Addr)
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

// requestLogger records method, path, status and duration per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Printf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return defaultUserID
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
