// Package server exposes a local HTTP inspection API over the pressure
// store, the suggestion chain, and the checkpoint directory. It exists for
// humans poking at state; the hooks never depend on it.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/lazypower/hologram/internal/pressure"
	"github.com/lazypower/hologram/internal/store"
	"github.com/lazypower/hologram/internal/suggest"
)

// Server is the hologram HTTP inspection server.
type Server struct {
	db            *store.DB
	pressure      *pressure.Store
	engine        *suggest.Engine
	checkpointDir string
	version       string
	started       time.Time
	router        chi.Router
}

// New creates a Server over the given collaborators.
func New(db *store.DB, ps *pressure.Store, engine *suggest.Engine, checkpointDir, version string) *Server {
	s := &Server{
		db:            db,
		pressure:      ps,
		engine:        engine,
		checkpointDir: checkpointDir,
		version:       version,
		started:       time.Now(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/pressure", s.handlePressure)
		r.Get("/context", s.handleContext)
		r.Get("/checkpoints", s.handleCheckpoints)
		r.Get("/checkpoints/latest", s.handleLatestCheckpoint)
		r.Get("/memories", s.handleMemories)
		r.Post("/decay", s.handleDecay)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	dbOK := true
	if err := s.db.Ping(); err != nil {
		dbOK = false
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"db":      dbOK,
		"db_path": s.db.Path,
	})
}
