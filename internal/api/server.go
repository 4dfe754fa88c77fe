package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/kumarlokesh/detective-quest/internal/game"
	"github.com/kumarlokesh/detective-quest/internal/mansion"
	"github.com/kumarlokesh/detective-quest/internal/session"
	"github.com/kumarlokesh/detective-quest/internal/suspects"
)

// Case is the read-only game data shared by every session
type Case struct {
	Tree   *mansion.Tree
	Table  *suspects.Table
	Roster []string
}

// Options tunes new sessions
type Options struct {
	Tier      game.Tier
	Threshold int
}

// Server represents the HTTP API server
type Server struct {
	cs     Case
	opts   Options
	store  session.Store
	logger zerolog.Logger
	server *http.Server

	// locks serialises requests on the same session
	locks *lockMap
}

// NewServer creates a new API server
func NewServer(addr string, cs Case, store session.Store, opts Options, logger zerolog.Logger) *Server {
	if opts.Tier == "" {
		opts.Tier = game.TierMaster
	}
	if opts.Threshold == 0 {
		opts.Threshold = game.DefaultThreshold
	}

	s := &Server{
		cs:     cs,
		opts:   opts,
		store:  store,
		logger: logger,
		locks:  newLockMap(),
	}

	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/healthz", s.health).Methods("GET")
	r.HandleFunc("/suspects", s.listSuspects).Methods("GET")

	// Session operations
	r.HandleFunc("/sessions", s.createSession).Methods("POST")
	r.HandleFunc("/sessions/{id}", s.getSession).Methods("GET")
	r.HandleFunc("/sessions/{id}", s.deleteSession).Methods("DELETE")
	r.HandleFunc("/sessions/{id}/moves", s.move).Methods("POST")
	r.HandleFunc("/sessions/{id}/clues", s.listClues).Methods("GET")
	r.HandleFunc("/sessions/{id}/accusation", s.accuse).Methods("POST")

	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler for the server
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Addr returns the address the server is configured to listen on
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start listens on the configured address and serves until Shutdown
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	s.logger.Info().Str("addr", listener.Addr().String()).Msg("Server listening")

	if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down server")
	return s.server.Shutdown(ctx)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("Handled request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) lock(id string) func() {
	return s.locks.lock(id)
}

// Helper functions for HTTP responses
func (s *Server) respond(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.respond(w, status, map[string]string{"error": err.Error()})
}
