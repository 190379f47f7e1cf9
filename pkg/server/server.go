package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stagekit-dev/stagekit/pkg/state"
)

// Config holds server settings. Zero values fall back to defaults.
type Config struct {
	Host string
	Port int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// CheckOrigin overrides the WebSocket origin check. Default: allow
	// same-origin only (the gorilla default).
	CheckOrigin func(r *http.Request) bool

	// Metrics exposes /metrics when true.
	Metrics bool
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         4600,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Metrics:      true,
	}
}

// Server serves one engine's state.
type Server struct {
	eng    *state.Engine
	mu     sync.Mutex // serializes all engine access
	config Config
	logger *slog.Logger

	upgrader websocket.Upgrader
	hub      *hub
	http     *http.Server
}

// New creates a server over eng and subscribes to its state changes.
func New(eng *state.Engine, config Config) *Server {
	defaults := DefaultConfig()
	if config.Host == "" {
		config.Host = defaults.Host
	}
	if config.Port == 0 {
		config.Port = defaults.Port
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = defaults.ReadTimeout
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}

	logger := slog.Default().With("component", "server")
	s := &Server{
		eng:    eng,
		config: config,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		hub: newHub(logger),
	}
	eng.OnStateChange(s, func(paths []string) {
		s.hub.broadcast(paths)
	})
	return s
}

// Router builds the HTTP surface.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/state", s.handleState)
	r.Get("/structure", s.handleStructure)
	r.Post("/transition", s.handleTransition)
	r.Get("/live", s.handleLive)
	if s.config.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}
	return r
}

// ListenAndServe starts serving and blocks until the server stops.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.logger.Info("serving view state", "addr", addr)
	return s.http.ListenAndServe()
}

// Shutdown stops the server gracefully, closing live connections first.
func (s *Server) Shutdown(ctx context.Context) error {
	s.eng.OffStateChange(s)
	s.hub.closeAll()
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger { return s.logger }

// SetLogger replaces the server's logger.
func (s *Server) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
		s.hub.logger = logger
	}
}
