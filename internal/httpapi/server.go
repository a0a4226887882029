// Package httpapi exposes the portal over HTTP: project views, playbook
// application, task and file endpoints, and the knowledge feed.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/coveyrise/steward/internal/feed"
	"github.com/coveyrise/steward/internal/service"
)

// Config carries the listener settings and the static portal token.
type Config struct {
	Addr         string
	Token        string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = "127.0.0.1:8080"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60 * time.Second
	}
	return c
}

// Services groups everything the handlers need.
type Services struct {
	Projects  service.ProjectService
	Tasks     service.TaskService
	Playbooks service.PlaybookService
	Funding   service.FundingService
	Files     service.FileService
	Feed      *feed.Reader
}

// Server wraps the HTTP listener and portal handlers.
type Server struct {
	cfg      Config
	services Services
	logger   *slog.Logger
	clock    func() time.Time

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

type Option func(*Server)

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock allows tests to control timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Server) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewServer(cfg Config, services Services, opts ...Option) *Server {
	s := &Server{
		cfg:      cfg.withDefaults(),
		services: services,
		logger:   slog.Default(),
		clock:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the route table. Exposed for httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	guarded := http.NewServeMux()
	guarded.HandleFunc("GET /portal/projects/{id}", s.handleProjectView)
	guarded.HandleFunc("POST /portal/projects/{id}/playbooks/apply", s.handleApplyPlaybook)
	guarded.HandleFunc("GET /api/projects", s.handleListProjects)
	guarded.HandleFunc("POST /api/projects", s.handleCreateProject)
	guarded.HandleFunc("POST /api/tasks", s.handleCreateTask)
	guarded.HandleFunc("POST /api/tasks/{id}/done", s.handleTaskDone)
	guarded.HandleFunc("POST /api/files", s.handleUploadFile)
	guarded.HandleFunc("GET /api/files/{id}", s.handleDownloadFile)
	guarded.HandleFunc("GET /api/knowledge", s.handleKnowledge)
	mux.Handle("/portal/", s.requireToken(guarded))
	mux.Handle("/api/", s.requireToken(guarded))

	return s.logRequests(mux)
}

// Start binds the TCP listener and begins serving HTTP traffic.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return fmt.Errorf("httpapi: server already started")
	}
	listener, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("httpapi: listen %s: %w", s.cfg.Addr, err)
	}
	s.listener = listener
	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	if ctx != nil {
		server.BaseContext = func(net.Listener) context.Context { return ctx }
	}
	s.server = server
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("serve error", "err", err)
		}
	}()
	s.logger.Info("portal listening", "addr", listener.Addr().String())
	return nil
}

// Shutdown stops accepting new connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return nil
	}
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.listener = nil
	s.server = nil
	return nil
}

// Addr returns the bound TCP address once the server has started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.clock()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   s.clock().Format(time.RFC3339),
	})
}
