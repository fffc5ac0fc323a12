// Package server serves a mock route table over plain HTTP so the storefront
// can be pointed at it during manual runs. E2E tests can start and stop it
// without going through main().
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/thesyncim/pizzae2e/pkg/mockroute"
)

// Config holds server configuration options.
type Config struct {
	Addr         string        // Listen address (e.g., ":3000" or ":0" for random port)
	ReadTimeout  time.Duration // HTTP read timeout
	WriteTimeout time.Duration // HTTP write timeout
	AllowOrigin  string        // Access-Control-Allow-Origin value
}

// DefaultConfig returns a configuration suitable for testing.
// Uses ":0" to bind to a random available port.
func DefaultConfig() Config {
	return Config{
		Addr:         ":0",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		AllowOrigin:  "*",
	}
}

// Server answers backend calls from a mockroute.Registrar.
type Server struct {
	httpServer *http.Server
	routes     *mockroute.Registrar
	logger     *zap.Logger
	listener   net.Listener
	addr       string
	mu         sync.Mutex
	running    bool
}

// NewServer creates a server for routes. It is not started until Start is called.
func NewServer(cfg Config, routes *mockroute.Registrar, logger *zap.Logger) (*Server, error) {
	if routes == nil {
		return nil, errors.New("server: nil route table")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = "*"
	}

	s := &Server{routes: routes, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /{$}", s.serveIndex)
	mux.Handle("/", routes)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      cors(cfg.AllowOrigin, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

// cors adds permissive CORS headers and answers preflight requests. With
// origin "*" the request's Origin is echoed, since browsers reject a wildcard
// origin on credentialed requests.
func cors(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		allow := origin
		if reqOrigin := r.Header.Get("Origin"); origin == "*" && reqOrigin != "" {
			allow = reqOrigin
			h.Add("Vary", "Origin")
		}
		h.Set("Access-Control-Allow-Origin", allow)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		h.Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start begins listening and serving HTTP requests.
// Returns the actual address the server is listening on (useful when port is 0).
// This method is non-blocking - the server runs in a goroutine.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return s.addr, nil
	}

	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen: %w", err)
	}

	s.listener = ln
	s.addr = ln.Addr().String()
	s.running = true

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("mock api stopped", zap.Error(err))
		}
	}()

	s.logger.Info("mock api listening",
		zap.String("addr", s.addr),
		zap.Strings("routes", s.routes.Routes()))
	return s.addr, nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}

	s.running = false
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the address the server is listening on.
// Returns empty string if server was never started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}
