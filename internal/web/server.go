// Package web serves the capture directory over HTTP.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":8000"

// Server is a static file server over the capture directory.
type Server struct {
	server *http.Server
	dir    string
}

// NewServer creates a server for dir listening on addr.
func NewServer(addr, dir string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	s := &Server{dir: dir}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           Handler(dir),
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

// Handler returns the file-serving handler for dir.
func Handler(dir string) http.Handler {
	return http.FileServer(http.Dir(dir))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("file server listening", "addr", s.server.Addr, "dir", s.dir)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down file server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
