// Package api exposes the assistant over HTTP REST.
//
// Endpoints:
//
//	POST   /api/chat                         answer one query
//	POST   /api/knowledge                    upload a document into the index
//	GET    /api/knowledge/sources            list indexed sources
//	DELETE /api/knowledge/sources/{name}     remove a source from the index
//	GET    /health                           liveness probe
//	GET    /ready                            readiness probe (pings the database)
//
// File structure:
//   - server.go: HTTP server setup and lifecycle
//   - middleware.go: request ID, logging, recovery
//   - health.go: health check endpoints
//   - chat.go: chat endpoint
//   - knowledge.go: knowledge base endpoints
//   - response.go: JSON response helpers
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/atriumhq/atrium/internal/dispatch"
	"github.com/atriumhq/atrium/internal/index"
	"github.com/atriumhq/atrium/internal/store"
)

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = "127.0.0.1:3500"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout bounds header reads to block Slowloris-style
	// connection hoarding.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Generation against a remote model can take a while.
	WriteTimeout = 120 * time.Second

	// IdleTimeout is the keep-alive idle limit.
	IdleTimeout = 120 * time.Second
)

// Server is the HTTP server for the assistant's REST API.
type Server struct {
	mux    *http.ServeMux
	logger *slog.Logger

	health    *HealthHandler
	chat      *ChatHandler
	knowledge *KnowledgeHandler
}

// NewServer creates an HTTP server with all routes registered.
func NewServer(d *dispatch.Dispatcher, idx *index.Index, st *store.Store, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		mux:       mux,
		logger:    logger.With("component", "api"),
		health:    NewHealthHandler(st, logger),
		chat:      NewChatHandler(d, logger),
		knowledge: NewKnowledgeHandler(idx, logger),
	}

	s.health.RegisterRoutes(mux)
	s.chat.RegisterRoutes(mux)
	s.knowledge.RegisterRoutes(mux)

	return s
}

// Handler returns the mux with middleware applied.
// Order: recovery -> request ID -> logging -> handler.
func (s *Server) Handler() http.Handler {
	return chain(s.mux,
		recoveryMiddleware(s.logger),
		requestIDMiddleware,
		loggingMiddleware(s.logger))
}

// Run starts the HTTP server and blocks until the context is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
