// Package server exposes a loaded dependency graph over HTTP.
//
// Routes:
//
//	GET /healthz                              liveness check
//	GET /api/packages                         every package with its direct dependencies
//	GET /api/tree/{name}?exclude=&direction=  traversal records from name
//	GET /api/diagram?format=d2|dot|json       the whole graph as a diagram
//	GET /metrics                              Prometheus metrics
//
// Every response carries an X-Request-ID header; an incoming one is kept,
// otherwise a random UUID is assigned.
package server

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/deptree/pkg/graph"
)

// Server serves one graph. The graph can be replaced while serving with
// [Server.Swap]; handlers never see a partially loaded graph.
type Server struct {
	logger   *log.Logger
	registry *prometheus.Registry
	metrics  *metrics
	router   chi.Router

	mu    sync.RWMutex
	graph *graph.Graph
	root  string
}

// New creates a server for g. root is the package reported as the default
// tree root; it may be empty. A nil logger discards request logs.
func New(g *graph.Graph, root string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		logger:   logger,
		registry: reg,
		metrics:  newMetrics(reg),
	}
	s.Swap(g, root)

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.healthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/packages", s.packages)
		r.Get("/tree/*", s.tree)
		r.Get("/diagram", s.diagram)
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Swap replaces the served graph.
func (s *Server) Swap(g *graph.Graph, root string) {
	s.mu.Lock()
	s.graph, s.root = g, root
	s.mu.Unlock()
	s.metrics.packages.Set(float64(g.Len()))
	s.metrics.edges.Set(float64(g.EdgeCount()))
}

func (s *Server) snapshot() (*graph.Graph, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph, s.root
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutCtx)
}
