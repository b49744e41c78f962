// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the source adapters over a read-only HTTP API.
// Every search route answers with the adapter's envelope; failures keep the
// envelope body and map its error class to an HTTP status.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pdiddy/frontier-search/internal/search"
	"github.com/pdiddy/frontier-search/pkg/types"
)

// ArxivSearcher is the archive adapter surface used by the server.
type ArxivSearcher interface {
	Search(ctx context.Context, query string, opts search.ArxivOptions) types.Envelope
}

// HFSearcher is the curated-feed adapter surface used by the server.
type HFSearcher interface {
	Search(ctx context.Context, query string, opts search.HFOptions) types.Envelope
	Trending(ctx context.Context, opts search.HFOptions) types.Envelope
	Detail(ctx context.Context, id string) types.DetailEnvelope
}

// SemanticSearcher is the citation-graph adapter surface used by the server.
type SemanticSearcher interface {
	Search(ctx context.Context, query string, opts search.SemanticOptions) types.Envelope
	Detail(ctx context.Context, id string) types.DetailEnvelope
}

// PerplexitySearcher is the LLM adapter surface used by the server.
type PerplexitySearcher interface {
	Search(ctx context.Context, query string, opts search.PerplexityOptions) types.Envelope
}

// Sources groups the adapters mounted by the server. A nil source leaves its
// routes unregistered.
type Sources struct {
	Arxiv      ArxivSearcher
	HF         HFSearcher
	Semantic   SemanticSearcher
	Perplexity PerplexitySearcher
}

const defaultShutdownTimeout = 10 * time.Second

// Server is the HTTP API server.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	sources    Sources
	gatherer   prometheus.Gatherer
	logger     zerolog.Logger
	shutdown   time.Duration
}

// New creates a server for sources. gatherer backs /metrics; nil uses the
// default registry.
func New(cfg types.ServerConfig, sources Sources, gatherer prometheus.Gatherer, logger zerolog.Logger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		sources:  sources,
		gatherer: gatherer,
		logger:   logger.With().Str("component", "http-server").Logger(),
		shutdown: cfg.ShutdownTimeout,
	}
	if s.shutdown <= 0 {
		s.shutdown = defaultShutdownTimeout
	}

	s.router = s.buildRouter()
	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.healthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		if s.sources.Arxiv != nil {
			r.Get("/arxiv/search", s.arxivSearch)
		}
		if s.sources.HF != nil {
			r.Get("/hf/search", s.hfSearch)
			r.Get("/hf/trending", s.hfTrending)
			r.Get("/hf/papers/{id}", s.hfDetail)
		}
		if s.sources.Semantic != nil {
			r.Get("/semantic/search", s.semanticSearch)
			r.Get("/semantic/papers/{id}", s.semanticDetail)
		}
		if s.sources.Perplexity != nil {
			r.Get("/perplexity/search", s.perplexitySearch)
		}
	})

	return r
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("address", s.httpServer.Addr).Msg("HTTP server starting")
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on HTTP address: %w", err)
	}
	return s.httpServer.Serve(ln)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		logger := s.logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
		next.ServeHTTP(ww, r.WithContext(logger.WithContext(r.Context())))
		logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
