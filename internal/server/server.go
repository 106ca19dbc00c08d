// Package server exposes the tip box editor's backend over HTTP: the AI
// CSS proxy, template gallery, previews, health and metrics.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/yacobolo/tipbox"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = ":8080"

// DefaultCacheMB is the default preview cache size.
const DefaultCacheMB = 16

// shutdownTimeout bounds the graceful shutdown.
const shutdownTimeout = 5 * time.Second

// Server handles the HTTP API.
type Server struct {
	assistant tipbox.Assistant
	aiEnabled bool
	templates []tipbox.Template
	cache     Cache
	metrics   Metrics
	registry  *prometheus.Registry
	logger    zerolog.Logger
	newID     func() string
	started   time.Time

	handler http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithAIEnabled switches the AI endpoint on or off. It is on by default.
func WithAIEnabled(on bool) Option {
	return func(s *Server) { s.aiEnabled = on }
}

// WithTemplates sets the gallery served by the template endpoints.
func WithTemplates(templates []tipbox.Template) Option {
	return func(s *Server) { s.templates = templates }
}

// WithCacheSize sets the preview cache size in megabytes. Zero disables it.
func WithCacheSize(mb int) Option {
	return func(s *Server) { s.cache = NewCache(mb) }
}

// WithRegistry enables metrics, registered on reg and served on /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) { s.registry = reg }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithSessionIDs replaces the generator of AI session ids.
func WithSessionIDs(fn func() string) Option {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates a server answering AI requests with assistant. A nil
// assistant is treated as unconfigured.
func New(assistant tipbox.Assistant, opts ...Option) *Server {
	s := &Server{
		assistant: assistant,
		aiEnabled: true,
		templates: tipbox.BuiltinTemplates(),
		cache:     NewCache(DefaultCacheMB),
		logger:    zerolog.Nop(),
		newID:     uuid.NewString,
		started:   time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.metrics = noopMetrics{}
	if s.registry != nil {
		s.metrics = NewMetrics(s.registry)
	}
	s.cache = newMetricsCache(s.cache, s.metrics)
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("POST /api/ai-css", s.handleAIEdit)
	api.HandleFunc("GET /api/templates", s.handleTemplates)
	api.HandleFunc("GET /api/templates/{id}/preview", s.handleTemplatePreview)
	api.HandleFunc("POST /api/preview", s.handlePreview)

	instrumented := MetricsMiddleware(s.metrics, api)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry}))
	}
	mux.Handle("/", instrumented)

	return LoggingMiddleware(s.logger, mux)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		// No WriteTimeout: AI answers stream for minutes
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("shutdown signal received")
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info().Msg("gracefully stopped")
	return nil
}
