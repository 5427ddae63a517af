// # internal/api/server.go
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"

	"sherlock/internal/core/app"
	"sherlock/internal/core/config"
	"sherlock/internal/shared/util"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the extraction service over HTTP.
type Server struct {
	app     *app.App
	health  *app.HealthService
	cfg     config.Server
	metrics bool
	spec    []byte
	limiter *util.LimiterRegistry
	server  *http.Server
}

func NewServer(a *app.App) (*Server, error) {
	doc, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	spec, err := specJSON(doc)
	if err != nil {
		return nil, err
	}

	s := &Server{
		app:     a,
		health:  app.NewHealthService(a),
		cfg:     a.Config.Server,
		metrics: a.Config.Observability.MetricsEnabled,
		spec:    spec,
	}

	rl := a.Config.RateLimit
	if rl.Enabled {
		s.limiter = util.NewLimiterRegistry(rl.RequestsPerSecond(), rl.Burst, rl.IdleTTL)
	}
	return s, nil
}

// Handler returns the full middleware chain and routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /openapi.json", s.handleOpenAPI)
	if s.metrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	mux.Handle("POST /extract/{repo}/{file...}", s.instrument("extract", s.handleExtract))
	mux.Handle("POST /extract-deps/{repo}/{file...}", s.instrument("extract_deps", s.handleExtractDeps))
	mux.Handle("POST /hash/{repo}/{file...}", s.instrument("hash", s.handleHash))

	var h http.Handler = mux
	h = s.rateLimit(h)
	h = cors(s.cfg.CORSAllowedOrigins, h)
	h = logRequests(h)
	h = requestID(h)
	return h
}

// Start serves on the configured address until ctx is canceled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Start with a caller-provided listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("indexer listening", "addr", ln.Addr().String())
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		s.stopLimiter()
		return err
	case <-ctx.Done():
		return s.Stop()
	}
}

func (s *Server) Stop() error {
	defer s.stopLimiter()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	slog.Info("indexer shutting down")
	return s.server.Shutdown(ctx)
}

func (s *Server) stopLimiter() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
