// Package server exposes the projection over HTTP as a small JSON service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Config controls the service runtime behavior.
type Config struct {
	Addr   string
	Logger *zap.Logger
}

// Status is served at /v1/status.
type Status struct {
	StartedAt time.Time `json:"started_at"`
	UptimeSec int64     `json:"uptime_sec"`
	Addr      string    `json:"addr"`
	Requests  int64     `json:"requests"`
	Computed  int64     `json:"computed"`
	Rejected  int64     `json:"rejected"`
	Invalid   int64     `json:"invalid"`
}

// Service provides the HTTP API. Requests are independent; the only shared
// state is the set of counters below.
type Service struct {
	cfg     Config
	log     *zap.Logger
	metrics *metrics

	mu        sync.RWMutex
	startedAt time.Time
	requests  int64
	computed  int64
	rejected  int64
	invalid   int64
}

// New returns a new service with the provided config.
func New(cfg Config) *Service {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8790"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Service{
		cfg:       cfg,
		log:       cfg.Logger,
		metrics:   newMetrics(),
		startedAt: time.Now(),
	}
}

// Handler returns the routed HTTP handler with request logging applied.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/project", s.handleProjectQuery)
	mux.HandleFunc("POST /v1/project", s.handleProjectBody)
	mux.Handle("GET /metrics", s.metrics.handler())

	return s.withRequestLog(mux)
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info("listening", zap.String("addr", s.cfg.Addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("lifeclock http server: %w", err)
	}
}

// record counts one projection attempt by outcome.
func (s *Service) record(outcome string, total float64, counted bool) {
	s.mu.Lock()
	switch outcome {
	case outcomeComputed:
		s.computed++
	case outcomeRejected:
		s.rejected++
	default:
		s.invalid++
	}
	s.mu.Unlock()

	s.metrics.projections.WithLabelValues(outcome).Inc()
	if counted {
		s.metrics.totalHours.Observe(total)
	}
}

func (s *Service) countRequest() {
	s.mu.Lock()
	s.requests++
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt: s.startedAt,
		UptimeSec: int64(time.Since(s.startedAt).Seconds()),
		Addr:      s.cfg.Addr,
		Requests:  s.requests,
		Computed:  s.computed,
		Rejected:  s.rejected,
		Invalid:   s.invalid,
	}
}
