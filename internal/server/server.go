// Package server exposes transcript retrieval over a small HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"yttranscript/internal/config"
	"yttranscript/internal/metrics"
	"yttranscript/youtube"
)

// Fetcher is the part of youtube.Transcriber the API needs.
type Fetcher interface {
	Fetch(ctx context.Context, input string, cfg youtube.TranscriptConfig) ([]youtube.TranscriptSegment, error)
	Inspect(ctx context.Context, input string, cfg youtube.TranscriptConfig) (*youtube.VideoInfo, error)
}

// Server serves the transcript API.
type Server struct {
	cfg     config.ServerConfig
	fetcher Fetcher
	metrics *metrics.Collector
	logger  zerolog.Logger
	router  *gin.Engine
}

// New builds the router. collector may be nil, in which case /metrics is
// not served.
func New(cfg config.ServerConfig, fetcher Fetcher, collector *metrics.Collector, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		fetcher: fetcher,
		metrics: collector,
		logger:  logger,
	}
	s.router = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(s.logger))
	if s.metrics != nil {
		router.Use(Metrics(s.metrics))
		router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}

	router.GET("/healthz", s.healthCheck)

	v1 := router.Group("/v1")
	{
		v1.GET("/transcript", s.getTranscript)
		v1.GET("/tracks", s.getTracks)
	}
	return router
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.cfg.Addr).Msg("starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down API server")
	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return <-errCh
}
