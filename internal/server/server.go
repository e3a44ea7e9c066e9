package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-lens/internal/config"
	"github.com/yourusername/race-lens/internal/service"
)

// Server wraps the HTTP server with its configured router.
type Server struct {
	httpServer *http.Server
	logger     *logrus.Logger
}

// New builds a server from the configuration and analysis service.
func New(cfg *config.Config, svc *service.AnalysisService, logger *logrus.Logger) *Server {
	handler := NewHandler(svc, cfg.Analysis.PriorityThreshold, logger)
	router := NewRouter(handler, cfg.Server.CORSOrigins)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.ServerAddr(),
			Handler:      router,
			ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
			WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		},
		logger: logger,
	}
}

// Start begins serving requests, blocking until the listener fails or the
// server shuts down.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("Starting HTTP server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
