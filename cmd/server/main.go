// Package main provides the entry point for the race-lens HTTP server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-lens/internal/analysis"
	"github.com/yourusername/race-lens/internal/config"
	"github.com/yourusername/race-lens/internal/logger"
	"github.com/yourusername/race-lens/internal/metrics"
	"github.com/yourusername/race-lens/internal/server"
	"github.com/yourusername/race-lens/internal/service"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"data_dir":    cfg.Data.RaceDataDir,
	}).Info("Race Lens server starting")

	// Initialize metrics registry
	metrics.InitRegistry()

	// Wire the analysis pipeline
	loader := service.NewRaceDataLoader(cfg.Data.RaceDataDir, appLog)
	analyzer := analysis.NewAnalyzerWithTakeout(appLog, cfg.Analysis.Takeout)
	svc := service.NewAnalysisService(loader, analyzer, cfg.CacheTTL(), cfg.CacheCleanupInterval(), appLog)

	srv := server.New(cfg, svc, appLog)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case sig := <-sigChan:
		appLog.WithField("signal", sig).Info("Shutdown signal received")
	case err := <-errChan:
		if err != nil {
			appLog.WithError(err).Fatal("HTTP server failed")
		}
		return
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeoutSeconds)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.WithError(err).Error("Error during server shutdown")
	}

	appLog.Info("Shutdown complete")
}
