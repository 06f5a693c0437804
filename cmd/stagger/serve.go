package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/newthinker/stagger/internal/api"
	"github.com/newthinker/stagger/internal/app"
	"github.com/newthinker/stagger/internal/logger"
	"github.com/newthinker/stagger/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analyzer web page and JSON API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, loaded, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.Must(debug || cfg.Server.Mode == "debug")
	defer logger.Sync(log)

	if !loaded {
		log.Warn("no config file specified, using defaults")
	}

	var reg *metrics.Registry
	if cfg.Metrics.Enabled {
		reg = metrics.NewRegistry()
	}

	a, err := app.FromConfig(cfg, log, reg)
	if err != nil {
		return err
	}

	srvCfg := api.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		APIKey:       cfg.Server.APIKey,
		TemplatesDir: cfg.Server.TemplatesDir,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	if cfg.Metrics.Enabled {
		srvCfg.MetricsPath = cfg.Metrics.Path
	}
	if cfg.RateLimit.Enabled {
		srvCfg.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		srvCfg.Burst = cfg.RateLimit.Burst
	}

	// Create API server
	server, err := api.NewServer(srvCfg, api.Dependencies{App: a, Metrics: reg}, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	log.Info("starting stagger server",
		zap.String("addr", server.Addr()),
		zap.Bool("auth", cfg.Server.APIKey != ""),
		zap.Bool("metrics", cfg.Metrics.Enabled),
		zap.Bool("export", a.ExportEnabled()),
	)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	log.Info("shutting down stagger server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
