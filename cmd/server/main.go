package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/teveclub/internal/infrastructure/config"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/logging"
	"github.com/GriffinCanCode/teveclub/internal/infrastructure/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse flags
	port := flag.String("port", cfg.Server.Port, "Server port")
	upstreamURL := flag.String("upstream", cfg.Upstream.BaseURL, "Remote site base URL")
	profile := flag.String("profile", cfg.Upstream.ProfilePath, "Site profile file (yaml, toml or json)")
	dev := flag.Bool("dev", cfg.Logging.Development, "Development mode")
	flag.Parse()

	cfg.Server.Port = *port
	cfg.Upstream.BaseURL = *upstreamURL
	cfg.Upstream.ProfilePath = *profile
	cfg.Logging.Development = *dev

	level := cfg.Logging.Level
	if cfg.Logging.Development {
		level = "debug"
	}
	logger, err := logging.New(logging.Config{Level: level, Development: cfg.Logging.Development})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	// Create server
	srv, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create server", zap.Error(err))
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := srv.Run(); err != nil {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		logger.Info("Shutting down gracefully", zap.Stringer("signal", sig))
		if err := srv.Close(); err != nil {
			logger.Error("Error during shutdown", zap.Error(err))
		}
	case err := <-errChan:
		logger.Fatal("Server error", zap.Error(err))
	}
}
