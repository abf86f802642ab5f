// Package main is the entry point for Cave Diver.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/term"

	"github.com/samdwyer/cavediver/internal/debugserver"
	"github.com/samdwyer/cavediver/internal/game"
	"github.com/samdwyer/cavediver/internal/telemetry"
	"github.com/samdwyer/cavediver/internal/ui"
)

func main() {
	// Load .env file for local development
	// This makes HONEYCOMB_CAVEDIVER_API_KEY available
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	// Set up OTEL environment variables from our .env variables
	setupOTelEnv()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatalf("cavediver must be run in a terminal")
	}

	cfg, err := game.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.Setup(ctx, logger,
		attribute.String("game.level", cfg.Level),
		attribute.Int64("game.seed", cfg.Seed),
	)
	if err != nil {
		logger.Error(err, "telemetry setup failed, running without observability")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(ctx); err != nil {
				logger.Error(err, "shutting down telemetry")
			}
		}()
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	// Create and run game
	g, err := game.New(ctx, cfg, logger, screen)
	if err != nil {
		screen.Close()
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if cfg.DebugAddr != "" {
		srv := debugserver.New(cfg.DebugAddr, g, logger)
		if _, err := srv.Start(ctx); err != nil {
			logger.Error(err, "debug server not started", "addr", cfg.DebugAddr)
		} else {
			defer srv.Shutdown(context.Background())
		}
	}

	if err := g.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Game error: %v", err)
	}
}

// newLogger returns a logger writing to the configured log file, so log
// output never lands on the game screen.
func newLogger(cfg game.Config) (logr.Logger, func(), error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return logr.Discard(), func() {}, err
	}
	stdr.SetVerbosity(cfg.LogVerbosity)
	logger := stdr.New(log.New(f, "", log.LstdFlags)).WithValues("session", telemetry.SessionID())
	return logger, func() { f.Close() }, nil
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	// Always set endpoint to Honeycomb
	os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")

	// Always set headers from our API key - the .env file may have an unexpanded
	// variable reference that doesn't work, so we construct it properly here
	apiKey := os.Getenv("HONEYCOMB_CAVEDIVER_API_KEY")
	dataset := os.Getenv("HONEYCOMB_CAVEDIVER_DATASET")
	if dataset == "" {
		dataset = "cavediver" // default dataset name
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
