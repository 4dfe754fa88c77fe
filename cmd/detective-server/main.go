package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kumarlokesh/detective-quest/internal/api"
	"github.com/kumarlokesh/detective-quest/internal/casefile"
	"github.com/kumarlokesh/detective-quest/internal/config"
	"github.com/kumarlokesh/detective-quest/internal/logging"
	"github.com/kumarlokesh/detective-quest/internal/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run serves until ctx is done and returns the process exit code
func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("detective-server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "Path to config file")
	addr := fs.String("addr", "", "Server address (overrides server.host and server.port)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	listenAddr := cfg.Server.Addr()
	if *addr != "" {
		listenAddr = *addr
	}

	logger := logging.NewWithWriter(cfg.Log, stderr)

	c := casefile.Default()
	if cfg.Game.CaseFile != "" {
		c, err = casefile.Load(cfg.Game.CaseFile)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to load case")
			return 1
		}
	}
	tree, table, err := c.Build()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build case")
		return 1
	}

	store, err := session.New(cfg.Session)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize session store")
		return 1
	}
	if closer, ok := store.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Error().Err(err).Msg("Failed to close session store")
			}
		}()
	}

	// Verify the store is reachable
	if err := store.Ping(ctx); err != nil {
		logger.Error().Err(err).Str("backend", cfg.Session.Backend).Msg("Session store ping failed")
		return 1
	}
	logger.Info().Str("backend", cfg.Session.Backend).Msg("Session store ready")

	server := api.NewServer(listenAddr,
		api.Case{Tree: tree, Table: table, Roster: c.Roster()},
		store,
		api.Options{Tier: cfg.Tier(), Threshold: cfg.Game.MinClues},
		logger,
	)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", listenAddr).Msg("Starting detective server")
		serverErrors <- server.Start()
	}()

	select {
	case err := <-serverErrors:
		if err != nil {
			logger.Error().Err(err).Msg("Server error")
			return 1
		}
		return 0
	case <-ctx.Done():
		logger.Info().Msg("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
		return 1
	}
	logger.Info().Msg("Server gracefully stopped")
	return 0
}
