//-------------------------------------------------------------------------
//
// Brew RAG Server
//
// Portions copyright (c) 2025 - 2026, Coffeehaus, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/coffeehaus/brew-rag-server/internal/config"
	"github.com/coffeehaus/brew-rag-server/internal/llm/registry"
	"github.com/coffeehaus/brew-rag-server/internal/pipeline"
	"github.com/coffeehaus/brew-rag-server/internal/retrieval"
	"github.com/coffeehaus/brew-rag-server/internal/server"
	"github.com/coffeehaus/brew-rag-server/internal/store"
)

// Version information - set via ldflags during build
var (
	version   = "1.0.0"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help message")
		configPath  = flag.String("config", "", "Path to configuration file")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Brew RAG Server - Retrieval-augmented chat for the coffee shop

Usage:
    brew-rag-server [options]

Options:
    -config string
        Path to configuration file. If not specified, searches:
        1. /etc/coffeehaus/brew-rag-server.yaml
        2. brew-rag-server.yaml (in binary directory)

    -version
        Show version information and exit

    -help
        Show this help message and exit
`)
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Printf("Brew RAG Server\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Build Time: %s\n", buildTime)
		fmt.Printf("  Git Commit: %s\n", gitCommit)
		os.Exit(0)
	}

	// A .env in the working directory supplies API keys during
	// development. Missing file is fine.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(*configPath, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Info("configuration loaded",
		"providers", cfg.Providers.Enabled,
		"default_provider", cfg.Providers.Default)

	keys, err := config.NewAPIKeyLoader(cfg.APIKeys).LoadRequiredKeys(cfg.Providers.Enabled)
	if err != nil {
		return fmt.Errorf("failed to load API keys: %w", err)
	}

	ctx := context.Background()

	db, err := store.NewStore(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	providers, err := registry.New(cfg, keys)
	if err != nil {
		return fmt.Errorf("failed to build providers: %w", err)
	}

	retriever := retrieval.NewCatalogRetriever(db, cfg.Retrieval.CandidateLimit)

	orchestrator := pipeline.New(retriever, providers, cfg.Retrieval.TopK,
		pipeline.WithLogger(logger))

	srv := server.New(cfg, orchestrator, db, logger)

	// Handle graceful shutdown
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-shutdownCh:
		logger.Info("received shutdown signal", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	}
}
