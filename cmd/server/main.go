// NewsPrep - News Article Search and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/newsprep

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	_ "github.com/tomtom215/newsprep/docs" // Import generated swagger docs
	"github.com/tomtom215/newsprep/internal/api"
	"github.com/tomtom215/newsprep/internal/config"
	"github.com/tomtom215/newsprep/internal/database"
	"github.com/tomtom215/newsprep/internal/logging"
	"github.com/tomtom215/newsprep/internal/metrics"
	"github.com/tomtom215/newsprep/internal/supervisor"
	"github.com/tomtom215/newsprep/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Caller:  cfg.Logging.Caller,
		Service: "newsprep",
		Version: version,
	})
	logger := logging.Logger()
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("environment", cfg.Server.Environment).
		Msg("Starting NewsPrep with supervisor tree")

	// Schema setup and the optional CSV import run inside database.New
	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	components, err := initComponents(cfg, db, logger)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize services")
		return
	}
	defer components.Close()

	eventComponents, err := initEvents(&cfg.Events, db, logger)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to initialize event pipeline")
		return
	}
	defer eventComponents.Close()

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	deps := api.Dependencies{
		DB:          db,
		Embeddings:  components.Embeddings,
		Recommender: components.Recommender,
		Search:      components.Search,
		Topics:      components.Topics,
		Events:      eventComponents.Ingestor,
		Summarizer:  components.Summarizer,
		Quizzes:     components.Quizzes,
		Index:       components.Index,
		Assistant:   components.Assistant,
		Version:     version,
	}
	router := api.NewRouter(api.NewHandler(deps), &cfg.Server, &cfg.Security, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.GenerationTimeout + cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog needs slog; the adapter forwards to zerolog
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Error().Err(err).Msg("Failed to create supervisor tree")
		return
	}

	// === ADD SERVICES TO SUPERVISOR TREE ===

	if components.Index != nil {
		tree.AddDataService(services.NewIndexBuilderService(components.Index, services.IndexBuilderConfig{
			RebuildInterval: cfg.RAG.RebuildInterval,
		}, logger))
		logging.Info().Dur("rebuild_interval", cfg.RAG.RebuildInterval).Msg("Index builder added to supervisor tree")
	}
	if eventComponents.Router != nil {
		tree.AddMessagingService(services.NewEventRouterService(eventComponents.Router, cfg.Events.CloseTimeout))
		logging.Info().Msg("Event router added to supervisor tree")
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The channel delivers exactly one value and is never closed
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
