// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

// Package main is the entry point for the VistaGuide recognition server.
//
// VistaGuide identifies landmarks from a photo and the device position by
// fusing two signals: GPS proximity to known landmarks and visual
// similarity between the photo's embedding and per-landmark prototype
// vectors. Confirmed matches are enriched with descriptive text.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 with layered sources (defaults, YAML file, env)
//  2. Assets: landmark CSV dataset and prototype embedding table
//  3. Embedding backend: ONNX Runtime model (optional)
//  4. Enrichment client: external text API with circuit breaker (optional)
//  5. Preferences: BadgerDB store for the detection radius (optional)
//  6. Recognition engine: cache, matcher and fusion pipeline
//  7. Supervisor tree: HTTP server and storage maintenance under suture
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults. See the config package for the full variable list.
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: it stops
// accepting connections, drains in-flight requests within the configured
// timeout, and closes the preferences database.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/api"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/config"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/embedding"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/enrichment"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/landmarks"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/location"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/logging"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/metrics"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/models"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/prefs"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/prototypes"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/recognition"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/supervisor"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/supervisor/services"
)

// version is set at build time via -ldflags.
var version = "dev"

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting VistaGuide")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logger := logging.Logger()

	// Landmark dataset is mandatory; the engine has nothing to score
	// without it.
	landmarkStore, err := landmarks.Open(cfg.Assets.LandmarksPath, logger)
	if err != nil {
		logging.Fatal().Err(err).Str("path", cfg.Assets.LandmarksPath).Msg("Failed to load landmark dataset")
	}
	metrics.LandmarksLoaded.Set(float64(landmarkStore.Count()))
	logging.Info().
		Int("landmarks", landmarkStore.Count()).
		Int("skipped_rows", landmarkStore.SkippedRows()).
		Msg("Landmark dataset loaded")

	// Prototype table is optional; a missing or broken file degrades to
	// GPS-only recognition.
	protoStore := prototypes.OpenOrEmpty(cfg.Assets.PrototypesPath, logger)
	metrics.PrototypesLoaded.Set(float64(protoStore.Count()))

	var embedder recognition.Embedder = embedding.Disabled{}
	if cfg.Embedding.Enabled {
		onnx, onnxErr := embedding.NewONNXBackend(embedding.ONNXConfig{
			LibraryPath: cfg.Embedding.LibraryPath,
			ModelPath:   cfg.Embedding.ModelPath,
			InputName:   cfg.Embedding.InputName,
			OutputName:  cfg.Embedding.OutputName,
			InputSize:   cfg.Embedding.InputSize,
			OutputDim:   cfg.Embedding.OutputDim,
		}, logger)
		if onnxErr != nil {
			logging.Fatal().Err(onnxErr).Str("model", cfg.Embedding.ModelPath).Msg("Failed to load embedding model")
		}
		defer func() {
			if closeErr := onnx.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing embedding backend")
			}
		}()
		embedder = onnx
		logging.Info().Str("model", cfg.Embedding.ModelPath).Msg("Embedding backend initialized")
	} else {
		logging.Info().Msg("Embedding disabled - recognition runs on GPS proximity only")
	}

	var enricher recognition.Enricher = enrichment.Disabled{}
	if cfg.Enrichment.Enabled {
		client, clientErr := enrichment.NewClient(enrichment.ClientConfig{
			BaseURL:           cfg.Enrichment.BaseURL,
			APIKey:            cfg.Enrichment.APIKey,
			Timeout:           cfg.Enrichment.Timeout,
			RequestsPerSecond: cfg.Enrichment.RequestsPerSecond,
		}, logger)
		if clientErr != nil {
			logging.Fatal().Err(clientErr).Msg("Failed to initialize enrichment client")
		}
		enricher = client
		logging.Info().Str("url", cfg.Enrichment.BaseURL).Msg("Enrichment client initialized")
	} else {
		logging.Info().Msg("Enrichment disabled - descriptions fall back to dataset info")
	}

	// Preferences persist in BadgerDB when a path is configured; otherwise
	// the default radius applies for the process lifetime.
	var radiusPrefs prefs.RadiusPreferences = prefs.Static{RadiusKm: prefs.DefaultRadiusKm}
	var prefsDB *badger.DB
	if cfg.Prefs.Path != "" {
		prefsDB, err = badger.Open(badger.DefaultOptions(cfg.Prefs.Path).WithLogger(nil))
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.Prefs.Path).Msg("Failed to open preferences database")
		}
		defer func() {
			if closeErr := prefsDB.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing preferences database")
			}
		}()
		radiusPrefs = prefs.NewBadgerPreferences(prefsDB, logger)
		logging.Info().Str("path", cfg.Prefs.Path).Msg("Preferences database opened")
	} else {
		logging.Info().Msg("Preferences path not set - detection radius is not persisted")
	}

	var locator recognition.Locator = location.Unavailable{}
	if cfg.Server.FixedLocation {
		locator = location.Fixed{Position: models.Coordinates{
			Latitude:  cfg.Server.Latitude,
			Longitude: cfg.Server.Longitude,
		}}
		logging.Info().
			Float64("latitude", cfg.Server.Latitude).
			Float64("longitude", cfg.Server.Longitude).
			Msg("Fixed device location configured")
	}

	cache := recognition.NewNearbyCache(landmarkStore, cfg.Recognition.CacheTTL, logger)
	matcher := recognition.NewVisualMatcher(protoStore, cfg.Recognition.MinCosineSimilarity)
	engine := recognition.NewEngine(
		cfg.Recognition,
		landmarkStore,
		matcher,
		cache,
		embedder,
		locator,
		radiusPrefs,
		enricher,
		logger,
	)

	handler := api.NewHandler(
		engine,
		landmarkStore,
		radiusPrefs,
		cache.Invalidate,
		api.AssetStats{
			Landmarks:      landmarkStore.Count(),
			Prototypes:     protoStore.Count(),
			VisualMatching: cfg.Embedding.Enabled && protoStore.Count() > 0,
		},
		logger,
	)
	router := api.NewRouter(handler, api.MiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog compatibility.
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	if prefsDB != nil {
		tree.AddStorageService(services.NewBadgerGCService(prefsDB, time.Hour))
	}

	// Uptime gauge ticks in the background until shutdown.
	startTime := time.Now()
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				metrics.AppUptime.Set(time.Since(startTime).Seconds())
			}
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("HTTP server starting")

	errCh := tree.ServeBackground(ctx)
	if err := <-errCh; err != nil && ctx.Err() == nil {
		logging.Error().Err(err).Msg("Supervisor stopped unexpectedly")
	}

	if unstopped, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}

	logging.Info().Msg("VistaGuide stopped")
}
