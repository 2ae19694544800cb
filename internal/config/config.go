// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

// Package config loads and validates the service configuration from layered
// sources: built-in defaults, an optional YAML file, then environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/recognition"
)

// Config is the root service configuration.
type Config struct {
	Server      ServerConfig       `koanf:"server"`
	Assets      AssetsConfig       `koanf:"assets"`
	Embedding   EmbeddingConfig    `koanf:"embedding"`
	Recognition recognition.Config `koanf:"recognition"`
	Enrichment  EnrichmentConfig   `koanf:"enrichment"`
	Prefs       PrefsConfig        `koanf:"prefs"`
	Logging     LoggingConfig      `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// Latitude and Longitude pin the device position for deployments
	// without a live location source. Requests may still override them.
	Latitude  float64 `koanf:"latitude"`
	Longitude float64 `koanf:"longitude"`

	// FixedLocation enables the pinned position above. When false and a
	// request carries no coordinates, GPS scoring is skipped.
	FixedLocation bool `koanf:"fixed_location"`

	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// AssetsConfig locates the startup data assets.
type AssetsConfig struct {
	// LandmarksPath is the CSV landmark dataset.
	LandmarksPath string `koanf:"landmarks_path"`

	// PrototypesPath is the JSON prototype embedding table.
	PrototypesPath string `koanf:"prototypes_path"`
}

// EmbeddingConfig configures the ONNX embedding backend.
type EmbeddingConfig struct {
	// Enabled loads the model at startup. When false, recognition runs on
	// the GPS signal alone.
	Enabled bool `koanf:"enabled"`

	LibraryPath string `koanf:"library_path"`
	ModelPath   string `koanf:"model_path"`
	InputName   string `koanf:"input_name"`
	OutputName  string `koanf:"output_name"`
	InputSize   int    `koanf:"input_size"`
	OutputDim   int    `koanf:"output_dim"`
}

// EnrichmentConfig configures the generative text service client.
type EnrichmentConfig struct {
	Enabled           bool          `koanf:"enabled"`
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
}

// PrefsConfig configures the user preferences store.
type PrefsConfig struct {
	// Path is the BadgerDB directory. Empty disables persistence; the
	// default detection radius is then used for every request.
	Path string `koanf:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateAssets(); err != nil {
		return err
	}
	if err := c.validateEmbedding(); err != nil {
		return err
	}
	if err := c.validateEnrichment(); err != nil {
		return err
	}
	if err := c.Recognition.Validate(); err != nil {
		return fmt.Errorf("recognition config: %w", err)
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.Latitude < -90 || c.Server.Latitude > 90 {
		return fmt.Errorf("SERVER_LATITUDE must be -90 to 90, got %v", c.Server.Latitude)
	}
	if c.Server.Longitude < -180 || c.Server.Longitude > 180 {
		return fmt.Errorf("SERVER_LONGITUDE must be -180 to 180, got %v", c.Server.Longitude)
	}
	if c.Server.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Server.RateLimitReqs)
	}
	if c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateAssets() error {
	if c.Assets.LandmarksPath == "" {
		return fmt.Errorf("LANDMARKS_PATH is required")
	}
	// PrototypesPath may be empty; visual matching then stays disabled.
	return nil
}

func (c *Config) validateEmbedding() error {
	if !c.Embedding.Enabled {
		return nil
	}
	if c.Embedding.ModelPath == "" {
		return fmt.Errorf("EMBEDDING_MODEL_PATH is required when EMBEDDING_ENABLED=true")
	}
	if c.Embedding.InputSize <= 0 {
		return fmt.Errorf("EMBEDDING_INPUT_SIZE must be positive, got %d", c.Embedding.InputSize)
	}
	if c.Embedding.OutputDim <= 0 {
		return fmt.Errorf("EMBEDDING_OUTPUT_DIM must be positive, got %d", c.Embedding.OutputDim)
	}
	return nil
}

func (c *Config) validateEnrichment() error {
	if !c.Enrichment.Enabled {
		return nil
	}
	if c.Enrichment.BaseURL == "" {
		return fmt.Errorf("ENRICHMENT_BASE_URL is required when ENRICHMENT_ENABLED=true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be a valid level, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
