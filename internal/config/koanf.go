// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/recognition"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vistaguide/config.yaml",
	"/etc/vistaguide/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with all defaults applied. Defaults load
// first, then the config file, then environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8460,
			Timeout:         30 * time.Second,
			Latitude:        0.0,
			Longitude:       0.0,
			FixedLocation:   false,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Assets: AssetsConfig{
			LandmarksPath:  "/data/landmarks.csv",
			PrototypesPath: "/data/prototypes.json",
		},
		Embedding: EmbeddingConfig{
			Enabled:    false, // opt-in: requires the onnxruntime shared library
			InputName:  "input",
			OutputName: "embedding",
			InputSize:  224,
			OutputDim:  512,
		},
		Recognition: recognition.DefaultConfig(),
		Enrichment: EnrichmentConfig{
			Enabled:           false, // opt-in: requires a text service endpoint
			Timeout:           15 * time.Second,
			RequestsPerSecond: 2,
		},
		Prefs: PrefsConfig{
			Path: "/data/prefs",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: built-in sensible defaults
//  2. Config File: optional YAML config file (if exists)
//  3. Environment Variables: override any setting
//
// Precedence: ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths are parsed as comma-separated slices.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars come in as strings, but the config expects
// slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (from YAML file).
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped so random environment variables do not
// pollute the config.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - LANDMARKS_PATH -> assets.landmarks_path
//   - RECOGNITION_CACHE_TTL -> recognition.cache_ttl
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"http_port":           "server.port",
		"http_host":           "server.host",
		"http_timeout":        "server.timeout",
		"server_latitude":     "server.latitude",
		"server_longitude":    "server.longitude",
		"fixed_location":      "server.fixed_location",
		"cors_origins":        "server.cors_origins",
		"rate_limit_requests": "server.rate_limit_reqs",
		"rate_limit_window":   "server.rate_limit_window",

		// Asset mappings
		"landmarks_path":  "assets.landmarks_path",
		"prototypes_path": "assets.prototypes_path",

		// Embedding mappings
		"embedding_enabled":      "embedding.enabled",
		"embedding_library_path": "embedding.library_path",
		"embedding_model_path":   "embedding.model_path",
		"embedding_input_name":   "embedding.input_name",
		"embedding_output_name":  "embedding.output_name",
		"embedding_input_size":   "embedding.input_size",
		"embedding_output_dim":   "embedding.output_dim",

		// Recognition mappings
		"recognition_visual_weight":          "recognition.visual_weight",
		"recognition_gps_weight":             "recognition.gps_weight",
		"recognition_agreement_bonus":        "recognition.agreement_bonus",
		"recognition_confidence_threshold":   "recognition.confidence_threshold",
		"recognition_visual_score_threshold": "recognition.visual_score_threshold",
		"recognition_min_cosine_similarity":  "recognition.min_cosine_similarity",
		"recognition_cache_ttl":              "recognition.cache_ttl",

		// Enrichment mappings
		"enrichment_enabled":  "enrichment.enabled",
		"enrichment_base_url": "enrichment.base_url",
		"enrichment_api_key":  "enrichment.api_key",
		"enrichment_timeout":  "enrichment.timeout",
		"enrichment_rps":      "enrichment.requests_per_second",

		// Preferences mappings
		"prefs_path": "prefs.path",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
