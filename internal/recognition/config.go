// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package recognition

import (
	"fmt"
	"time"
)

// Config holds the scoring weights and acceptance thresholds of the
// recognition pipeline. The defaults reproduce the tuned production values;
// deployments may override them but Validate enforces sane ranges.
type Config struct {
	// VisualWeight scales the visual similarity score in the fused
	// confidence.
	VisualWeight float64 `koanf:"visual_weight"`

	// GPSWeight scales the GPS proximity score in the fused confidence.
	GPSWeight float64 `koanf:"gps_weight"`

	// AgreementBonus is added flat when GPS and visual matches agree.
	// Confidence may exceed 1.0 when it applies.
	AgreementBonus float64 `koanf:"agreement_bonus"`

	// ConfidenceThreshold is the minimum fused confidence for any match.
	ConfidenceThreshold float64 `koanf:"confidence_threshold"`

	// VisualScoreThreshold is the minimum standalone visual score accepted
	// when the agreement bonus did not apply.
	VisualScoreThreshold float64 `koanf:"visual_score_threshold"`

	// MinCosineSimilarity gates the visual matcher; weaker best matches
	// are rejected outright.
	MinCosineSimilarity float64 `koanf:"min_cosine_similarity"`

	// CacheTTL bounds the age of the nearby-landmark cache.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// DefaultConfig returns the production scoring parameters.
func DefaultConfig() Config {
	return Config{
		VisualWeight:         0.4,
		GPSWeight:            0.3,
		AgreementBonus:       0.3,
		ConfidenceThreshold:  0.7,
		VisualScoreThreshold: 0.6,
		MinCosineSimilarity:  0.2,
		CacheTTL:             2 * time.Minute,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.VisualWeight <= 0 || c.VisualWeight > 1 {
		return fmt.Errorf("visual_weight must be in (0,1], got %v", c.VisualWeight)
	}
	if c.GPSWeight <= 0 || c.GPSWeight > 1 {
		return fmt.Errorf("gps_weight must be in (0,1], got %v", c.GPSWeight)
	}
	if c.AgreementBonus < 0 || c.AgreementBonus > 1 {
		return fmt.Errorf("agreement_bonus must be in [0,1], got %v", c.AgreementBonus)
	}
	if c.ConfidenceThreshold <= 0 {
		return fmt.Errorf("confidence_threshold must be positive, got %v", c.ConfidenceThreshold)
	}
	if c.VisualScoreThreshold <= 0 || c.VisualScoreThreshold > 1 {
		return fmt.Errorf("visual_score_threshold must be in (0,1], got %v", c.VisualScoreThreshold)
	}
	if c.MinCosineSimilarity < -1 || c.MinCosineSimilarity > 1 {
		return fmt.Errorf("min_cosine_similarity must be in [-1,1], got %v", c.MinCosineSimilarity)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache_ttl must be positive, got %v", c.CacheTTL)
	}
	return nil
}
