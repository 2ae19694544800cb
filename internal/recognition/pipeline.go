// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package recognition

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/geo"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/metrics"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/models"
)

// Outcome classifies the result of a recognition attempt.
type Outcome int

const (
	// OutcomeSuccess carries a recognized landmark with a description.
	OutcomeSuccess Outcome = iota

	// OutcomeNoMatch means the fused confidence fell below the threshold.
	OutcomeNoMatch

	// OutcomeLowConfidence means confidence cleared the threshold on a
	// GPS-heavy basis without enough visual support.
	OutcomeLowConfidence

	// OutcomeNotFound means no landmark identity could be resolved.
	OutcomeNotFound

	// OutcomeError means an unexpected failure was caught at the pipeline
	// boundary.
	OutcomeError
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeLowConfidence:
		return "low_confidence"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Request is one recognition attempt.
type Request struct {
	// Image is the captured photo, encoded (JPEG or PNG).
	Image []byte

	// Position overrides the location provider when non-nil. Mobile
	// clients send their fix with the image.
	Position *models.Coordinates
}

// Result is the structured outcome of a recognition attempt. The component
// scores are populated for every outcome so callers can surface diagnostics.
type Result struct {
	Outcome     Outcome
	LandmarkID  int64
	Name        string
	Description string

	// Message is a displayable explanation for non-success outcomes.
	Message string

	Confidence     float64
	VisualScore    float64
	GPSScore       float64
	AgreementBonus bool
}

// Embedder turns an image into a unit-normalized feature vector.
// embedding.Backend satisfies it.
type Embedder interface {
	Embed(ctx context.Context, image []byte) ([]float32, error)
}

// Locator supplies the device position. location.Provider satisfies it.
type Locator interface {
	Current(ctx context.Context) (models.Coordinates, error)
}

// RadiusSource supplies the user's detection radius.
// prefs.RadiusPreferences satisfies it.
type RadiusSource interface {
	DetectionRadiusKm(ctx context.Context) float64
}

// Enricher produces descriptive text. enrichment.Service satisfies it.
type Enricher interface {
	Format(ctx context.Context, name, rawText string) (string, error)
	Generate(ctx context.Context, name string) (string, error)
}

// Engine orchestrates GPS scoring, visual matching, score fusion,
// thresholding and enrichment for each recognition attempt.
type Engine struct {
	cfg       Config
	landmarks LandmarkProvider
	matcher   *VisualMatcher
	cache     *NearbyCache
	embedder  Embedder
	locator   Locator
	radius    RadiusSource
	enricher  Enricher
	logger    zerolog.Logger
}

// NewEngine wires a recognition engine from its collaborators.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(
	cfg Config,
	landmarks LandmarkProvider,
	matcher *VisualMatcher,
	cache *NearbyCache,
	embedder Embedder,
	locator Locator,
	radius RadiusSource,
	enricher Enricher,
	logger zerolog.Logger,
) *Engine {
	return &Engine{
		cfg:       cfg,
		landmarks: landmarks,
		matcher:   matcher,
		cache:     cache,
		embedder:  embedder,
		locator:   locator,
		radius:    radius,
		enricher:  enricher,
		logger:    logger.With().Str("component", "recognition").Logger(),
	}
}

// Recognize runs one full recognition attempt. It never panics and has no
// error return; every failure mode maps to an outcome.
func (e *Engine) Recognize(ctx context.Context, req Request) (result Result) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Msg("recognition pipeline panicked")
			result = Result{
				Outcome: OutcomeError,
				Message: "Recognition failed unexpectedly. Please try again.",
			}
		}
		metrics.RecordRecognition(result.Outcome.String(), result.Confidence,
			result.AgreementBonus, time.Since(start))
	}()

	// Embedding generation is the slow stage; run it while the GPS side
	// resolves location and refreshes the cache. Neither touches the
	// other's state until both are done.
	type embedOut struct {
		vec []float32
		err error
	}
	embedCh := make(chan embedOut, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				embedCh <- embedOut{err: fmt.Errorf("embedding backend panicked: %v", r)}
			}
		}()
		vec, err := e.embedder.Embed(ctx, req.Image)
		embedCh <- embedOut{vec: vec, err: err}
	}()

	gps, scope := e.scoreGPS(ctx, req.Position)

	visualStart := time.Now()
	embed := <-embedCh
	if embed.err != nil {
		e.logger.Warn().Err(embed.err).Msg("embedding failed, visual signal dropped")
		metrics.RecordProviderFailure("embedding")
	}
	visual := e.matcher.BestMatch(embed.vec, scope)
	metrics.RecordStage("visual", time.Since(visualStart))

	bundle := fuseScores(e.cfg, gps, visual)

	e.logger.Debug().
		Float64("gps_score", bundle.GPSScore).
		Float64("visual_score", bundle.VisualScore).
		Float64("confidence", bundle.Confidence).
		Bool("agreement", bundle.AgreementBonus).
		Msg("scores fused")

	return e.resolve(ctx, bundle)
}

// scoreGPS resolves the device position, keeps the nearby cache fresh and
// scores the closest cached landmark. It also returns the landmark id scope
// for the visual matcher: the cached ids when a position resolved, nil when
// location failed, so the visual search goes global instead of being pinned
// to wherever the cache was last filled.
func (e *Engine) scoreGPS(ctx context.Context, override *models.Coordinates) (gpsSignal, []int64) {
	defer func(start time.Time) { metrics.RecordStage("gps", time.Since(start)) }(time.Now())

	var pos models.Coordinates
	if override != nil {
		pos = *override
	} else {
		current, err := e.locator.Current(ctx)
		if err != nil {
			e.logger.Warn().Err(err).Msg("location unavailable, GPS signal dropped")
			metrics.RecordProviderFailure("location")
			return gpsSignal{}, nil
		}
		pos = current
	}

	radiusKm := e.radius.DetectionRadiusKm(ctx)
	e.cache.RefreshIfStale(ctx, pos, radiusKm)

	nearby := e.cache.Landmarks()
	if len(nearby) == 0 {
		return gpsSignal{}, nil
	}

	best := nearby[0]
	bestDist := geo.PlanarDistanceKm(pos.Latitude, pos.Longitude, best.Latitude, best.Longitude)
	for _, lm := range nearby[1:] {
		if d := geo.PlanarDistanceKm(pos.Latitude, pos.Longitude, lm.Latitude, lm.Longitude); d < bestDist {
			best, bestDist = lm, d
		}
	}

	return gpsSignal{
		landmarkID: best.ID,
		matched:    true,
		score:      geo.ProximityScore(bestDist, radiusKm),
	}, e.cache.IDs()
}

// resolve applies the threshold policy to a fused bundle and enriches
// accepted matches.
func (e *Engine) resolve(ctx context.Context, b ScoreBundle) Result {
	diag := Result{
		Confidence:     b.Confidence,
		VisualScore:    b.VisualScore,
		GPSScore:       b.GPSScore,
		AgreementBonus: b.AgreementBonus,
	}

	if b.Confidence < e.cfg.ConfidenceThreshold {
		diag.Outcome = OutcomeNoMatch
		diag.Message = "No landmark recognized near your location."
		return diag
	}

	if !(b.AgreementBonus || b.VisualScore >= e.cfg.VisualScoreThreshold) {
		diag.Outcome = OutcomeLowConfidence
		diag.Message = "A possible landmark was found, but the visual match is too weak to confirm."
		return diag
	}

	if !b.Chosen {
		diag.Outcome = OutcomeNotFound
		diag.Message = "The matched landmark could not be identified."
		return diag
	}

	landmark, err := e.landmarks.GetByID(ctx, b.ChosenID)
	if err != nil {
		e.logger.Warn().Err(err).Int64("landmark_id", b.ChosenID).Msg("landmark lookup failed")
		metrics.RecordProviderFailure("landmark")
		landmark = nil
	}
	if landmark == nil {
		diag.Outcome = OutcomeNotFound
		diag.Message = "The matched landmark could not be identified."
		return diag
	}

	diag.Outcome = OutcomeSuccess
	diag.LandmarkID = landmark.ID
	diag.Name = landmark.Name
	diag.Description = e.describe(ctx, landmark)
	return diag
}

// describe produces the landmark description through the enrichment
// fallback chain. The returned text is never empty.
func (e *Engine) describe(ctx context.Context, lm *models.Landmark) string {
	defer func(start time.Time) { metrics.RecordStage("enrichment", time.Since(start)) }(time.Now())

	var (
		text string
		err  error
	)
	if lm.Info != "" {
		text, err = e.enricher.Format(ctx, lm.Name, lm.Info)
	} else {
		text, err = e.enricher.Generate(ctx, lm.Name)
	}
	if err == nil && text != "" {
		return text
	}

	if err != nil {
		e.logger.Warn().Err(err).Str("landmark", lm.Name).Msg("enrichment failed, using fallback text")
		metrics.RecordProviderFailure("enrichment")
	}

	if lm.Info != "" {
		metrics.EnrichmentFallbacks.WithLabelValues("raw_info").Inc()
		return lm.Info
	}

	metrics.EnrichmentFallbacks.WithLabelValues("template").Inc()
	return fmt.Sprintf("%s is a notable landmark in %s. This site holds historical or cultural significance.",
		lm.Name, lm.Country)
}
