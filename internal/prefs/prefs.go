// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

// Package prefs persists user-tunable recognition settings.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

const (
	// radiusKey is the BadgerDB key for the detection radius preference.
	radiusKey = "prefs:detection_radius_km"

	// DefaultRadiusKm is used when no preference has been stored or the
	// store cannot be read.
	DefaultRadiusKm = 10.0
)

// RadiusPreferences exposes the detection radius setting.
type RadiusPreferences interface {
	// DetectionRadiusKm returns the stored radius, or DefaultRadiusKm when
	// nothing is stored or the store is unreachable. It never fails.
	DetectionRadiusKm(ctx context.Context) float64

	// SetDetectionRadiusKm persists a new radius. The radius must be positive.
	SetDetectionRadiusKm(ctx context.Context, radiusKm float64) error
}

// BadgerPreferences implements RadiusPreferences on a BadgerDB instance so
// settings survive restarts.
type BadgerPreferences struct {
	db     *badger.DB
	logger zerolog.Logger
}

// NewBadgerPreferences creates a preferences store on the provided database.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBadgerPreferences(db *badger.DB, logger zerolog.Logger) *BadgerPreferences {
	return &BadgerPreferences{
		db:     db,
		logger: logger.With().Str("component", "prefs").Logger(),
	}
}

// DetectionRadiusKm implements RadiusPreferences.
func (p *BadgerPreferences) DetectionRadiusKm(_ context.Context) float64 {
	var radius float64

	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(radiusKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			parsed, parseErr := strconv.ParseFloat(string(val), 64)
			if parseErr != nil {
				return parseErr
			}
			radius = parsed
			return nil
		})
	})
	if err != nil {
		p.logger.Warn().Err(err).Msg("reading radius preference failed, using default")
		return DefaultRadiusKm
	}

	if radius <= 0 {
		return DefaultRadiusKm
	}
	return radius
}

// SetDetectionRadiusKm implements RadiusPreferences.
func (p *BadgerPreferences) SetDetectionRadiusKm(_ context.Context, radiusKm float64) error {
	if radiusKm <= 0 {
		return fmt.Errorf("detection radius must be positive, got %v", radiusKm)
	}

	val := strconv.FormatFloat(radiusKm, 'f', -1, 64)
	err := p.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(radiusKey), []byte(val))
	})
	if err != nil {
		return fmt.Errorf("store radius preference: %w", err)
	}

	p.logger.Info().Float64("radius_km", radiusKm).Msg("detection radius updated")
	return nil
}

// Static implements RadiusPreferences with a fixed radius. It serves
// deployments without a preferences database and backs tests.
type Static struct {
	RadiusKm float64
}

// DetectionRadiusKm implements RadiusPreferences.
func (s Static) DetectionRadiusKm(context.Context) float64 {
	if s.RadiusKm <= 0 {
		return DefaultRadiusKm
	}
	return s.RadiusKm
}

// SetDetectionRadiusKm implements RadiusPreferences.
func (Static) SetDetectionRadiusKm(context.Context, float64) error {
	return errors.New("preferences store is read-only")
}
