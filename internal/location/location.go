// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

// Package location resolves the device position used for proximity scoring.
package location

import (
	"context"
	"errors"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/models"
)

// ErrNoFix is returned when no position is available.
var ErrNoFix = errors.New("no location fix available")

// Provider supplies the current device position.
type Provider interface {
	Current(ctx context.Context) (models.Coordinates, error)
}

// Fixed is a Provider pinned to one position. It serves deployments where
// the device location is configured rather than sensed, and it backs tests.
type Fixed struct {
	Position models.Coordinates
}

// Current implements Provider.
func (f Fixed) Current(context.Context) (models.Coordinates, error) {
	return f.Position, nil
}

// Unavailable is a Provider with no fix. Recognition requests must carry
// their own coordinates when this provider is wired.
type Unavailable struct{}

// Current implements Provider.
func (Unavailable) Current(context.Context) (models.Coordinates, error) {
	return models.Coordinates{}, ErrNoFix
}
