// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

// Package geo provides coordinate distance math and GPS proximity scoring
// for the landmark recognition engine.
//
// Two distance functions are provided:
//
//   - PlanarDistanceKm: fast equirectangular approximation, valid for the
//     short ranges (<50 km) at which landmark search operates
//   - HaversineDistanceKm: exact great-circle distance, used where the
//     short-range assumption does not hold
//
// ProximityScore converts a distance into a bounded (0,1) score via a
// sigmoid centered at half the search radius.
package geo
