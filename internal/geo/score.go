// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package geo

import "math"

// proximityGamma controls the steepness of the proximity sigmoid. At gamma=8
// the score drops from ~0.88 at distance=radius/4 to ~0.12 at 3*radius/4.
const proximityGamma = 8.0

// ProximityScore converts a distance into a (0,1) proximity score via the
// sigmoid 1 / (1 + e^(gamma*((d/r) - 0.5))).
//
// The score is exactly 0.5 at distance = radius/2, approaches 1 as the
// distance shrinks, approaches 0 as it grows, and is monotonically
// decreasing in distance for a fixed radius. Defined for all non-negative
// distances; radiusKm must be positive (caller contract).
func ProximityScore(distanceKm, radiusKm float64) float64 {
	return 1.0 / (1.0 + math.Exp(proximityGamma*(distanceKm/radiusKm-0.5)))
}
