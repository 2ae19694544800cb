// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package geo

import "math"

// kmPerDegreeLat is the approximate surface distance of one degree of
// latitude. Longitude degrees shrink with cos(latitude).
const kmPerDegreeLat = 111.0

// PlanarDistanceKm approximates the great-circle distance between two points
// using a local equirectangular projection. Latitude degrees map to km via a
// constant 111 km/degree; longitude degrees are scaled by the cosine of the
// average latitude.
//
// The approximation is accurate at landmark search scales (<50 km) and much
// cheaper than haversine. It is NOT valid for distances where the Earth's
// curvature matters; use HaversineDistanceKm for those.
func PlanarDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	avgLatRad := (lat1 + lat2) / 2 * math.Pi / 180.0

	dy := (lat2 - lat1) * kmPerDegreeLat
	dx := (lon2 - lon1) * kmPerDegreeLat * math.Cos(avgLatRad)

	return math.Sqrt(dx*dx + dy*dy)
}

// HaversineDistanceKm calculates the great-circle distance between two points
// on Earth using the Haversine formula. Returns distance in kilometers.
func HaversineDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}
