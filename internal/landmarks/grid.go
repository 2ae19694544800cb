// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package landmarks

import (
	"math"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/geo"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/models"
)

// spatialGrid divides geographic space into cells for fast proximity queries.
// Instead of O(n) comparisons to find nearby landmarks, a query only checks
// cells overlapping the search radius, reducing to O(k) where k = landmarks
// in those cells.
//
// The grid is built once from the loaded dataset and never mutated, so reads
// need no locking.
type spatialGrid struct {
	cells    map[cellKey][]*models.Landmark
	cellSize float64 // cell size in degrees
}

// cellKey represents a grid cell coordinate.
type cellKey struct {
	x, y int
}

// newSpatialGrid indexes the given landmarks with the approximate cell size
// in kilometers. Smaller cells are more precise but mean more cells to check.
func newSpatialGrid(records []*models.Landmark, cellSizeKm float64) *spatialGrid {
	if cellSizeKm <= 0 {
		cellSizeKm = 10
	}

	g := &spatialGrid{
		cells:    make(map[cellKey][]*models.Landmark),
		cellSize: cellSizeKm / 111.0, // 1 degree of latitude is ~111 km
	}

	for _, rec := range records {
		key := g.keyFor(rec.Latitude, rec.Longitude)
		g.cells[key] = append(g.cells[key], rec)
	}

	return g
}

// keyFor returns the cell key for a lat/lon coordinate.
func (g *spatialGrid) keyFor(lat, lon float64) cellKey {
	// Normalize longitude to [-180, 180]
	for lon > 180 {
		lon -= 360
	}
	for lon < -180 {
		lon += 360
	}

	return cellKey{
		x: int(math.Floor(lon / g.cellSize)),
		y: int(math.Floor(lat / g.cellSize)),
	}
}

// queryNearby returns all landmarks within radiusKm of the given point.
// Candidate cells come from the bounding box; the exact distance check uses
// haversine so results are correct regardless of cell size.
//
// A longitude degree spans only 111*cos(lat) km, so the east-west cell count
// is widened by the query latitude. cos(lat) is clamped away from zero to
// keep polar queries bounded.
func (g *spatialGrid) queryNearby(lat, lon, radiusKm float64) []*models.Landmark {
	cosLat := math.Cos(lat * math.Pi / 180)
	if cosLat < 0.01 {
		cosLat = 0.01
	}

	latCells := int(math.Ceil(radiusKm/111.0/g.cellSize)) + 1
	lonCells := int(math.Ceil(radiusKm/(111.0*cosLat)/g.cellSize)) + 1
	center := g.keyFor(lat, lon)

	var results []*models.Landmark
	for dx := -lonCells; dx <= lonCells; dx++ {
		for dy := -latCells; dy <= latCells; dy++ {
			cell, ok := g.cells[cellKey{x: center.x + dx, y: center.y + dy}]
			if !ok {
				continue
			}

			for _, rec := range cell {
				if geo.HaversineDistanceKm(lat, lon, rec.Latitude, rec.Longitude) <= radiusKm {
					recCopy := *rec
					results = append(results, &recCopy)
				}
			}
		}
	}

	return results
}
