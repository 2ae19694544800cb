// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package recognition

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/metrics"
	"github.com/HiOmkarrr/VistaGuide-sub002/internal/models"
)

// LandmarkProvider supplies landmark records. landmarks.Store satisfies it.
type LandmarkProvider interface {
	// GetByID returns the record for id, or nil when unknown.
	GetByID(ctx context.Context, id int64) (*models.Landmark, error)

	// GetNearby returns all records within radiusKm of the position.
	GetNearby(ctx context.Context, lat, lon, radiusKm float64) ([]*models.Landmark, error)
}

// NearbyCache holds the landmarks around the last known position for a
// bounded time, so consecutive recognitions do not re-query the provider.
//
// Refresh is serialized with a mutex; concurrent recognitions share one
// provider query. The timestamp advances on every refresh attempt, empty
// or failed included, which prevents refresh storms against a provider
// that has nothing to return.
type NearbyCache struct {
	provider LandmarkProvider
	ttl      time.Duration
	logger   zerolog.Logger

	mu        sync.Mutex
	landmarks []*models.Landmark
	refreshed time.Time

	// now is swapped out by tests to control staleness.
	now func() time.Time
}

// NewNearbyCache creates an empty cache over the provider.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewNearbyCache(provider LandmarkProvider, ttl time.Duration, logger zerolog.Logger) *NearbyCache {
	return &NearbyCache{
		provider: provider,
		ttl:      ttl,
		logger:   logger.With().Str("component", "nearby_cache").Logger(),
		now:      time.Now,
	}
}

// RefreshIfStale refreshes the cache from the provider when the current
// entry is missing or older than the TTL. An empty first query retries once
// at double the radius before settling for an empty cache. Provider errors
// degrade to an empty cache; they are never returned.
func (c *NearbyCache) RefreshIfStale(ctx context.Context, pos models.Coordinates, radiusKm float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.refreshed.IsZero() && c.now().Sub(c.refreshed) <= c.ttl {
		metrics.NearbyCacheHits.Inc()
		return
	}

	c.landmarks = c.query(ctx, pos, radiusKm)
	c.refreshed = c.now()
}

// query runs the provider lookup with the expanded-radius fallback.
// Must be called with c.mu held.
func (c *NearbyCache) query(ctx context.Context, pos models.Coordinates, radiusKm float64) []*models.Landmark {
	found, err := c.provider.GetNearby(ctx, pos.Latitude, pos.Longitude, radiusKm)
	if err != nil {
		c.logger.Warn().Err(err).Float64("radius_km", radiusKm).Msg("nearby query failed, cache emptied")
		metrics.RecordProviderFailure("landmark")
		metrics.RecordCacheRefresh(false, 0)
		return nil
	}

	expanded := false
	if len(found) == 0 {
		expanded = true
		found, err = c.provider.GetNearby(ctx, pos.Latitude, pos.Longitude, 2*radiusKm)
		if err != nil {
			c.logger.Warn().Err(err).Float64("radius_km", 2*radiusKm).Msg("expanded nearby query failed, cache emptied")
			metrics.RecordProviderFailure("landmark")
			metrics.RecordCacheRefresh(true, 0)
			return nil
		}
	}

	c.logger.Debug().
		Int("landmarks", len(found)).
		Float64("radius_km", radiusKm).
		Bool("expanded", expanded).
		Msg("nearby cache refreshed")
	metrics.RecordCacheRefresh(expanded, len(found))

	return found
}

// Landmarks returns the cached records. Callers must not mutate the slice.
func (c *NearbyCache) Landmarks() []*models.Landmark {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.landmarks
}

// IDs returns the cached landmark ids, for scoping the visual matcher.
func (c *NearbyCache) IDs() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]int64, len(c.landmarks))
	for i, lm := range c.landmarks {
		ids[i] = lm.ID
	}
	return ids
}

// Invalidate clears the cache so the next read refreshes. Used when the
// detection radius preference changes.
func (c *NearbyCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.landmarks = nil
	c.refreshed = time.Time{}
}
