// VistaGuide - Hybrid Landmark Recognition Service
// Copyright 2026 HiOmkarrr
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/HiOmkarrr/VistaGuide-sub002

package recognition

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/HiOmkarrr/VistaGuide-sub002/internal/models"
)

// mockLandmarkProvider is a scripted LandmarkProvider for cache and
// pipeline tests.
type mockLandmarkProvider struct {
	byID        map[int64]*models.Landmark
	nearby      []*models.Landmark
	nearbyErr   error
	nearbyCalls atomic.Int64

	// lastRadius records the radius of the most recent GetNearby call.
	mu         sync.Mutex
	radiusSeen []float64
}

func (m *mockLandmarkProvider) GetByID(_ context.Context, id int64) (*models.Landmark, error) {
	return m.byID[id], nil
}

func (m *mockLandmarkProvider) GetNearby(_ context.Context, _, _, radiusKm float64) ([]*models.Landmark, error) {
	m.nearbyCalls.Add(1)
	m.mu.Lock()
	m.radiusSeen = append(m.radiusSeen, radiusKm)
	m.mu.Unlock()

	if m.nearbyErr != nil {
		return nil, m.nearbyErr
	}
	return m.nearby, nil
}

func testCacheClock(c *NearbyCache) *time.Time {
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }
	return &now
}

func TestNearbyCache_SingleQueryWithinTTL(t *testing.T) {
	provider := &mockLandmarkProvider{nearby: []*models.Landmark{{ID: 1, Name: "Eiffel Tower"}}}
	cache := NewNearbyCache(provider, 2*time.Minute, zerolog.Nop())
	testCacheClock(cache)

	pos := models.Coordinates{Latitude: 48.85, Longitude: 2.29}
	cache.RefreshIfStale(context.Background(), pos, 10)
	cache.RefreshIfStale(context.Background(), pos, 10)

	if got := provider.nearbyCalls.Load(); got != 1 {
		t.Errorf("provider queries = %d, want 1 within TTL", got)
	}
	if got := cache.Landmarks(); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("Landmarks() = %+v, want the cached record", got)
	}
}

func TestNearbyCache_RefreshAfterTTL(t *testing.T) {
	provider := &mockLandmarkProvider{nearby: []*models.Landmark{{ID: 1}}}
	cache := NewNearbyCache(provider, 2*time.Minute, zerolog.Nop())
	now := testCacheClock(cache)

	pos := models.Coordinates{Latitude: 48.85, Longitude: 2.29}
	cache.RefreshIfStale(context.Background(), pos, 10)

	*now = now.Add(2*time.Minute + time.Second)
	cache.RefreshIfStale(context.Background(), pos, 10)

	if got := provider.nearbyCalls.Load(); got != 2 {
		t.Errorf("provider queries = %d, want 2 after TTL expiry", got)
	}
}

func TestNearbyCache_ExpandedRadiusFallback(t *testing.T) {
	provider := &mockLandmarkProvider{} // always empty
	cache := NewNearbyCache(provider, 2*time.Minute, zerolog.Nop())
	testCacheClock(cache)

	cache.RefreshIfStale(context.Background(), models.Coordinates{}, 10)

	if got := provider.nearbyCalls.Load(); got != 2 {
		t.Fatalf("provider queries = %d, want 2 (base then expanded)", got)
	}
	provider.mu.Lock()
	defer provider.mu.Unlock()
	if provider.radiusSeen[0] != 10 || provider.radiusSeen[1] != 20 {
		t.Errorf("radii = %v, want [10 20]", provider.radiusSeen)
	}
}

func TestNearbyCache_EmptyResultStillUpdatesTimestamp(t *testing.T) {
	provider := &mockLandmarkProvider{}
	cache := NewNearbyCache(provider, 2*time.Minute, zerolog.Nop())
	testCacheClock(cache)

	cache.RefreshIfStale(context.Background(), models.Coordinates{}, 10)
	callsAfterFirst := provider.nearbyCalls.Load()

	// A second refresh within the TTL must not re-query, even though the
	// cache is empty.
	cache.RefreshIfStale(context.Background(), models.Coordinates{}, 10)

	if got := provider.nearbyCalls.Load(); got != callsAfterFirst {
		t.Errorf("provider queries = %d, want %d (no refresh storm on empty cache)", got, callsAfterFirst)
	}
}

func TestNearbyCache_ProviderErrorDegradesToEmpty(t *testing.T) {
	provider := &mockLandmarkProvider{nearbyErr: errors.New("provider down")}
	cache := NewNearbyCache(provider, 2*time.Minute, zerolog.Nop())
	testCacheClock(cache)

	cache.RefreshIfStale(context.Background(), models.Coordinates{}, 10)

	if got := cache.Landmarks(); len(got) != 0 {
		t.Errorf("Landmarks() = %+v, want empty after provider error", got)
	}

	// Failure also advances the timestamp.
	cache.RefreshIfStale(context.Background(), models.Coordinates{}, 10)
	if got := provider.nearbyCalls.Load(); got != 1 {
		t.Errorf("provider queries = %d, want 1 within TTL after failure", got)
	}
}

func TestNearbyCache_ConcurrentRefreshSingleQuery(t *testing.T) {
	provider := &mockLandmarkProvider{nearby: []*models.Landmark{{ID: 1}}}
	cache := NewNearbyCache(provider, 2*time.Minute, zerolog.Nop())
	testCacheClock(cache)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.RefreshIfStale(context.Background(), models.Coordinates{}, 10)
		}()
	}
	wg.Wait()

	if got := provider.nearbyCalls.Load(); got != 1 {
		t.Errorf("provider queries = %d, want 1 across concurrent callers", got)
	}
}

func TestNearbyCache_Invalidate(t *testing.T) {
	provider := &mockLandmarkProvider{nearby: []*models.Landmark{{ID: 1}}}
	cache := NewNearbyCache(provider, 2*time.Minute, zerolog.Nop())
	testCacheClock(cache)

	cache.RefreshIfStale(context.Background(), models.Coordinates{}, 10)
	cache.Invalidate()
	cache.RefreshIfStale(context.Background(), models.Coordinates{}, 10)

	if got := provider.nearbyCalls.Load(); got != 2 {
		t.Errorf("provider queries = %d, want 2 after invalidation", got)
	}
}

func TestNearbyCache_IDs(t *testing.T) {
	provider := &mockLandmarkProvider{nearby: []*models.Landmark{{ID: 3}, {ID: 7}}}
	cache := NewNearbyCache(provider, 2*time.Minute, zerolog.Nop())
	testCacheClock(cache)

	cache.RefreshIfStale(context.Background(), models.Coordinates{}, 10)

	ids := cache.IDs()
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 7 {
		t.Errorf("IDs() = %v, want [3 7]", ids)
	}
}
